package batch

import (
	"encoding/binary"
	"fmt"
	"os"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/texelfit/bcn/internal/bcn"
)

// computeJobHash hashes a job's input bytes together with its format and
// fitter parameters, so any change to either forces a re-encode.
func computeJobHash(input []byte, format string, params bcn.Params) uint64 {
	h := xxhash.New()
	_, _ = h.Write(input)
	_, _ = h.Write([]byte{0})
	_, _ = h.WriteString(format)
	_, _ = h.Write([]byte{0})
	_, _ = h.WriteString(strconv.Itoa(int(params.Algorithm)))
	_, _ = h.Write([]byte{0})
	for _, w := range params.Weights {
		_, _ = h.WriteString(strconv.FormatFloat(float64(w), 'g', -1, 32))
		_, _ = h.Write([]byte{0})
	}
	if params.WeighColourByAlpha {
		_, _ = h.Write([]byte{1})
	}
	return h.Sum64()
}

// shouldSkip reports whether outputPath already holds the result of
// hashing to nextHash, based on the sidecar cache file at cachePath.
func shouldSkip(cachePath, outputPath string, nextHash uint64) bool {
	prevHash, ok, err := readCacheHash(cachePath)
	if err != nil || !ok {
		return false
	}
	if prevHash != nextHash {
		return false
	}
	if _, err := os.Stat(outputPath); err != nil {
		return false
	}
	return true
}

func readCacheHash(path string) (uint64, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("read cache: %w", err)
	}
	if len(data) != 8 {
		return 0, false, nil
	}
	return binary.LittleEndian.Uint64(data), true, nil
}

func writeCacheHash(path string, hash uint64) error {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, hash)
	if err := os.WriteFile(path, buf, 0o600); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	return nil
}
