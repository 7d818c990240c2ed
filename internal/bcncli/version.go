package bcncli

import "fmt"

// version is set by the release tooling; "dev" outside of a tagged build.
var version = "dev"

// CmdVersion prints build metadata.
type CmdVersion struct{}

// Execute runs the version command.
func (c *CmdVersion) Execute(args []string) error {
	fmt.Printf("bcnc %s\n", version)
	return nil
}
