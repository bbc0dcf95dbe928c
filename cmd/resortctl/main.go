// Command resortctl drives the Palm Beach Resort backend from a terminal.
package main

import "github.com/iliyamo/palm-beach-resort/cmd/resortctl/cmd"

var version = "dev"

func main() {
	cmd.Execute(version)
}
