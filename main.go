package main

import "github.com/LegacyCodeHQ/modgraph/cmd"

func main() {
	cmd.Execute()
}
