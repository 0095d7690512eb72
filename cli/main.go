package main

import "github.com/ponyo877/kieru/cli/cmd"

func main() {
	cmd.Execute()
}
