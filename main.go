// Package main is the entry point for the schemalens CLI.
package main

import "schemalens.dev/pkg/schemalens/cmd"

func main() {
	cmd.Execute()
}
