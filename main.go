// Package main is the entry point for the repo-miner CLI.
package main

import "github.com/repo-miner/repo-miner/cmd"

func main() {
	cmd.Execute()
}
