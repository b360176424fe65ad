package main

import "github.com/maxmcd/stackperm/internal/command"

func main() {
	command.RunCLI()
}
