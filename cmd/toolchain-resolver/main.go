package main

import "toolchain-resolver/internal/cli"

func main() {
	cli.Execute()
}
