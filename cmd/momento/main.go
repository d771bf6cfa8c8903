package main

import "github.com/forPelevin/momento/internal/cli"

func main() {
	cli.Main()
}
