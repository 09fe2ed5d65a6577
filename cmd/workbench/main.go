package main

import "github.com/dmitrijs2005/aiworkbench/internal/client/cli"

func main() {
	cli.Execute()
}
