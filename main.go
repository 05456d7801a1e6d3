package main

import "github.com/studymesh/kgraph/cmd"

func main() {
	cmd.Execute()
}
