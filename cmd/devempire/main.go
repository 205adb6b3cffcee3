package main

import "github.com/andrescamacho/devempire-go/internal/adapters/cli"

func main() {
	cli.Execute()
}
