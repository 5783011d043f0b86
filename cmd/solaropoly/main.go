package main

import "github.com/mcoot/solaropoly/internal/cli"

func main() {
	cli.Execute()
}
