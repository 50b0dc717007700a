package main

import "github.com/pokerhub/holdem-room/internal/cli"

func main() {
	cli.Execute()
}
