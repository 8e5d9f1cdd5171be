package main

import "github.com/mcoot/tictactoe-strategies/internal/cli"

func main() {
	cli.Execute()
}
