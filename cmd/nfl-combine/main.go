package main

import "github.com/pfrederiksen/nfl-combine/internal/cli"

func main() {
	cli.Execute()
}
