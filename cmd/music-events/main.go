package main

import "github.com/pfrederiksen/music-events/internal/cli"

func main() {
	cli.Execute()
}
