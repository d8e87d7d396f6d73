package main

import "github.com/goblinsan/sprint-board-helper/cmd/sprint-board-helper/commands"

func main() {
	commands.Execute()
}
