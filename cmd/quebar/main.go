package main

import "github.com/bryanchriswhite/quebar/cmd/quebar/commands"

func main() {
	commands.Execute()
}
