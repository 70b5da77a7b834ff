package main

import "github.com/freshcheck/api-go/commands"

func main() {
	commands.Execute()
}
