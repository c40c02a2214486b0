package main

import "github.com/brandonshearin/frontier/cmd/frontier/commands"

func main() {
	commands.Execute()
}
