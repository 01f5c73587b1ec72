// Command mindwell is the terminal client for the mindwell API.
package main

import "mindwell/cmd/cli/command"

func main() {
	command.Execute()
}
