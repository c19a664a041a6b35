package main

import (
	"newsbrief/cmd/cmd"
)

func main() {
	cmd.Execute()
}
