package main

import "evently/cmd"

func main() {
	cmd.Execute()
}
