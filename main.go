package main

import "libris/cmd"

func main() {
	cmd.Execute()
}
