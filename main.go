package main

import "github.com/theirongolddev/endow/cmd"

func main() {
	cmd.Execute()
}
