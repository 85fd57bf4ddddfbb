package main

import "botdash/cmd"

func main() {
	cmd.Execute()
}
