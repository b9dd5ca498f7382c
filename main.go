package main

import "emberdb/cmd"

func main() {
	cmd.Execute()
}
