package main

import "github.com/oasisprotocol/deepspace/cmd"

func main() {
	cmd.Execute()
}
