package main

import "rentscout/cli"

func main() {
	cli.Execute()
}
