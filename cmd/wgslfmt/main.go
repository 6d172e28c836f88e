package main

import "bennypowers.dev/wgslfmt/internal/cli"

func main() {
	cli.Execute()
}
