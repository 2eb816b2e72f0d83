package main

import "github.com/devicelab-dev/detox-adapter/pkg/cli"

func main() {
	cli.Execute()
}
