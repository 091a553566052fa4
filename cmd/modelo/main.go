package main

import "github.com/kanzure/modelo/internal/cli"

func main() {
	cli.Execute()
}
