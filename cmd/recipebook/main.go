package main

import (
	"github.com/recipebook/recipebook/pkg/cli"
)

func main() {
	cli.Execute()
}
