package main

import (
	"log"

	"github.com/recipebook/recipebook/pkg/api"
)

func main() {
	if err := api.Serve(); err != nil {
		log.Fatal(err)
	}
}
