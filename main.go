package main

import (
	"log"

	"github.com/spigell/kw-ranker/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
