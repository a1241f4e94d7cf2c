package main

import (
	"log"

	"github.com/lifesteward/internal/cli"
)

func main() {
	if err := cli.New().Execute(); err != nil {
		log.Fatalf("steward: %v", err)
	}
}
