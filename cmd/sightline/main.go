// Package main - sightline CLI
//
// Usage:
//
//	go run ./cmd/sightline serve
//	go run ./cmd/sightline evaluate --sighting <id>
//	go run ./cmd/sightline sweep --since 15m
package main

import (
	"os"

	"github.com/jmcferran/sightline/cmd/sightline/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
