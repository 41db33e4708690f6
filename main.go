// main.go
package main

import (
	"log"
	"os"

	"github.com/gewnthar/trending/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Printf("ERROR: %v", err)
		os.Exit(1)
	}
}
