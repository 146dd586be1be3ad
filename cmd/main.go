package main

import (
	"os"

	"github.com/soundprediction/citegraph/cmd/citegraph"
)

func main() {
	if err := citegraph.Execute(); err != nil {
		os.Exit(1)
	}
}
