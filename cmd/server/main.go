// Package main implements the entry point for the posts API server, which
// serves a JSON CRUD API for blog posts with schema-validated request bodies.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
