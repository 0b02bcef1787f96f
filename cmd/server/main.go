// Package main is the entry point of the bookstore API. It exposes a small
// cobra CLI with a serve command for the HTTP server and a migrate command
// for schema management.
package main

import (
	"context"
	"os"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
