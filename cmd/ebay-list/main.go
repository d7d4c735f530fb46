// Package main is the entry point for the ebay-list CLI.
package main

import (
	"github.com/donaldgifford/social-post/cmd/ebay-list/cmd"
)

func main() {
	cmd.Execute()
}
