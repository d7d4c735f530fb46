// Package main is the entry point for the reddit-post CLI.
package main

import (
	"github.com/donaldgifford/social-post/cmd/reddit-post/cmd"
)

func main() {
	cmd.Execute()
}
