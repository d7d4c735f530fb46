// Package main is the entry point for the fb-post CLI.
package main

import (
	"github.com/donaldgifford/social-post/cmd/fb-post/cmd"
)

func main() {
	cmd.Execute()
}
