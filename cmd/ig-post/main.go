// Package main is the entry point for the ig-post CLI.
package main

import (
	"github.com/donaldgifford/social-post/cmd/ig-post/cmd"
)

func main() {
	cmd.Execute()
}
