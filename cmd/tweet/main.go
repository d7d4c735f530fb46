// Package main is the entry point for the tweet CLI.
package main

import (
	"github.com/donaldgifford/social-post/cmd/tweet/cmd"
)

func main() {
	cmd.Execute()
}
