// Package main generates CLI reference documentation for every social-post
// binary from its cobra command tree.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	ebaylist "github.com/donaldgifford/social-post/cmd/ebay-list/cmd"
	fbpost "github.com/donaldgifford/social-post/cmd/fb-post/cmd"
	igpost "github.com/donaldgifford/social-post/cmd/ig-post/cmd"
	redditpost "github.com/donaldgifford/social-post/cmd/reddit-post/cmd"
	tweet "github.com/donaldgifford/social-post/cmd/tweet/cmd"
)

func roots() []*cobra.Command {
	return []*cobra.Command{
		ebaylist.Root(),
		fbpost.Root(),
		igpost.Root(),
		redditpost.Root(),
		tweet.Root(),
	}
}

func main() {
	output := flag.String("output", "docs/cli", "output directory for generated markdown")
	flag.Parse()

	if err := generate(*output); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("CLI docs generated in %s/\n", *output)
}

// generate writes one markdown tree per binary under dir/<binary>/.
func generate(dir string) error {
	for _, root := range roots() {
		root.DisableAutoGenTag = true

		out := filepath.Join(dir, root.Name())
		if err := os.MkdirAll(out, 0o750); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
		if err := doc.GenMarkdownTree(root, out); err != nil {
			return fmt.Errorf("generating docs for %s: %w", root.Name(), err)
		}
	}
	return nil
}
