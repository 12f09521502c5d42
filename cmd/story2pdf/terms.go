package main

import (
	"fmt"

	"github.com/alnah/go-story2pdf/internal/storyfile"
	"github.com/alnah/go-story2pdf/internal/terminology"
)

// runTermsCmd prints vocabulary candidates for each chapter of a story.
// Useful for authors building a chapter's word guide.
func runTermsCmd(args []string, env *Environment) int {
	flags, positional, err := parseTermsFlags(args)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	if len(positional) == 0 {
		fmt.Fprintln(env.Stderr, ErrNoInput)
		printTermsUsage(env.Stderr)
		return ExitUsage
	}

	doc, err := storyfile.Load(positional[0])
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(fmt.Errorf("%w: %v", ErrReadStory, err))
	}

	max := flags.max
	if max <= 0 {
		max = terminology.MaxCandidates
	}

	for _, ch := range doc.Story.Chapters {
		candidates := terminology.Candidates(ch.Content)
		if len(candidates) > max {
			candidates = candidates[:max]
		}

		fmt.Fprintf(env.Stdout, "Chapter %d: %s\n", ch.Number, ch.Title)
		if len(candidates) == 0 {
			fmt.Fprintln(env.Stdout, "  (no candidates)")
			continue
		}
		for _, word := range candidates {
			if def, ok := ch.Terminology[word]; ok {
				fmt.Fprintf(env.Stdout, "  %s: %s\n", word, def)
			} else {
				fmt.Fprintf(env.Stdout, "  %s\n", word)
			}
		}
	}

	return ExitSuccess
}
