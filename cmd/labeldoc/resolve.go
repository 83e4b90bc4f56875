package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/labeldoc"
)

// Run executes the resolve command.
func (c *ResolveCmd) Run(deps *Dependencies) error {
	text, err := deps.Resolver.Resolve(deps.Ctx, labeldoc.Label(c.Label))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", labeldoc.ErrorMessage(err))
		return err
	}

	fmt.Fprint(deps.Stdout, text)
	if !strings.HasSuffix(text, "\n") {
		fmt.Fprintln(deps.Stdout)
	}
	return nil
}

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	ref, err := deps.Extractor.Extract(deps.Ctx, c.Path)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", labeldoc.ErrorMessage(err))
		return err
	}

	if ref == nil || ref.Label == "" {
		fmt.Fprintln(deps.Stdout, "No documentation label found.")
		return nil
	}

	fmt.Fprintln(deps.Stdout, ref.Label)
	return nil
}
