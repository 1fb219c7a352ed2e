package main

import (
	"fmt"

	"errkb/internal/domain"
	"errkb/internal/search"
)

// Run executes the lookup command.
func (c *LookupCmd) Run(deps *Dependencies) error {
	res, err := deps.Service.Lookup(deps.Ctx, c.Code)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", domain.ErrorMessage(err))
		return err
	}

	if res.Match == search.MatchPartial {
		fmt.Fprintf(deps.Stdout, "%s (closest match)\n", res.Code)
	} else {
		fmt.Fprintln(deps.Stdout, res.Code)
	}
	fmt.Fprintln(deps.Stdout, res.Explanation)

	switch {
	case res.TranslationErr != nil:
		fmt.Fprintf(deps.Stderr, "warning: %s\n", res.TranslationErr.Message)
	case res.Translation != "":
		fmt.Fprintf(deps.Stdout, "\n[%s]\n%s\n", res.TargetLocale, res.Translation)
	}
	return nil
}
