package main

import (
	"fmt"
	"strings"

	"errkb/internal/domain"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	res, err := deps.Service.Search(deps.Ctx, strings.Join(c.Keyword, " "))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", domain.ErrorMessage(err))
		return err
	}

	if len(res.Records) == 0 {
		fmt.Fprintf(deps.Stdout, "No results found for '%s'.\n", res.Keyword)
		return nil
	}

	records := res.Records
	if c.Limit > 0 && len(records) > c.Limit {
		records = records[:c.Limit]
	}
	for _, r := range records {
		fmt.Fprintf(deps.Stdout, "%s\t%s\n", r.Code, r.Explanation)
	}
	if len(records) < len(res.Records) {
		fmt.Fprintf(deps.Stderr, "%d of %d results shown\n", len(records), len(res.Records))
	}
	return nil
}
