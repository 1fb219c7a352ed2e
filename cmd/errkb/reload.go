package main

import (
	"fmt"
	"time"

	"errkb/internal/domain"
)

// Run executes the reload command.
func (c *ReloadCmd) Run(deps *Dependencies) error {
	res, err := deps.Service.Reload(deps.Ctx, callerID(c.As, deps.Config))
	if err != nil {
		if domain.ErrorCode(err) == domain.EUNAUTHORIZED {
			fmt.Fprintf(deps.Stderr, "Hint: set operator.id or %s, or pass --as\n", "ERRKB_OPERATOR_ID")
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", domain.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Rebuilt %d records in %s (digest %s)\n",
		res.Records, res.Duration.Round(time.Millisecond), res.Digest)
	return nil
}
