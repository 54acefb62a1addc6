package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/tally/internal/adapters/report"
	"github.com/okian/tally/internal/domain/model"
)

func newTotalCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "total <name> [records-file | -]",
		Short: "Print one student's total score",
		Long: `Total sums the scores of a single student. Names match exactly and
are case-sensitive; a student with no records totals 0.

Example:
  tally total Hasan
  tally total Ayesha scores.yaml`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.RangeArgs(1, 2)(cmd, args); err != nil {
				return fmt.Errorf("%w: %v", errUsage, err)
			}
			return nil
		},
		RunE: c.recorded(c.runTotal),
	}
}

func (c *cli) runTotal(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	name := args[0]

	w, err := report.New(c.stdout, report.Format(c.cfg.Format))
	if err != nil {
		return err
	}
	records, err := c.svc.Load(ctx, c.source(args[1:]))
	if err != nil {
		return err
	}
	total, err := c.svc.Total(ctx, name, records)
	if err != nil {
		return err
	}
	return w.Total(model.StudentTotal{Name: name, Total: total})
}
