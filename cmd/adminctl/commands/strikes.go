package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/xyz-asif/awaaz-admin/internal/features/moderation"
)

type StrikeManager interface {
	GetStrike(ctx context.Context, email string) (*moderation.Strike, error)
	ResetStrikes(ctx context.Context, email string) error
	Threshold() int
}

type StrikeRanker interface {
	Top(ctx context.Context, limit int64) ([]moderation.Strike, error)
}

// StrikeCommands returns the auto-block counter commands
func StrikeCommands(strikes StrikeManager, ranker StrikeRanker) *cobra.Command {
	strikesCmd := &cobra.Command{
		Use:   "strikes",
		Short: "Inspect or reset report strike counters",
		Long: `Report strikes count reports filed against a user email.
When a counter reaches the auto-block threshold the user is deactivated.`,
	}

	strikesCmd.AddCommand(&cobra.Command{
		Use:   "show <email>",
		Short: "Show the strike count for an email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			strike, err := strikes.GetStrike(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to load strikes: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d/%d strikes\n", strike.Email, strike.Count, strikes.Threshold())
			return nil
		},
	})

	strikesCmd.AddCommand(&cobra.Command{
		Use:   "reset <email>",
		Short: "Reset the strike count for an email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := strikes.ResetStrikes(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to reset strikes: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Strikes reset for %s\n", args[0])
			return nil
		},
	})

	var limit int64
	topCmd := &cobra.Command{
		Use:   "top",
		Short: "List the most reported emails",
		RunE: func(cmd *cobra.Command, _ []string) error {
			top, err := ranker.Top(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("failed to rank strikes: %w", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "EMAIL\tSTRIKES\tLAST REPORTED")
			for _, s := range top {
				fmt.Fprintf(w, "%s\t%d\t%s\n", s.Email, s.Count, s.LastReportedAt.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}
	topCmd.Flags().Int64Var(&limit, "limit", 20, "number of emails to show")
	strikesCmd.AddCommand(topCmd)

	return strikesCmd
}
