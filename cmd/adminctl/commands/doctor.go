package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// ErrSkipped marks a check whose dependency is not configured
var ErrSkipped = errors.New("not configured")

// Check probes one external dependency
type Check struct {
	Name string
	Run  func(ctx context.Context) error
}

// DoctorCommand runs every check and fails if any dependency is unreachable
func DoctorCommand(checks ...Check) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check connectivity to MongoDB, Redis, Cloudinary, Firebase and SMTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			failed := 0
			for _, check := range checks {
				err := check.Run(cmd.Context())
				switch {
				case err == nil:
					fmt.Fprintf(out, "[ ok ] %s\n", check.Name)
				case errors.Is(err, ErrSkipped):
					fmt.Fprintf(out, "[skip] %s: %v\n", check.Name, err)
				default:
					failed++
					fmt.Fprintf(out, "[FAIL] %s: %v\n", check.Name, err)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d checks failed", failed, len(checks))
			}
			return nil
		},
	}
}
