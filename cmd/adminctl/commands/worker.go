package commands

import (
	"github.com/spf13/cobra"
)

// WorkerCommand runs the notification delivery worker until interrupted
func WorkerCommand(run func() error) *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Process queued notification deliveries",
		Long: `Process notification:deliver tasks from Redis (REDIS_ADDR).
Deliveries go out by e-mail and FCM push when those channels are configured.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run()
		},
	}
}
