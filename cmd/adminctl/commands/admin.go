package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/xyz-asif/awaaz-admin/internal/features/auth"
)

type AdminCreator interface {
	CreateAdmin(ctx context.Context, req auth.CreateAdminRequest) (*auth.Admin, error)
}

// SeedAdminCommand creates a back-office account
func SeedAdminCommand(admins AdminCreator) *cobra.Command {
	var req auth.CreateAdminRequest

	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create an admin account",
		Long: `Create an admin account that can sign in to the dashboard.

The password is read from --password or, when omitted, from ADMIN_PASSWORD.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if req.Password == "" {
				req.Password = os.Getenv("ADMIN_PASSWORD")
			}

			admin, err := admins.CreateAdmin(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("failed to create admin: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s admin %s (%s)\n", admin.Role, admin.Email, admin.ID.Hex())
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "admin email (required)")
	cmd.Flags().StringVar(&req.Name, "name", "", "display name (required)")
	cmd.Flags().StringVar(&req.Password, "password", "", "password, at least 8 characters")
	cmd.Flags().StringVar(&req.Role, "role", "admin", "superadmin, admin or moderator")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
