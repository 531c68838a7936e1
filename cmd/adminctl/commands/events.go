package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/xyz-asif/awaaz-admin/internal/features/events"
	"github.com/xyz-asif/awaaz-admin/internal/pkg/pagination"
)

type EventLister interface {
	List(ctx context.Context, q events.ListQuery) ([]events.EventPostResponse, int64, error)
}

// EventCommands returns the event post inspection commands
func EventCommands(lister EventLister) *cobra.Command {
	eventsCmd := &cobra.Command{
		Use:   "events",
		Short: "Event post commands",
	}
	eventsCmd.AddCommand(listEventsCmd(lister))
	return eventsCmd
}

func listEventsCmd(lister EventLister) *cobra.Command {
	var q events.ListQuery

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List event posts, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if q.PostType != "" && !events.IsValidPostType(q.PostType) {
				return fmt.Errorf("unknown post type %q", q.PostType)
			}
			if q.Status != "" && !events.IsValidStatus(q.Status) {
				return fmt.Errorf("unknown status %q", q.Status)
			}

			posts, total, err := lister.List(cmd.Context(), q)
			if err != nil {
				return fmt.Errorf("failed to list event posts: %w", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTYPE\tSTATUS\tPOSTER\tTITLE\tCREATED")
			for _, p := range posts {
				poster := "-"
				if p.Poster != nil {
					poster = p.Poster.Email
				}
				status := p.Status
				if p.Deleted {
					status += " (deleted)"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					p.ID.Hex(), p.PostType, status, poster, p.Title, p.CreatedAt.Format("2006-01-02 15:04"))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d event posts\n", len(posts), total)
			return nil
		},
	}

	cmd.Flags().StringVar(&q.PostType, "type", "", "incident, rescue or general_category")
	cmd.Flags().StringVar(&q.Status, "status", "", "Pending, Approved or Rejected")
	cmd.Flags().StringVar(&q.Search, "search", "", "match title or description")
	cmd.Flags().BoolVar(&q.IncludeDeleted, "deleted", false, "include soft-deleted posts")
	cmd.Flags().IntVar(&q.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&q.Limit, "limit", pagination.DefaultLimit, "page size")

	return cmd
}
