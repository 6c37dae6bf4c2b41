package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ludora/content-service/domain/content"
)

func newProtectedCmd(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "protected <type:id>",
		Short: "Report whether games still reference an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := content.ParseRef(args[0])
			if err != nil {
				return err
			}
			check, err := s.app.guard.HasProtectedReferences(cmd.Context(), ref)
			if err != nil {
				return err
			}
			return s.render(check, []string{"Item", "Protected", "Game references"}, [][]string{{
				check.Ref.String(), strconv.FormatBool(check.Protected), strconv.Itoa(check.References),
			}})
		},
	}
}

func newDeleteCmd(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <type:id>",
		Short: "Delete an item after removing its relationships and tags",
		Long: `Delete one item. Items referenced by a game are refused. Otherwise every
relationship and tag assignment of the item is removed first; if any of
them cannot be removed the item itself is kept.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := content.ParseRef(args[0])
			if err != nil {
				return err
			}
			res, err := s.app.guard.DeleteEntity(cmd.Context(), ref)
			if err != nil {
				return err
			}
			return s.render(res, []string{"Item", "Edges removed", "Tags removed"}, [][]string{{
				res.Ref.String(), strconv.Itoa(res.Cascade.EdgesRemoved), strconv.Itoa(res.Cascade.TagsRemoved),
			}})
		},
	}
}

func newBulkDeleteCmd(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "bulk-delete <type> <id>...",
		Short: "Delete many items of one type, skipping those games reference",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, ok := content.ParseVariant(args[0])
			if !ok {
				return fmt.Errorf("unknown content type %q", args[0])
			}

			res := s.app.guard.BulkDelete(cmd.Context(), v, args[1:])
			rows := make([][]string, 0, res.Total())
			for _, id := range res.Deleted {
				rows = append(rows, []string{id, "deleted", ""})
			}
			for _, item := range res.Skipped {
				rows = append(rows, []string{item.ID, "skipped", fmt.Sprintf("%d game reference(s)", item.References)})
			}
			for _, item := range res.Errors {
				rows = append(rows, []string{item.ID, "error", item.Error})
			}
			if err := s.render(res, []string{"ID", "Result", "Detail"}, rows); err != nil {
				return err
			}
			if len(res.Errors) > 0 {
				return fmt.Errorf("%d of %d deletes failed", len(res.Errors), res.Total())
			}
			return nil
		},
	}
}
