package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ludora/content-service/domain/content"
	"github.com/ludora/content-service/domain/tags"
)

func newTagsCmd(s *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Manage tags and tag assignments",
		Long: `Manage tags and their assignments to content items.

Examples:
  contentctl tags list
  contentctl tags show image:7
  contentctl tags assign image:7 animals
  contentctl tags unassign image:7 <tag-id>
  contentctl tags prune`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List every tag with its usage count",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				all := s.app.tags.ListWithUsage(cmd.Context())
				rows := make([][]string, 0, len(all))
				for _, t := range all {
					rows = append(rows, []string{t.ID, t.Name, strconv.Itoa(t.Usage)})
				}
				return s.render(all, []string{"ID", "Name", "Usage"}, rows)
			},
		},
		&cobra.Command{
			Use:   "show <type:id>",
			Short: "List the tags of one item",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ref, err := content.ParseRef(args[0])
				if err != nil {
					return err
				}
				return renderTags(s, s.app.tags.ListTagsFor(cmd.Context(), ref))
			},
		},
		&cobra.Command{
			Use:   "assign <type:id> <name>",
			Short: "Tag an item, creating the tag if no tag has that name",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				ref, err := content.ParseRef(args[0])
				if err != nil {
					return err
				}
				tag, err := s.app.tags.CreateAndAssign(cmd.Context(), s.actor, ref, args[1])
				if err != nil {
					return err
				}
				return renderTags(s, []*tags.Tag{tag})
			},
		},
		&cobra.Command{
			Use:   "unassign <type:id> <tag-id>",
			Short: "Remove a tag from an item",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				ref, err := content.ParseRef(args[0])
				if err != nil {
					return err
				}
				removed, err := s.app.tags.Unassign(cmd.Context(), ref, args[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(s.out, "removed %d assignment(s)\n", removed)
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete <tag-id>",
			Short: "Delete a tag and all of its assignments",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				removed, err := s.app.tags.DeleteTag(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(s.out, "deleted tag %s and %d assignment(s)\n", args[0], removed)
				return nil
			},
		},
		&cobra.Command{
			Use:   "prune",
			Short: "Remove assignments whose tag no longer exists",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				removed, err := s.app.tags.PruneOrphans(cmd.Context())
				fmt.Fprintf(s.out, "pruned %d orphan assignment(s)\n", removed)
				return err
			},
		},
	)
	return cmd
}

func renderTags(s *state, list []*tags.Tag) error {
	rows := make([][]string, 0, len(list))
	for _, t := range list {
		rows = append(rows, []string{t.ID, t.Name})
	}
	return s.render(list, []string{"ID", "Name"}, rows)
}
