package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ludora/content-service/domain/content"
	"github.com/ludora/content-service/domain/relations"
)

func newEdgesCmd(s *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "edges",
		Aliases: []string{"relationships"},
		Short:   "List, create and remove relationships",
		Long: `Manage relationships between content items.

Examples:
  contentctl edges list word:w1
  contentctl edges add word:w1 worden:e1 --type translation
  contentctl edges add attribute:a1 word:w1 word:w2 --type attribute_of
  contentctl edges delete 3f2a...`,
	}

	cmd.AddCommand(
		newEdgesListCmd(s),
		newEdgesAddCmd(s),
		&cobra.Command{
			Use:   "delete <edge-id>",
			Short: "Remove one relationship",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := s.app.edges.DeleteEdge(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(s.out, "deleted relationship %s\n", args[0])
				return nil
			},
		},
		newEdgesSelectableCmd(s),
	)
	return cmd
}

func newEdgesListCmd(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "list <type:id>",
		Short: "List the relationships of one item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := content.ParseRef(args[0])
			if err != nil {
				return err
			}

			views := s.app.edges.ListEdgeViews(cmd.Context(), ref)
			rows := make([][]string, 0, len(views))
			for _, v := range views {
				rows = append(rows, []string{
					v.ID,
					v.Counterpart.String(),
					v.Display,
					strings.Join(v.Types.Strings(), ", "),
				})
			}
			return s.render(views, []string{"ID", "Counterpart", "Display", "Types"}, rows)
		},
	}
}

func newEdgesAddCmd(s *state) *cobra.Command {
	var types []string

	cmd := &cobra.Command{
		Use:   "add <type:id> <target type:id>...",
		Short: "Create or extend relationships from one item",
		Long: `Link the first item to every following item with the given types.
One target extends or creates a single edge. Several targets are checked
together first and then applied one by one.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := content.ParseRef(args[0])
			if err != nil {
				return err
			}
			targets, err := parseRefs(args[1:])
			if err != nil {
				return err
			}
			labels, err := relations.ParseLabels(types)
			if err != nil {
				return err
			}

			if len(targets) == 1 {
				res, err := s.app.edges.UpsertEdge(cmd.Context(), s.actor, ref, targets[0], labels)
				if err != nil {
					return err
				}
				return s.render(res, []string{"ID", "Outcome", "Types"}, [][]string{{
					res.Edge.ID, string(res.Outcome), strings.Join(res.Edge.Types.Strings(), ", "),
				}})
			}

			res, err := s.app.edges.BulkUpsert(cmd.Context(), s.actor, ref, targets, labels)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(res.Results))
			for _, item := range res.Results {
				msg := ""
				if item.Error != nil {
					msg = *item.Error
				}
				rows = append(rows, []string{item.Target.String(), string(item.Outcome), item.EdgeID, msg})
			}
			if err := s.render(res, []string{"Target", "Outcome", "Edge", "Error"}, rows); err != nil {
				return err
			}
			if !res.OK() {
				return fmt.Errorf("%d of %d relationships failed", res.Failed, len(res.Results))
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&types, "type", "t", nil, "relationship type (translation, antonym, attribute_of, list_member); repeatable")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func newEdgesSelectableCmd(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "selectable <source-type> <target-type>...",
		Short: "Show which relationship types fit every selected target type",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			variants := make([]content.Variant, 0, len(args))
			for _, a := range args {
				v, ok := content.ParseVariant(a)
				if !ok {
					return fmt.Errorf("unknown content type %q", a)
				}
				variants = append(variants, v)
			}

			labels, conflict := relations.SelectableLabels(variants[0], variants[1:])
			if conflict != nil {
				return conflict
			}
			return s.render(relations.SelectableResponse{Types: labels},
				[]string{"Relationship types"},
				[][]string{{strings.Join(labels.Strings(), ", ")}})
		},
	}
}
