package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/ludora/content-service/domain/content"
	"github.com/ludora/content-service/domain/relations"
)

func newTypesCmd(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List content types and the relationship types each pair allows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			type pair struct {
				Source  content.Variant    `json:"source"`
				Target  content.Variant    `json:"target"`
				Allowed relations.LabelSet `json:"relationship_types"`
			}

			variants := s.app.catalog.Variants()
			var out []pair
			var rows [][]string
			for i, a := range variants {
				for _, b := range variants[i:] {
					allowed := relations.AllowedTypes(a, b)
					if len(allowed) == 0 {
						continue
					}
					out = append(out, pair{Source: a, Target: b, Allowed: allowed})
					rows = append(rows, []string{string(a), string(b), strings.Join(allowed.Strings(), ", ")})
				}
			}
			return s.render(out, []string{"Source", "Target", "Relationship types"}, rows)
		},
	}
}
