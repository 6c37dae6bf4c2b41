package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ludora/content-service/domain/content"
)

func newSuggestCmd(s *state) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "suggest <type:id>",
		Short: "Propose relationship targets for an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := content.ParseRef(args[0])
			if err != nil {
				return err
			}
			out, err := s.app.suggest.Suggest(cmd.Context(), ref, limit)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(out))
			for _, sug := range out {
				rows = append(rows, []string{
					sug.Target.String(),
					sug.Display,
					string(sug.Label),
					strconv.FormatFloat(sug.Score, 'f', 2, 64),
					string(sug.Reason),
				})
			}
			return s.render(out, []string{"Target", "Display", "Type", "Score", "Reason"}, rows)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum suggestions (default from SUGGESTIONS_LIMIT)")
	return cmd
}
