package cli

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
)

func newMigrateCmd(s *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or inspect schema migrations",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := s.app.migrator.Up(cmd.Context()); err != nil {
					return err
				}
				return printVersion(s, cmd)
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := s.app.migrator.Down(cmd.Context()); err != nil {
					return err
				}
				return printVersion(s, cmd)
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "List migrations and whether they are applied",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				statuses, err := s.app.migrator.Status(cmd.Context())
				if err != nil {
					return err
				}

				type row struct {
					Version   int64  `json:"version"`
					File      string `json:"file"`
					State     string `json:"state"`
					AppliedAt string `json:"applied_at,omitempty"`
				}
				out := make([]row, 0, len(statuses))
				rows := make([][]string, 0, len(statuses))
				for _, st := range statuses {
					r := row{
						Version: st.Source.Version,
						File:    filepath.Base(st.Source.Path),
						State:   string(st.State),
					}
					if !st.AppliedAt.IsZero() {
						r.AppliedAt = st.AppliedAt.UTC().Format("2006-01-02 15:04:05")
					}
					out = append(out, r)
					rows = append(rows, []string{strconv.FormatInt(r.Version, 10), r.File, r.State, r.AppliedAt})
				}
				return s.render(out, []string{"Version", "File", "State", "Applied"}, rows)
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return printVersion(s, cmd)
			},
		},
	)
	return cmd
}

func printVersion(s *state, cmd *cobra.Command) error {
	v, err := s.app.migrator.Version(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "schema version %d (%s)\n", v, s.app.cfg.Database.Driver)
	return nil
}
