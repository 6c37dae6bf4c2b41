// Package cli implements contentctl, the operator tool for the content
// graph. It talks to the database directly and shares the service layer
// with the HTTP server.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"gopkg.in/yaml.v3"

	"github.com/ludora/content-service/domain/content"
	"github.com/ludora/content-service/domain/integrity"
	"github.com/ludora/content-service/domain/relations"
	"github.com/ludora/content-service/domain/suggestions"
	"github.com/ludora/content-service/domain/tags"
	"github.com/ludora/content-service/internal/config"
	"github.com/ludora/content-service/internal/database"
	"github.com/ludora/content-service/internal/migrate"
	"github.com/ludora/content-service/pkg/logger"
)

const defaultActor = "contentctl"

// app holds the services one command invocation works with.
type app struct {
	cfg      *config.Config
	db       *bun.DB
	closeDB  func() error
	catalog  *content.Catalog
	edges    *relations.Service
	tags     *tags.Service
	guard    *integrity.Guard
	suggest  *suggestions.Service
	migrator *migrate.Migrator
}

func newApp(cfg *config.Config, db *bun.DB, closeDB func() error, log *slog.Logger) *app {
	catalog := content.NewBunCatalog(db)
	edgeStore := relations.NewRepository(db, log)
	tagStore := tags.NewRepository(db, log)
	edges := relations.NewService(edgeStore, catalog, log)

	return &app{
		cfg:      cfg,
		db:       db,
		closeDB:  closeDB,
		catalog:  catalog,
		edges:    edges,
		tags:     tags.NewService(tagStore, log),
		guard:    integrity.NewGuard(edgeStore, tagStore, catalog, log),
		migrator: migrate.New(db, cfg.Database.Driver, log),
		suggest: suggestions.NewService(
			catalog,
			suggestions.NewSnapshotCache(catalog, cfg.Suggestions.SnapshotTTL, log),
			suggestions.NewEngine(cfg.Suggestions.Limit),
			edges,
			log,
		),
	}
}

// state is shared by every command of one root.
type state struct {
	actor   string
	output  string
	verbose bool
	out     io.Writer

	app *app
	// open is replaced in tests to inject a prepared database.
	open func(ctx context.Context, log *slog.Logger) (*app, error)
}

func openFromEnv(ctx context.Context, log *slog.Logger) (*app, error) {
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	db, closeDB, err := database.Open(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	return newApp(cfg, db, closeDB, log), nil
}

func (s *state) logger() *slog.Logger {
	if !s.verbose {
		return logger.Discard()
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// connect opens the database once per invocation.
func (s *state) connect(cmd *cobra.Command, _ []string) error {
	if s.app != nil {
		return nil
	}
	a, err := s.open(cmd.Context(), s.logger())
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	s.app = a
	return nil
}

func (s *state) disconnect(*cobra.Command, []string) error {
	if s.app == nil || s.app.closeDB == nil {
		return nil
	}
	err := s.app.closeDB()
	s.app = nil
	return err
}

// NewRootCommand builds the contentctl command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&state{open: openFromEnv})
}

func newRootCommand(s *state) *cobra.Command {
	root := &cobra.Command{
		Use:   "contentctl",
		Short: "Operate the content relationship and tagging graph",
		Long: `contentctl manages content relationships, tags and deletions directly
against the content database. Connection settings come from the same
environment variables as the server (DB_DRIVER, POSTGRES_*, SQLITE_PATH).

Items are addressed as type:id, for example word:3f2a or image:7.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(os.Stdout)

	root.PersistentFlags().StringVar(&s.actor, "actor", defaultActor, "identity recorded as creator of new edges and tags")
	root.PersistentFlags().StringVarP(&s.output, "output", "o", "table", "output format (table, json, yaml)")
	root.PersistentFlags().BoolVarP(&s.verbose, "verbose", "v", false, "log database and service activity to stderr")

	root.AddCommand(
		newVersionCmd(),
		s.withDB(newMigrateCmd(s)),
		s.withDB(newTypesCmd(s)),
		s.withDB(newEdgesCmd(s)),
		s.withDB(newTagsCmd(s)),
		s.withDB(newProtectedCmd(s)),
		s.withDB(newDeleteCmd(s)),
		s.withDB(newBulkDeleteCmd(s)),
		s.withDB(newSuggestCmd(s)),
	)
	return root
}

// withDB makes cmd and its children connect before running.
func (s *state) withDB(cmd *cobra.Command) *cobra.Command {
	cmd.PersistentPreRunE = func(c *cobra.Command, args []string) error {
		s.out = c.OutOrStdout()
		return s.connect(c, args)
	}
	cmd.PersistentPostRunE = s.disconnect
	return cmd
}

// Execute runs contentctl.
func Execute() error {
	return NewRootCommand().Execute()
}

// render writes v as JSON or YAML, or the given rows as a table.
func (s *state) render(v any, header []string, rows [][]string) error {
	switch s.output {
	case "json":
		enc := json.NewEncoder(s.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		return writeYAML(s.out, v)
	case "table", "":
	default:
		return fmt.Errorf("unknown output format %q", s.output)
	}

	table := tablewriter.NewWriter(s.out)
	table.Header(cells(header)...)
	for _, row := range rows {
		if err := table.Append(cells(row)...); err != nil {
			return err
		}
	}
	return table.Render()
}

// writeYAML goes through JSON so keys keep their json tag names.
func writeYAML(w io.Writer, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func cells(row []string) []any {
	out := make([]any, len(row))
	for i, c := range row {
		out[i] = c
	}
	return out
}

func parseRefs(args []string) ([]content.Ref, error) {
	out := make([]content.Ref, 0, len(args))
	for _, a := range args {
		ref, err := content.ParseRef(a)
		if err != nil {
			return nil, err
		}
		out = append(out, ref)
	}
	return out, nil
}
