// Package main is the entry point for the notionsync CLI tool.
//
// notionsync keeps locally declared database schemas in sync with a
// remote workspace. It can infer a manifest from an existing remote
// database, plan the changes a manifest implies, apply them, and
// upsert records by their unique keys.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/lmittmann/tint"
	"github.com/maruel/notionsync/internal/manifest"
	"github.com/maruel/notionsync/internal/notion"
	"github.com/maruel/notionsync/internal/schema"
	"github.com/maruel/notionsync/internal/snapshot"
	"github.com/maruel/notionsync/internal/syncer"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"
)

const usage = `usage: notionsync <command> [flags]

Commands:
  infer    print a manifest inferred from a remote database
  plan     show the schema changes a manifest implies
  apply    apply a manifest's schema changes remotely
  upsert   create or update records from a YAML file
  export   snapshot all records of the manifest's databases to JSONL
  schema   print the JSON Schema of the manifest format
`

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "notionsync: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		return errors.New("a command is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	switch os.Args[1] {
	case "infer":
		return runInfer(ctx, os.Args[2:])
	case "plan":
		return runPlan(ctx, os.Args[2:])
	case "apply":
		return runApply(ctx, os.Args[2:])
	case "upsert":
		return runUpsert(ctx, os.Args[2:])
	case "export":
		return runExport(ctx, os.Args[2:])
	case "schema":
		return runSchema(os.Args[2:])
	case "-h", "--help", "help":
		fmt.Print(usage)
		return nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", os.Args[1])
	}
}

// setupLogging installs a tinted slog handler on stderr.
func setupLogging(verbose bool) {
	ll := &slog.LevelVar{}
	ll.Set(slog.LevelInfo)
	if verbose {
		ll.Set(slog.LevelDebug)
	}
	logger := slog.New(tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:      ll,
		TimeFormat: "15:04:05.000", // Like time.TimeOnly plus milliseconds.
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}))
	slog.SetDefault(logger)
}

// newClient builds the API client from the flag or environment token.
func newClient(token string) (*notion.Client, error) {
	if token == "" {
		token = os.Getenv("NOTION_TOKEN")
	}
	if token == "" {
		return nil, errors.New("-token or NOTION_TOKEN environment variable is required")
	}
	return notion.NewClient(token), nil
}

func runInfer(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("infer", flag.ExitOnError)
	token := fs.String("token", "", "Integration token (or set NOTION_TOKEN)")
	databaseID := fs.String("database", "", "Remote database ID (required)")
	verbose := fs.Bool("v", false, "Verbose logging")
	_ = fs.Parse(args)
	setupLogging(*verbose)

	if *databaseID == "" {
		return errors.New("-database is required")
	}
	client, err := newClient(*token)
	if err != nil {
		return err
	}

	db, err := client.GetDatabase(ctx, *databaseID)
	if err != nil {
		return fmt.Errorf("failed to fetch database: %w", err)
	}
	inferred := schema.Infer(db.Properties, *databaseID)
	m := manifest.Manifest{
		Version:   1,
		Databases: []manifest.DatabaseConfig{manifest.FromSchema(*databaseID, inferred)},
	}
	out, err := yaml.Marshal(&m)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	_, err = os.Stdout.Write(out)
	return err
}

func runPlan(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("plan", flag.ExitOnError)
	token := fs.String("token", "", "Integration token (or set NOTION_TOKEN)")
	manifestPath := fs.String("manifest", "notionsync.yaml", "Manifest file path")
	verbose := fs.Bool("v", false, "Verbose logging")
	_ = fs.Parse(args)
	setupLogging(*verbose)

	client, err := newClient(*token)
	if err != nil {
		return err
	}
	return planAll(ctx, client, *manifestPath, false)
}

func runApply(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("apply", flag.ExitOnError)
	token := fs.String("token", "", "Integration token (or set NOTION_TOKEN)")
	manifestPath := fs.String("manifest", "notionsync.yaml", "Manifest file path")
	watch := fs.Bool("watch", false, "Re-apply when the manifest file changes")
	verbose := fs.Bool("v", false, "Verbose logging")
	_ = fs.Parse(args)
	setupLogging(*verbose)

	client, err := newClient(*token)
	if err != nil {
		return err
	}

	if err := planAll(ctx, client, *manifestPath, true); err != nil {
		if !*watch {
			return err
		}
		slog.ErrorContext(ctx, "Apply failed, watching for changes", "err", err)
	}
	if !*watch {
		return nil
	}
	return watchManifest(ctx, *manifestPath, func() {
		if err := planAll(ctx, client, *manifestPath, true); err != nil {
			slog.ErrorContext(ctx, "Apply failed", "err", err)
		}
	})
}

// planAll plans every database in the manifest and, when apply is
// set, pushes the changes.
func planAll(ctx context.Context, client *notion.Client, manifestPath string, apply bool) error {
	m, err := manifest.Parse(manifestPath)
	if err != nil {
		return err
	}
	sync := syncer.New(client)
	for i := range m.Databases {
		db := &m.Databases[i]
		local, err := db.ToSchema()
		if err != nil {
			return err
		}
		plan, err := sync.Plan(ctx, db.DatabaseID, local)
		if err != nil {
			return err
		}
		printPlan(plan)
		updates, err := schema.ApplyChanges(local, plan.Diffs, db.ConflictStrategy())
		if err != nil {
			return err
		}
		if !apply || len(updates) == 0 {
			continue
		}
		if _, err := client.UpdateDatabase(ctx, db.DatabaseID, &notion.UpdateDatabaseRequest{Properties: updates}); err != nil {
			return fmt.Errorf("failed to update database %s: %w", db.DatabaseID, err)
		}
		slog.InfoContext(ctx, "Applied schema changes", "database", db.DatabaseID, "properties", len(updates))
	}
	return nil
}

// printPlan writes a human-readable diff summary to stdout.
func printPlan(plan *syncer.Plan) {
	fmt.Printf("%s:\n", plan.DatabaseID)
	if len(plan.Diffs) == 0 {
		fmt.Println("  up to date")
		return
	}
	for _, d := range plan.Diffs {
		switch d.Op {
		case schema.DiffAdded:
			fmt.Printf("  + %s (%s)\n", d.Key, d.Field.Type)
		case schema.DiffRemoved:
			fmt.Printf("  - %s (%s)\n", d.Key, d.Field.Type)
		case schema.DiffModified:
			fmt.Printf("  ~ %s %v\n", d.Key, d.Changes)
		}
	}
}

func runUpsert(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("upsert", flag.ExitOnError)
	token := fs.String("token", "", "Integration token (or set NOTION_TOKEN)")
	manifestPath := fs.String("manifest", "notionsync.yaml", "Manifest file path")
	databaseID := fs.String("database", "", "Remote database ID (defaults to the manifest's only database)")
	recordsPath := fs.String("records", "", "YAML file with a list of records (required)")
	verbose := fs.Bool("v", false, "Verbose logging")
	_ = fs.Parse(args)
	setupLogging(*verbose)

	if *recordsPath == "" {
		return errors.New("-records is required")
	}
	client, err := newClient(*token)
	if err != nil {
		return err
	}
	m, err := manifest.Parse(*manifestPath)
	if err != nil {
		return err
	}
	db, err := pickDatabase(m, *databaseID)
	if err != nil {
		return err
	}
	if len(db.UniqueKeys) == 0 {
		return fmt.Errorf("database %s declares no unique_keys", db.DatabaseID)
	}
	local, err := db.ToSchema()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(*recordsPath) //nolint:gosec // User-specified records path
	if err != nil {
		return fmt.Errorf("failed to read records: %w", err)
	}
	var records []map[string]any
	if err := yaml.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("failed to parse records: %w", err)
	}

	sync := syncer.New(client)
	for i, rec := range records {
		if _, err := sync.Upsert(ctx, db.DatabaseID, local, db.UniqueKeys, rec); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	return nil
}

func runExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	token := fs.String("token", "", "Integration token (or set NOTION_TOKEN)")
	manifestPath := fs.String("manifest", "notionsync.yaml", "Manifest file path")
	out := fs.String("out", "snapshots", "Snapshot output directory")
	verbose := fs.Bool("v", false, "Verbose logging")
	_ = fs.Parse(args)
	setupLogging(*verbose)

	client, err := newClient(*token)
	if err != nil {
		return err
	}
	m, err := manifest.Parse(*manifestPath)
	if err != nil {
		return err
	}
	store, err := snapshot.NewStore(*out)
	if err != nil {
		return err
	}

	sync := syncer.New(client)
	for i := range m.Databases {
		db := &m.Databases[i]
		local, err := db.ToSchema()
		if err != nil {
			return err
		}
		records, err := sync.Records(ctx, db.DatabaseID, local)
		if err != nil {
			return err
		}
		if err := store.Write(db.DatabaseID, records); err != nil {
			return err
		}
		slog.InfoContext(ctx, "Exported records", "database", db.DatabaseID, "records", len(records), "path", store.Path(db.DatabaseID))
	}
	return nil
}

// pickDatabase selects a manifest database by ID, or the only one.
func pickDatabase(m *manifest.Manifest, databaseID string) (*manifest.DatabaseConfig, error) {
	if databaseID == "" {
		if len(m.Databases) != 1 {
			return nil, errors.New("-database is required when the manifest declares several databases")
		}
		return &m.Databases[0], nil
	}
	for i := range m.Databases {
		if m.Databases[i].DatabaseID == databaseID {
			return &m.Databases[i], nil
		}
	}
	return nil, fmt.Errorf("database %s is not declared in the manifest", databaseID)
}

func runSchema(args []string) error {
	fs := flag.NewFlagSet("schema", flag.ExitOnError)
	_ = fs.Parse(args)
	data, err := manifest.JSONSchema()
	if err != nil {
		return err
	}
	fmt.Printf("%s\n", data)
	return nil
}

// watchManifest re-runs apply whenever the manifest file changes,
// until the context is canceled.
func watchManifest(ctx context.Context, path string, apply func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()
	if err := w.Add(path); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Watching manifest", "path", path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				slog.InfoContext(ctx, "Manifest changed, re-applying", "path", path)
				apply()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.WarnContext(ctx, "Error watching manifest", "err", err)
		}
	}
}
