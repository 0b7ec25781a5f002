package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/condagraph/condagraph/pkg/export"
	"github.com/condagraph/condagraph/pkg/history"
)

// newHistoryCmd creates the history command group.
func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse stored analysis snapshots",
		Long: `Browse analysis snapshots stored with "analyze --save".

Snapshots live in local files by default, or in MongoDB when a URI is
configured.`,
	}

	cmd.AddCommand(newHistoryListCmd())
	cmd.AddCommand(newHistoryShowCmd())
	cmd.AddCommand(newHistoryDiffCmd())

	return cmd
}

// newHistoryStore opens the configured snapshot store: MongoDB when a URI
// is configured, local files otherwise.
func newHistoryStore(ctx context.Context, cfg Config) (history.Store, error) {
	if cfg.Mongo.URI != "" {
		return history.NewMongoStore(ctx, cfg.Mongo.URI)
	}
	return history.NewFileStore("")
}

// newHistoryListCmd creates the "history list" subcommand.
func newHistoryListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [env-name]",
		Short: "List snapshots, newest first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			envName := ""
			if len(args) == 1 {
				envName = args[0]
			}
			return runHistoryList(c.Context(), cfg, envName)
		},
	}
}

func runHistoryList(ctx context.Context, cfg Config, envName string) error {
	store, err := newHistoryStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	snaps, err := store.List(ctx, envName)
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		printInfo("No snapshots stored")
		return nil
	}

	for _, s := range snaps {
		packages := 0
		if s.Report != nil {
			packages = len(s.Report.Packages)
		}
		fmt.Printf("%s  %s  %-20s %s\n",
			s.ID,
			s.CreatedAt.Format("2006-01-02 15:04"),
			s.EnvName,
			StyleNumber.Render(fmt.Sprintf("%d packages", packages)))
	}
	return nil
}

// newHistoryShowCmd creates the "history show" subcommand.
func newHistoryShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <snapshot-id>",
		Short: "Print one snapshot's report",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runHistoryShow(c.Context(), cfg, args[0])
		},
	}
}

func runHistoryShow(ctx context.Context, cfg Config, idArg string) error {
	id, err := uuid.Parse(idArg)
	if err != nil {
		return fmt.Errorf("invalid snapshot ID %q: %w", idArg, err)
	}

	store, err := newHistoryStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	snap, err := store.Get(ctx, id)
	if err != nil {
		return err
	}

	fmt.Println(StyleTitle.Render("Snapshot " + snap.ID.String()))
	printKeyValue("Environment", snap.EnvName)
	printKeyValue("Created", snap.CreatedAt.Format("2006-01-02 15:04 UTC"))
	printNewline()
	return export.WriteText(os.Stdout, snap.Report)
}

// newHistoryDiffCmd creates the "history diff" subcommand.
func newHistoryDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <older-id> <newer-id>",
		Short: "Compare the package sets of two snapshots",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runHistoryDiff(c.Context(), cfg, args[0], args[1])
		},
	}
}

func runHistoryDiff(ctx context.Context, cfg Config, olderArg, newerArg string) error {
	store, err := newHistoryStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	older, err := fetchSnapshot(ctx, store, olderArg)
	if err != nil {
		return err
	}
	newer, err := fetchSnapshot(ctx, store, newerArg)
	if err != nil {
		return err
	}

	changes := history.Diff(older, newer)
	if len(changes) == 0 {
		printInfo("No changes between snapshots")
		return nil
	}
	for _, ch := range changes {
		fmt.Println(formatChange(ch))
	}
	return nil
}

// fetchSnapshot parses an ID argument and loads its snapshot.
func fetchSnapshot(ctx context.Context, store history.Store, idArg string) (*history.Snapshot, error) {
	id, err := uuid.Parse(idArg)
	if err != nil {
		return nil, fmt.Errorf("invalid snapshot ID %q: %w", idArg, err)
	}
	snap, err := store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot %s: %w", id, err)
	}
	return snap, nil
}

// formatChange renders one diff line: "+ numpy 1.26.0" for additions,
// "- scipy 1.10.1" for removals, and "~ pandas 2.0.1 → 2.1.0" for updates.
func formatChange(ch history.Change) string {
	switch ch.Kind {
	case history.ChangeAdded:
		return StyleSuccess.Render("+") + " " + ch.Package + " " + ch.To
	case history.ChangeRemoved:
		return StyleError.Render("-") + " " + ch.Package + " " + ch.From
	default:
		return StyleWarning.Render("~") + " " + fmt.Sprintf("%s %s %s %s", ch.Package, ch.From, iconArrow, ch.To)
	}
}
