package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/hypersite/hypersite/internal/config"
	"github.com/hypersite/hypersite/internal/ledger"
)

// HistoryCmd implements the 'history' command over the local build ledger.
type HistoryCmd struct {
	Limit int `short:"n" default:"10" help:"Number of builds to show"`
}

func (h *HistoryCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if !cfg.Ledger.Enabled {
		return fmt.Errorf("the build ledger is disabled; set ledger.enabled in %s", root.Config)
	}

	store, err := ledger.Open(cfg.Ledger.Path)
	if err != nil {
		return fmt.Errorf("open build ledger: %w", err)
	}
	defer store.Close()

	entries, err := store.Recent(context.Background(), h.Limit)
	if err != nil {
		return fmt.Errorf("read build ledger: %w", err)
	}
	if len(entries) == 0 {
		fmt.Println("No builds recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "BUILD\tSTARTED\tDURATION\tOUTCOME\tPAGES\tWARNINGS")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\n",
			shortID(e.BuildID),
			e.StartedAt.Local().Format("2006-01-02 15:04:05"),
			e.FinishedAt.Sub(e.StartedAt).String(),
			e.Outcome,
			e.Pages,
			e.Warnings,
		)
	}
	return w.Flush()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
