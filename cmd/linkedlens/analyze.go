package main

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rewired-gh/linkedlens/internal/analysis"
	"github.com/rewired-gh/linkedlens/internal/calfmt"
	"github.com/rewired-gh/linkedlens/internal/logger"
	"github.com/rewired-gh/linkedlens/internal/models"
	"github.com/rewired-gh/linkedlens/internal/narrative"
	"github.com/rewired-gh/linkedlens/internal/output"
	"github.com/rewired-gh/linkedlens/internal/storage"
	"github.com/rewired-gh/linkedlens/internal/telegram"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [kinds...]",
	Short: "Run analyses over the export",
	Long: `Load the export directory and run the selected analyses in a fixed order.
Without arguments the kinds from the configuration are used ("all" by default).

Examples:
  linkedlens analyze                       # Every analysis
  linkedlens analyze monthly peaks         # Selected analyses
  linkedlens analyze --lang en --seed 7    # English, reproducible commentary
  linkedlens analyze --notify              # Also send a Telegram digest
  linkedlens analyze --watch 10m           # Reload and rerun every 10 minutes`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	f := analyzeCmd.Flags()
	f.BoolP("yes", "y", false, "skip the consent prompt")
	f.Bool("json", false, "output as JSON")
	f.Uint64("seed", 0, "seed for commentary variants (0 picks at random)")
	f.Int("top", 0, "length of ranked lists")
	f.Bool("notify", false, "send a Telegram digest")
	f.Duration("watch", 0, "reload the export and rerun at this interval")

	_ = v.BindPFlag("analysis.seed", f.Lookup("seed"))
	_ = v.BindPFlag("analysis.top_n", f.Lookup("top"))
	_ = v.BindPFlag("telegram.enabled", f.Lookup("notify"))
	_ = v.BindPFlag("data.refresh_interval", f.Lookup("watch"))
}

// jsonReport adds the error text that analysis.Report leaves out of JSON.
type jsonReport struct {
	analysis.Report
	Error string `json:"error,omitempty"`
}

type jsonRun struct {
	Snapshot string              `json:"snapshot"`
	LoadedAt time.Time           `json:"loaded_at"`
	Files    []models.FileStatus `json:"files"`
	Reports  []jsonReport        `json:"reports"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	p := newPrinter(cmd)
	asJSON, _ := cmd.Flags().GetBool("json")
	yes, _ := cmd.Flags().GetBool("yes")

	names := cfg.Analysis.Kinds
	if len(args) > 0 {
		names = args
	}
	kinds, err := analysis.ParseKinds(names)
	if err != nil {
		return &output.CLIError{
			Summary:    err.Error(),
			Suggestion: "Run 'linkedlens kinds' to see available analyses",
			ExitCode:   output.ExitUsageError,
		}
	}

	if !yes && !p.Confirm(cmd.InOrStdin(), fmt.Sprintf("linkedlens will read your LinkedIn export in %s. Continue?", cfg.Data.Dir)) {
		p.Warning("Aborted, nothing was read")
		return nil
	}

	f := calfmt.New(cfg.LanguageTag())
	runner := analysis.NewRunner(f, narrative.New(f, narrative.NewChooser(cfg.Analysis.Seed)), cfg.Analysis.TopN)
	store := storage.New(cfg.Data.Dir, cfg.Location(), cfg.Data.MaxHistory)

	var notifier *telegram.Client
	if cfg.Telegram.Enabled {
		notifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Telegram.MaxRetries, cfg.Telegram.RetryDelayBase)
		if err != nil {
			return &output.CLIError{
				Summary:  "cannot reach Telegram",
				Detail:   err.Error(),
				ExitCode: output.ExitNotifyError,
			}
		}
		logger.Info("Telegram client initialized successfully")
	}

	run := &analyzeRun{
		printer:  p,
		format:   f,
		runner:   runner,
		store:    store,
		notifier: notifier,
		kinds:    kinds,
		asJSON:   asJSON,
	}

	if err := run.once(cmd.Context()); err != nil {
		return err
	}
	if cfg.Data.RefreshInterval <= 0 {
		return nil
	}
	return run.watch(cmd.Context(), cfg.Data.RefreshInterval)
}

type analyzeRun struct {
	printer  *output.Printer
	format   calfmt.Formatter
	runner   *analysis.Runner
	store    *storage.Storage
	notifier *telegram.Client
	kinds    []analysis.Kind
	asJSON   bool

	lastSent string // contents of the last snapshot sent to Telegram
}

// contents fingerprints what a snapshot holds, so an unchanged export is not
// notified twice while watching. Each family contributes its row count and
// the earliest, latest and summed timestamps. Positions use their start only:
// an ongoing position ends at load time.
func contents(ds *models.Dataset) string {
	var b strings.Builder
	family := func(name string, ts []time.Time) {
		fmt.Fprintf(&b, "%s:%d", name, len(ts))
		if len(ts) > 0 {
			var sum int64
			for _, t := range ts {
				sum += t.Unix()
			}
			fmt.Fprintf(&b, ":%d:%d:%d",
				slices.MinFunc(ts, time.Time.Compare).Unix(), slices.MaxFunc(ts, time.Time.Compare).Unix(), sum)
		}
		b.WriteByte(';')
	}

	byKind := make(map[models.EventKind][]time.Time)
	for _, e := range ds.Events() {
		byKind[e.Kind] = append(byKind[e.Kind], e.Timestamp)
	}
	for _, kind := range slices.Sorted(maps.Keys(byKind)) {
		family(string(kind), byKind[kind])
	}

	var ts []time.Time
	for _, c := range ds.Connections() {
		ts = append(ts, c.ConnectedAt)
	}
	family("connections", ts)

	ts = nil
	for _, j := range ds.SavedJobs() {
		ts = append(ts, j.SavedAt)
	}
	family("saved_jobs", ts)

	ts = nil
	for _, p := range ds.Positions() {
		ts = append(ts, p.StartedAt)
	}
	family("positions", ts)

	return b.String()
}

// once refreshes the snapshot, runs the analyses and delivers the results.
func (r *analyzeRun) once(ctx context.Context) error {
	ds, err := r.store.Refresh()
	if err != nil {
		return &output.CLIError{
			Summary:    "cannot read the export",
			Detail:     err.Error(),
			Suggestion: "Check --data-dir, or run 'linkedlens files'",
			ExitCode:   output.ExitDataError,
		}
	}

	reports := r.runner.Run(ds, r.kinds)
	if r.asJSON {
		if err := r.writeJSON(ds, reports); err != nil {
			return err
		}
	} else {
		r.printer.Snapshot(ds)
		for _, rep := range reports {
			r.printer.Report(rep, r.format)
		}
	}

	if r.notifier != nil {
		if sig := contents(ds); sig == r.lastSent {
			logger.Debug("Export unchanged since the last digest, not sending")
			return nil
		}
		if err := r.notifier.Send(ctx, ds, reports, r.format); err != nil {
			return &output.CLIError{
				Summary:  "failed to send Telegram digest",
				Detail:   err.Error(),
				ExitCode: output.ExitNotifyError,
			}
		}
		r.lastSent = contents(ds)
		r.printer.Success("Telegram digest sent")
	}
	return nil
}

// watch reruns once on every tick until ctx is cancelled. Failed rounds are
// logged and the previous snapshot stays current.
func (r *analyzeRun) watch(ctx context.Context, interval time.Duration) error {
	logger.Info("Watching %s (interval: %v)", cfg.Data.Dir, interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Shutdown signal received, stopping")
			return nil
		case <-ticker.C:
			if err := r.once(ctx); err != nil {
				logger.Error("Refresh failed: %v", err)
				continue
			}
			if h := r.store.History(); len(h) > 1 {
				prev := h[len(h)-2]
				r.printer.Info("%s", r.printer.Dim(fmt.Sprintf("previous snapshot %s loaded %s with %d interactions",
					prev.ID[:8], output.Elapsed(prev.LoadedAt), prev.Events)))
			}
		}
	}
}

func (r *analyzeRun) writeJSON(ds *models.Dataset, reports []analysis.Report) error {
	out := jsonRun{
		Snapshot: ds.ID(),
		LoadedAt: ds.LoadedAt(),
		Files:    ds.Files(),
		Reports:  make([]jsonReport, len(reports)),
	}
	for i, rep := range reports {
		out.Reports[i] = jsonReport{Report: rep}
		if rep.Err != nil {
			out.Reports[i].Error = rep.Err.Error()
		}
	}

	enc := json.NewEncoder(r.printer.Out())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
