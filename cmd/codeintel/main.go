package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/vampirenirmal/codeintel/internal/config"
	"github.com/vampirenirmal/codeintel/internal/dispatch"
	"github.com/vampirenirmal/codeintel/internal/engine"
	"github.com/vampirenirmal/codeintel/internal/insight"
)

const usage = `Usage: codeintel <command> [flags] [file]

Commands:
  analyze    Analyze a code fragment and print the quality report
  generate   Generate a code artifact from a feature description
  validate   Run hard-fail validation on a code fragment
  optimize   Apply optimization post-processing to a code fragment
  practices  List best practices and anti-patterns for a technology

Code is read from the file argument, or stdin when no file is given.`

// report is the CLI output envelope. Request identity and timing live
// here, at the presentation layer, so the engine results themselves stay
// deterministic.
type report struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Category  string `json:"category,omitempty"`
	Result    any    `json:"result"`
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}

	if err := run(os.Args[1], os.Args[2:]); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func run(command string, args []string) error {
	fs := flag.NewFlagSet(command, flag.ExitOnError)
	category := fs.String("category", "", "category (database, backend, frontend); sniffed from technology when empty")
	technology := fs.String("technology", "", "target technology (free text, case-insensitive)")
	feature := fs.String("feature", "", "feature description for generate")
	role := fs.String("role", "", "requesting role for generate")
	quality := fs.String("quality", "", "quality tier: basic, standard, enterprise, production")
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	dispatcher := dispatch.New(logger)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Limits.AnalyzeTimeout)
	defer cancel()

	context7 := fetchInsights(ctx, cfg, *technology, logger)

	switch command {
	case "analyze":
		// Several file arguments turn analyze into a batch run.
		if len(fs.Args()) > 1 {
			return runBatch(ctx, dispatcher, fs.Args(), *category, *technology, cfg, context7, logger)
		}
		code, err := readCode(fs.Args(), cfg.Limits.MaxCodeSize)
		if err != nil {
			return err
		}
		analysis, err := dispatcher.AnalyzeCode(ctx, *category, code, *technology, context7)
		if err != nil {
			return err
		}
		return printReport(*category, analysis)

	case "generate":
		req := &engine.CodeGenerationRequest{
			FeatureDescription: *feature,
			Role:               *role,
			Quality:            pick(*quality, cfg.Engine.DefaultQuality),
		}
		if *technology != "" {
			req.TechStack = []string{*technology}
		}
		code, err := dispatcher.GenerateCode(ctx, *category, req, context7)
		if err != nil {
			return err
		}
		fmt.Println(code)
		return nil

	case "validate":
		code, err := readCode(fs.Args(), cfg.Limits.MaxCodeSize)
		if err != nil {
			return err
		}
		result, err := dispatcher.ValidateCode(ctx, *category, code, *technology)
		if err != nil {
			return err
		}
		if err := printReport(*category, result); err != nil {
			return err
		}
		if !result.Valid {
			os.Exit(2)
		}
		return nil

	case "optimize":
		code, err := readCode(fs.Args(), cfg.Limits.MaxCodeSize)
		if err != nil {
			return err
		}
		out, err := dispatcher.OptimizeCode(ctx, *category, code, *technology, context7)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil

	case "practices":
		best, err := dispatcher.BestPractices(*category, *technology, context7)
		if err != nil {
			return err
		}
		anti, err := dispatcher.AntiPatterns(*category, *technology, context7)
		if err != nil {
			return err
		}
		resolved, err := dispatcher.ResolveCategory(*category, *technology)
		if err != nil {
			return err
		}
		return printReport(resolved, map[string][]string{
			"bestPractices": best,
			"antiPatterns":  anti,
			"technologies":  dispatcher.TechnologiesFor(resolved),
		})

	default:
		fmt.Fprintln(os.Stderr, usage)
		return fmt.Errorf("unknown command: %s", command)
	}
}

// runBatch analyzes every named file concurrently and prints one report
// entry per file, in argument order.
func runBatch(ctx context.Context, dispatcher *dispatch.Dispatcher, files []string, category, technology string, cfg *config.Config, context7 *engine.Context7Data, logger *slog.Logger) error {
	items := make([]dispatch.BatchItem, 0, len(files))
	for _, path := range files {
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		if len(raw) > cfg.Limits.MaxCodeSize {
			return fmt.Errorf("%s exceeds the %d byte limit", path, cfg.Limits.MaxCodeSize)
		}
		items = append(items, dispatch.BatchItem{
			Name:       path,
			Code:       string(raw),
			Technology: technology,
			Category:   category,
		})
	}

	results := dispatch.NewBatchAnalyzer(dispatcher, 0, logger).Run(ctx, items, context7)

	type entry struct {
		Name     string               `json:"name"`
		Category string               `json:"category,omitempty"`
		Analysis *engine.CodeAnalysis `json:"analysis,omitempty"`
		Error    string               `json:"error,omitempty"`
	}
	entries := make([]entry, len(results))
	failed := false
	for i, res := range results {
		entries[i] = entry{Name: res.Name, Category: res.Category, Analysis: res.Analysis}
		if res.Err != nil {
			entries[i].Error = res.Err.Error()
			failed = true
		}
	}
	if err := printReport(category, entries); err != nil {
		return err
	}
	if failed {
		return fmt.Errorf("batch analysis finished with failures")
	}
	return nil
}

// fetchInsights asks the broker for knowledge when enabled. Any failure
// degrades to nil: analysis proceeds on static knowledge.
func fetchInsights(ctx context.Context, cfg *config.Config, technology string, logger *slog.Logger) *engine.Context7Data {
	if !cfg.Insight.Enabled || technology == "" {
		return nil
	}

	var store insight.Store = insight.NewMemoryStore()
	if cfg.Insight.CacheDir != "" {
		store = insight.NewFileStore(cfg.Insight.CacheDir)
	}
	client := insight.NewClient(
		insight.WithBaseURL(cfg.Insight.BaseURL),
		insight.WithTimeout(cfg.Limits.InsightTimeout),
		insight.WithRateLimit(cfg.Limits.RateLimit.RequestsPerMinute, cfg.Limits.RateLimit.BurstSize),
		insight.WithCache(insight.NewResponseCache(store, cfg.Limits.CacheTTL)),
		insight.WithLogger(logger),
	)

	data, err := client.Fetch(ctx, technology)
	if err != nil {
		logger.Warn("insight fetch failed, continuing with static knowledge", "error", err)
		return nil
	}
	return data
}

func readCode(args []string, maxSize int) (string, error) {
	var raw []byte
	var err error
	if len(args) > 0 {
		raw, err = os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", args[0], err)
		}
	} else {
		raw, err = io.ReadAll(io.LimitReader(os.Stdin, int64(maxSize)+1))
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
	}
	if len(raw) > maxSize {
		return "", fmt.Errorf("code exceeds the %d byte limit", maxSize)
	}
	return string(raw), nil
}

func printReport(category string, result any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report{
		ID:        uuid.New().String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Category:  category,
		Result:    result,
	})
}

func pick(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
