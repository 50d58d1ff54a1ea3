package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/claimlens/estimate-ledger/constants"
	"github.com/claimlens/estimate-ledger/internal/bucketing"
	"github.com/claimlens/estimate-ledger/internal/common"
	"github.com/claimlens/estimate-ledger/internal/ingest"
	"github.com/claimlens/estimate-ledger/internal/llm/openai"
	"github.com/claimlens/estimate-ledger/internal/pipeline"
)

// estledgerd watches drop directories for extracted estimate text files and
// writes a <name>.ledger.txt ground-truth report next to each one.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	roleArg := flag.String("role", "insurance", "document role: insurance or contractor")
	scan := flag.Bool("scan", true, "process files already present at startup")
	flag.Parse()

	if flag.NArg() < 1 {
		logger.Error("usage: estledgerd [-role insurance|contractor] [-scan=false] <dropdir>...")
		os.Exit(2)
	}
	role, ok := constants.ParseDocRole(*roleArg)
	if !ok {
		logger.Error("invalid role", "arg", *roleArg)
		os.Exit(2)
	}

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("config", "error", err)
		os.Exit(2)
	}
	minAbs, err := decimal.NewFromString(cfg.Extract.MinAbsAmount)
	if err != nil {
		logger.Error("invalid MIN_ABS_AMOUNT", "value", cfg.Extract.MinAbsAmount, "error", err)
		os.Exit(2)
	}

	client := openai.NewClient(openai.Config{
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
		Timeout: cfg.LLM.Timeout,
	}, logger)
	classifier := bucketing.NewClassifier(client, cfg.LLM.Model, logger)
	processor := pipeline.NewProcessor(classifier, minAbs, logger)
	cache := pipeline.NewResultCache(cfg.Extract.ResultTTL)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	events, errs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
		Roots:       flag.Args(),
		InitialScan: *scan,
		Debounce:    500 * time.Millisecond,
	}, logger)
	if err != nil {
		logger.Error("watcher", "error", err)
		os.Exit(1)
	}
	logger.Info("estledgerd.watching", "roots", strings.Join(flag.Args(), ","))

	for {
		select {
		case <-ctx.Done():
			logger.Info("estledgerd.stopped")
			return
		case err, ok := <-errs:
			if ok {
				logger.Error("estledgerd.watch_error", "error", err)
			}
		case path, ok := <-events:
			if !ok {
				return
			}
			handleFile(ctx, logger, processor, cache, role, path)
		}
	}
}

func handleFile(
	ctx context.Context,
	logger *slog.Logger,
	processor *pipeline.Processor,
	cache *pipeline.ResultCache,
	role constants.DocRole,
	path string,
) {
	// skip our own output files
	if strings.HasSuffix(path, ".ledger.txt") {
		return
	}

	text, err := os.ReadFile(path)
	if err != nil {
		logger.Error("estledgerd.read_failed", "path", path, "error", err)
		return
	}

	sig := pipeline.Signature([]pipeline.FileStat{{Name: path, Size: int64(len(text))}})
	results, cached := cache.Get(sig)
	if !cached {
		runCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
		results, err = processor.ProcessBatch(runCtx, []pipeline.DocumentInput{{
			Role:     role,
			Filename: filepath.Base(path),
			Text:     string(text),
		}})
		cancel()
		if err != nil {
			logger.Error("estledgerd.process_failed", "path", path, "error", err)
			return
		}
		cache.Put(sig, results)
	}

	res := results[0]
	report := strings.Join([]string{
		res.GroundTruthBlock,
		res.SampleBlock,
		res.RoomTotalsBlock,
		res.KeyNumbersBlock,
	}, "\n\n") + "\n"

	outPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".ledger.txt"
	if err := os.WriteFile(outPath, []byte(report), 0o644); err != nil {
		logger.Error("estledgerd.write_failed", "path", outPath, "error", err)
		return
	}
	logger.Info("estledgerd.processed",
		"path", path, "out", outPath, "cached", cached,
		"money_lines", len(res.MoneyLines), "buckets", len(res.Ordered),
	)
}
