package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/claimlens/estimate-ledger/constants"
	"github.com/claimlens/estimate-ledger/internal/bucketing"
	"github.com/claimlens/estimate-ledger/internal/common"
	"github.com/claimlens/estimate-ledger/internal/estdoc"
	"github.com/claimlens/estimate-ledger/internal/export"
	"github.com/claimlens/estimate-ledger/internal/llm/openai"
	"github.com/claimlens/estimate-ledger/internal/pipeline"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	roleArg := flag.String("role", "insurance", "document role: insurance or contractor")
	runEstdoc := flag.Bool("estdoc", false, "also run the structured document parser and print JSON")
	xlsxOut := flag.String("xlsx", "", "write the ledger workbook to this path")
	flag.Parse()

	if flag.NArg() < 1 {
		logger.Error("usage: estledger [-role insurance|contractor] [-estdoc] [-xlsx out.xlsx] <textfile>...")
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

	inputs := make([]pipeline.DocumentInput, 0, flag.NArg())
	for _, path := range flag.Args() {
		text, err := os.ReadFile(path)
		if err != nil {
			logger.Error("read input", "path", path, "error", err)
			os.Exit(1)
		}
		inputs = append(inputs, pipeline.DocumentInput{
			Role:     role,
			Filename: filepath.Base(path),
			Text:     string(text),
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	results, err := processor.ProcessBatch(ctx, inputs)
	if err != nil {
		logger.Error("pipeline", "error", err)
		os.Exit(1)
	}

	for _, res := range results {
		fmt.Println(res.GroundTruthBlock)
		fmt.Println()
		fmt.Println(res.SampleBlock)
		fmt.Println()
		fmt.Println(res.RoomTotalsBlock)
		fmt.Println()
		fmt.Println(res.KeyNumbersBlock)
		fmt.Println()
	}

	if *runEstdoc {
		parser := estdoc.NewParser(client, estdoc.Config{
			Model:       cfg.LLM.Model,
			RepairModel: cfg.LLM.RepairModel,
			LineItemCap: cfg.Extract.LineItemCap,
		}, logger)
		for _, res := range results {
			doc, err := parser.Parse(ctx, res.Role, res.Filename, res.RedactedText)
			if err != nil {
				logger.Error("estdoc", "file_name", res.Filename, "error", err)
				os.Exit(1)
			}
			out, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				logger.Error("estdoc marshal", "file_name", res.Filename, "error", err)
				os.Exit(1)
			}
			fmt.Println(string(out))
		}
	}

	if *xlsxOut != "" {
		data, err := export.NewService(logger).ExportLedgerXLSX(results)
		if err != nil {
			logger.Error("export", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*xlsxOut, data, 0o644); err != nil {
			logger.Error("write xlsx", "path", *xlsxOut, "error", err)
			os.Exit(1)
		}
		logger.Info("xlsx written", "path", *xlsxOut, "bytes", len(data))
	}
}
