// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/poiesic/doctrina"
	"github.com/poiesic/doctrina/ai"
	"github.com/poiesic/doctrina/core"
	"github.com/poiesic/doctrina/ingestion"
	"github.com/poiesic/doctrina/reembed"
	"github.com/poiesic/doctrina/search"
	"github.com/poiesic/doctrina/segment"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "doctrina",
		Usage: "Evidence-grounded retrieval over policy documents",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Usage:  "Segment, embed, and index a directory of documents",
				Action: ingestCommand,
				Flags: append(dbFlags(),
					&cli.StringFlag{
						Name:     "corpus",
						Aliases:  []string{"c"},
						Usage:    "Directory of .txt and .md documents to index",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "chunk-size",
						Usage: "Passage window size in characters",
						Value: segment.DefaultChunkSize,
					},
					&cli.IntFlag{
						Name:  "overlap",
						Usage: "Passage window overlap in characters",
						Value: segment.DefaultOverlap,
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Embedding worker pool size (0 uses CPU count / 2)",
					},
				),
			},
			{
				Name:      "ask",
				Usage:     "Retrieve evidence for a question",
				ArgsUsage: "QUESTION",
				Action:    askCommand,
				Flags: append(dbFlags(),
					&cli.IntFlag{
						Name:    "top-k",
						Aliases: []string{"k"},
						Usage:   "Number of evidence items to return",
						Value:   search.DefaultTopK,
					},
					&cli.StringFlag{
						Name:  "rerank-mode",
						Usage: "Rerank pass: off, heuristic, or llm",
						Value: string(search.RerankHeuristic),
					},
					&cli.StringSliceFlag{
						Name:  "allow-source",
						Usage: "Restrict evidence to these source IDs (repeatable)",
					},
				),
			},
			{
				Name:   "traces",
				Usage:  "Show recent retrieval traces",
				Action: tracesCommand,
				Flags: append(dbFlags(),
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Number of traces to show",
						Value:   10,
					},
				),
			},
			{
				Name:   "reembed",
				Usage:  "Rebuild the index with fresh embeddings",
				Action: reembedCommand,
				Flags: append(dbFlags(),
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of passages to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N passages",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// dbFlags returns the flags shared by every command that opens the engine.
func dbFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "embeddinggemma",
		},
		&cli.StringFlag{
			Name:  "completion-host",
			Usage: "Completion service host URL (defaults to embedding-host)",
		},
		&cli.StringFlag{
			Name:  "completion-model",
			Usage: "Completion model name",
			Value: "qwen2.5:3b",
		},
	}
}

func openEngine(c *cli.Context) (*doctrina.Engine, error) {
	completionHost := c.String("completion-host")
	if completionHost == "" {
		completionHost = c.String("embedding-host")
	}

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithCompletionHost(completionHost),
		ai.WithCompletionModel(c.String("completion-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	return doctrina.NewEngine(c.String("db"), doctrina.WithAIConfig(aiConfig))
}

func ingestCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	sources, err := loadCorpus(c.String("corpus"))
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		return fmt.Errorf("no .txt or .md documents found in %s", c.String("corpus"))
	}

	opts := []ingestion.Option{
		ingestion.WithChunking(c.Int("chunk-size"), c.Int("overlap")),
		ingestion.WithEmbeddingModel(c.String("embedding-model")),
	}
	if c.Int("pool-size") > 0 {
		opts = append(opts, ingestion.WithPoolSize(c.Int("pool-size")))
	}

	result, err := engine.Ingest(context.Background(), sources, opts...)
	if err != nil {
		return err
	}

	fmt.Printf("Indexed %d passages from %d sources (generation %d)\n",
		result.NumPassages, result.Sources, result.Generation)
	for cause, count := range result.SkippedByCause {
		fmt.Printf("  skipped %d: %s\n", count, cause)
	}
	return nil
}

func askCommand(c *cli.Context) error {
	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("question is required")
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	opts := []search.Option{
		search.WithRerankMode(search.RerankMode(c.String("rerank-mode"))),
	}
	if allowed := c.StringSlice("allow-source"); len(allowed) > 0 {
		opts = append(opts, search.WithAllowedSources(allowed))
	}

	result, err := engine.Ask(context.Background(), question, c.Int("top-k"), opts...)
	if err != nil {
		return err
	}

	if len(result.Evidence) == 0 {
		fmt.Println(search.InsufficientEvidenceAnswer)
		return nil
	}

	fmt.Printf("Domain: %s\n", result.Trace.Domain)
	for _, ev := range result.Evidence {
		fmt.Printf("\n[%s] %s (%.3f)\n", ev.EvidID, ev.Title, ev.Score)
		if locator := formatLocator(ev); locator != "" {
			fmt.Printf("    %s\n", locator)
		}
		fmt.Printf("    %s\n", ev.Excerpt)
	}
	return nil
}

func tracesCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	traces, err := engine.RecentTraces(context.Background(), c.Int("limit"))
	if err != nil {
		return err
	}

	for _, trace := range traces {
		fmt.Printf("%s  %q  domain=%s candidates=%d rerank=%s\n",
			trace.CreatedAt.Format(time.RFC3339),
			trace.Query, trace.Domain, trace.CandidateCount, trace.RerankMode)
		for _, item := range trace.Selected {
			fmt.Printf("    %s %s vec=%.3f lex=%.3f final=%.3f\n",
				item.EvidID, item.Title, item.VectorScore, item.LexicalScore, item.Final)
		}
	}
	return nil
}

func reembedCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	config := &reembed.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
		EmbeddingModel: c.String("embedding-model"),
	}
	if config.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if config.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	return engine.Reembed(context.Background(), config, os.Stderr)
}

// loadCorpus reads every .txt and .md file under dir into a source. The
// first non-empty line of each document becomes its title.
func loadCorpus(dir string) ([]ingestion.Source, error) {
	var sources []ingestion.Source
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".txt" && ext != ".md" {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		text := string(data)

		sources = append(sources, ingestion.Source{
			ID:        d.Name(),
			Kind:      core.SourceKindFile,
			Title:     documentTitle(text, d.Name()),
			Text:      text,
			LocalPath: path,
		})
		return nil
	})
	return sources, err
}

func documentTitle(text, fallback string) string {
	for line := range strings.Lines(text) {
		trimmed := strings.TrimSpace(strings.TrimLeft(line, "# "))
		if trimmed == "" {
			continue
		}
		if len(trimmed) > 120 {
			trimmed = trimmed[:120]
		}
		return trimmed
	}
	return fallback
}

func formatLocator(ev core.Evidence) string {
	var parts []string
	if ev.Pub != "" {
		parts = append(parts, ev.Pub)
	}
	if ev.Section != "" {
		parts = append(parts, "sec "+ev.Section)
	}
	if ev.Subsection != "" {
		parts = append(parts, "subsec "+ev.Subsection)
	}
	if ev.Page > 0 {
		parts = append(parts, fmt.Sprintf("p.%d", ev.Page))
	}
	return strings.Join(parts, ", ")
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
