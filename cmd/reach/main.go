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
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/poiesic/reach"
	"github.com/poiesic/reach/ai"
	"github.com/poiesic/reach/ai/openai"
	"github.com/poiesic/reach/httpapi"
	"github.com/poiesic/reach/ingestion"
	"github.com/poiesic/reach/retag"
	"github.com/poiesic/reach/storage/badger"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "reach",
		Usage: "Contact capture and search for people you meet",
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
				Name:   "serve",
				Usage:  "Run the HTTP API server (configured via REACH_ environment variables)",
				Action: serveCommand,
			},
			{
				Name:      "search",
				Usage:     "Search contacts from the command line",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "agent",
						Usage: "Use the LLM intent parser instead of plain field matching",
					},
					&cli.StringFlag{
						Name:  "ai-host",
						Usage: "Chat service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "ai-model",
						Usage: "Chat model name",
						Value: "qwen2.5:3b",
					},
					&cli.StringFlag{
						Name:  "ai-token",
						Usage: "Chat service API token",
					},
				},
			},
			{
				Name:   "add",
				Usage:  "Capture a new contact",
				Action: addCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Contact name",
						Required: true,
					},
					&cli.StringFlag{Name: "email", Usage: "Email address"},
					&cli.StringFlag{Name: "company", Usage: "Company name"},
					&cli.StringFlag{Name: "role", Usage: "Job title"},
					&cli.StringFlag{Name: "location", Usage: "Where the contact is based"},
					&cli.StringFlag{Name: "industry", Usage: "Industry"},
					&cli.StringFlag{Name: "met-at", Usage: "Where you met"},
					&cli.StringFlag{Name: "event", Usage: "Event type (conference, meetup, ...)"},
					&cli.StringSliceFlag{Name: "tag", Usage: "Tag (repeatable)"},
					&cli.StringFlag{Name: "notes", Usage: "Free-text notes about the meeting"},
					&cli.IntFlag{Name: "priority", Usage: "Priority 0-100", Value: 50},
					&cli.StringFlag{
						Name:  "ai-host",
						Usage: "Chat service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "ai-model",
						Usage: "Chat model name",
						Value: "qwen2.5:3b",
					},
					&cli.StringFlag{
						Name:  "ai-token",
						Usage: "Chat service API token",
					},
				},
			},
			{
				Name:   "retag",
				Usage:  "Regenerate tags for all contacts from their notes",
				Action: retagCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "ai-host",
						Usage: "Chat service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:     "ai-model",
						Usage:    "Chat model name",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "ai-token",
						Usage: "Chat service API token",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of contacts to process in each batch",
						Value: 50,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N contacts",
						Value: 50,
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
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serveCommand(c *cli.Context) error {
	cfg, err := httpapi.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbOpts := []reach.DatabaseOption{
		reach.WithAIConfig(ai.NewConfig(
			ai.WithHost(cfg.AIHost),
			ai.WithModel(cfg.AIModel),
			ai.WithToken(cfg.AIToken),
		)),
	}
	if cfg.EnrichAPIKey != "" {
		dbOpts = append(dbOpts, reach.WithEnrichAPIKey(cfg.EnrichAPIKey))
	}

	db, err := reach.NewDatabase(cfg.DataDir, dbOpts...)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	searchPipeline, err := db.NewSearchPipeline()
	if err != nil {
		return fmt.Errorf("failed to create search pipeline: %w", err)
	}

	capture, err := db.NewIngestionPipeline()
	if err != nil {
		return fmt.Errorf("failed to create ingestion pipeline: %w", err)
	}
	defer capture.Release()

	srv := httpapi.NewServer(cfg, db.ContactRepository(), searchPipeline, capture)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-stop:
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("query is required")
	}

	db, err := reach.NewDatabase(c.String("db"), reach.WithAIConfig(ai.NewConfig(
		ai.WithHost(c.String("ai-host")),
		ai.WithModel(c.String("ai-model")),
		ai.WithToken(c.String("ai-token")),
	)))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	pipeline, err := db.NewSearchPipeline()
	if err != nil {
		return fmt.Errorf("failed to create search pipeline: %w", err)
	}

	if c.Bool("agent") {
		response, err := pipeline.VoiceSearch(ctx, query)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		fmt.Println(response.Explanation)
		for _, scored := range response.Results {
			fmt.Printf("  %-24s %-24s %5.1f  %s\n",
				scored.Contact.Name, scored.Contact.Company, scored.Score, scored.MatchReason())
		}
		if response.SuggestedFollowUp != "" {
			fmt.Println(response.SuggestedFollowUp)
		}
		return nil
	}

	matches, err := pipeline.Search(ctx, query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(matches) == 0 {
		fmt.Println("No contacts found.")
		return nil
	}
	for _, match := range matches {
		fmt.Printf("  %-24s %-24s %5.1f  %s\n",
			match.Contact.Name, match.Contact.Company, match.Score, match.MatchReason)
	}
	return nil
}

func addCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := reach.NewDatabase(c.String("db"), reach.WithAIConfig(ai.NewConfig(
		ai.WithHost(c.String("ai-host")),
		ai.WithModel(c.String("ai-model")),
		ai.WithToken(c.String("ai-token")),
	)))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	capture, err := db.NewIngestionPipeline()
	if err != nil {
		return fmt.Errorf("failed to create ingestion pipeline: %w", err)
	}
	defer capture.Release()

	contact, err := capture.Capture(ctx, &ingestion.CaptureRequest{
		Name:            c.String("name"),
		Email:           c.String("email"),
		Company:         c.String("company"),
		Role:            c.String("role"),
		Location:        c.String("location"),
		Industry:        c.String("industry"),
		MeetingLocation: c.String("met-at"),
		EventType:       c.String("event"),
		Tags:            c.StringSlice("tag"),
		RawContext:      c.String("notes"),
		Priority:        c.Int("priority"),
	})
	if err != nil {
		return fmt.Errorf("failed to capture contact: %w", err)
	}

	fmt.Printf("Added %s (%s)\n", contact.Name, contact.Id)
	return nil
}

func retagCommand(c *cli.Context) error {
	ctx := context.Background()

	// Open database
	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewContactRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}

	// Create AI config
	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("ai-host")),
		ai.WithModel(c.String("ai-model")),
		ai.WithToken(c.String("ai-token")),
	)

	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	// Create extractor
	provider, err := openai.NewProvider(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create AI provider: %w", err)
	}
	defer provider.Close()

	// Create retagging config
	retagConfig := &retag.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}

	// Validate config
	if retagConfig.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if retagConfig.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if retagConfig.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	// Create retagger
	retagger := retag.NewRetagger(repo, provider.ProfileExtractor(), retagConfig, os.Stderr)

	// Run retagging
	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Chat host: %s\n", c.String("ai-host"))
	fmt.Fprintf(os.Stderr, "Chat model: %s\n", c.String("ai-model"))
	fmt.Fprintln(os.Stderr)

	if err := retagger.Run(ctx); err != nil {
		return fmt.Errorf("retagging failed: %w", err)
	}

	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
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

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
