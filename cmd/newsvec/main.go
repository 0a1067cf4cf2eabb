// Copyright 2026 Coriolis Data
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

	"github.com/urfave/cli/v2"

	"github.com/coriolis-data/newsvec"
	"github.com/coriolis-data/newsvec/ai"
	"github.com/coriolis-data/newsvec/chunk"
	"github.com/coriolis-data/newsvec/feed"
	"github.com/coriolis-data/newsvec/index/qdrant"
	"github.com/coriolis-data/newsvec/ingestion"
	"github.com/coriolis-data/newsvec/normalize"
	"github.com/coriolis-data/newsvec/search"
	"github.com/coriolis-data/newsvec/server"
)

func indexFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "qdrant-url",
			Usage:   "Qdrant service base URL",
			Value:   "http://localhost:6333",
			EnvVars: []string{"QDRANT_URL"},
		},
		&cli.StringFlag{
			Name:    "qdrant-api-key",
			Usage:   "Qdrant API key (empty for unauthenticated)",
			EnvVars: []string{"QDRANT_API_KEY"},
		},
		&cli.StringFlag{
			Name:    "collection",
			Usage:   "Vector collection name",
			Value:   "articles",
			EnvVars: []string{"NEWSVEC_COLLECTION"},
		},
		&cli.IntFlag{
			Name:    "dimension",
			Usage:   "Embedding vector dimensionality",
			Value:   1024,
			EnvVars: []string{"NEWSVEC_VECTOR_DIM"},
		},
	}
}

func pipelineFlags() []cli.Flag {
	return append(indexFlags(),
		&cli.StringFlag{
			Name:    "embedding-host",
			Usage:   "Embedding service host URL",
			Value:   "http://localhost:11434/v1",
			EnvVars: []string{"EMBEDDING_HOST"},
		},
		&cli.StringFlag{
			Name:     "embedding-model",
			Usage:    "Embedding model name",
			Required: true,
			EnvVars:  []string{"EMBEDDING_MODEL"},
		},
		&cli.StringFlag{
			Name:    "timestamp-unit",
			Usage:   "Epoch unit of feed timestamps (s or ms)",
			Value:   "s",
			EnvVars: []string{"NEWSVEC_TIMESTAMP_UNIT"},
		},
		&cli.IntFlag{
			Name:    "chunk-words",
			Usage:   "Maximum words per chunk",
			Value:   chunk.DefaultMaxWords,
			EnvVars: []string{"NEWSVEC_CHUNK_WORDS"},
		},
		&cli.IntFlag{
			Name:    "batch-size",
			Usage:   "Chunks embedded and upserted per batch",
			Value:   ingestion.DefaultBatchSize,
			EnvVars: []string{"NEWSVEC_BATCH_SIZE"},
		},
		&cli.IntFlag{
			Name:  "max-retries",
			Usage: "Maximum retry attempts for failed operations",
			Value: ingestion.DefaultMaxAttempts,
		},
		&cli.DurationFlag{
			Name:  "retry-delay",
			Usage: "Base delay for exponential backoff",
			Value: ingestion.DefaultRetryDelay,
		},
	)
}

func main() {
	app := &cli.App{
		Name:  "newsvec",
		Usage: "Semantic search pipeline for news articles",
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
				Name:   "init-collection",
				Usage:  "Create or verify the vector collection schema",
				Action: initCollectionCommand,
				Flags:  indexFlags(),
			},
			{
				Name:      "ingest",
				Usage:     "Ingest one Avro batch file and print the report",
				ArgsUsage: "<file.avro>",
				Action:    ingestCommand,
				Flags:     pipelineFlags(),
			},
			{
				Name:   "watch",
				Usage:  "Watch a drop directory and ingest batch files as they appear",
				Action: watchCommand,
				Flags: append(pipelineFlags(),
					&cli.StringFlag{
						Name:     "feed-dir",
						Usage:    "Drop directory to watch for Avro batch files",
						Required: true,
						EnvVars:  []string{"NEWSVEC_FEED_DIR"},
					},
					&cli.StringFlag{
						Name:     "data-dir",
						Usage:    "Directory for the processed-feed ledger",
						Required: true,
						EnvVars:  []string{"NEWSVEC_DATA_DIR"},
					},
					&cli.DurationFlag{
						Name:  "settle-delay",
						Usage: "Wait after a file event before reading the file",
						Value: feed.DefaultSettleDelay,
					},
				),
			},
			{
				Name:   "serve",
				Usage:  "Serve the search and ingestion HTTP API",
				Action: serveCommand,
				Flags: append(pipelineFlags(),
					&cli.StringFlag{
						Name:    "addr",
						Usage:   "Listen address",
						Value:   ":8080",
						EnvVars: []string{"NEWSVEC_ADDR"},
					},
					&cli.IntFlag{
						Name:    "top-k",
						Usage:   "Passage hits retrieved per query",
						Value:   search.DefaultTopK,
						EnvVars: []string{"NEWSVEC_TOP_K"},
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// indexConfig builds the Qdrant config from shared index flags.
func indexConfig(c *cli.Context) qdrant.Config {
	return qdrant.Config{
		URL:        c.String("qdrant-url"),
		APIKey:     c.String("qdrant-api-key"),
		Collection: c.String("collection"),
		Dimension:  c.Int("dimension"),
	}
}

// newSystem wires the store and embedding provider from shared flags.
func newSystem(c *cli.Context, opts ...newsvec.SystemOption) (*newsvec.System, error) {
	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithDimension(c.Int("dimension")),
		ai.WithBatchSize(c.Int("batch-size")),
	)
	return newsvec.NewSystem(indexConfig(c), aiConfig, opts...)
}

// newPipeline assembles normalizer, chunker, and the system's pipeline.
func newPipeline(c *cli.Context, system *newsvec.System) (*ingestion.Pipeline, error) {
	unit, err := normalize.ParseTimestampUnit(c.String("timestamp-unit"))
	if err != nil {
		return nil, err
	}
	normalizer, err := normalize.New(unit)
	if err != nil {
		return nil, err
	}

	chunker := chunk.New(chunk.WithMaxWords(c.Int("chunk-words")))

	return system.NewIngestionPipeline(normalizer, chunker,
		ingestion.WithBatchSize(c.Int("batch-size")),
		ingestion.WithRetry(c.Int("max-retries"), c.Duration("retry-delay")))
}

func initCollectionCommand(c *cli.Context) error {
	store, err := qdrant.NewStore(indexConfig(c))
	if err != nil {
		return err
	}

	ctx := context.Background()
	if err := store.EnsureCollection(ctx); err != nil {
		return fmt.Errorf("initializing collection: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Collection %s ready (dimension %d)\n",
		c.String("collection"), c.Int("dimension"))
	return nil
}

func ingestCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one batch file, got %d", c.NArg())
	}
	path := c.Args().First()

	system, err := newSystem(c)
	if err != nil {
		return err
	}
	defer system.Close()

	pipeline, err := newPipeline(c, system)
	if err != nil {
		return err
	}
	defer pipeline.Release()

	ctx := context.Background()
	if err := system.Store().EnsureCollection(ctx); err != nil {
		return fmt.Errorf("verifying collection: %w", err)
	}

	records, err := feed.ReadRecords(path)
	if err != nil {
		return err
	}

	report, runErr := pipeline.IngestRecords(ctx, records)

	fmt.Fprintf(os.Stderr, "File: %s\n", path)
	fmt.Fprintf(os.Stderr, "Records accepted: %d\n", report.RecordsAccepted)
	fmt.Fprintf(os.Stderr, "Records skipped:  %d\n", report.RecordsSkipped)
	fmt.Fprintf(os.Stderr, "Chunks indexed:   %d\n", report.ChunksIndexed)
	fmt.Fprintf(os.Stderr, "Chunks skipped:   %d\n", report.ChunksSkipped)

	if runErr != nil {
		return fmt.Errorf("ingestion finished with failures: %w", runErr)
	}
	return nil
}

func watchCommand(c *cli.Context) error {
	system, err := newSystem(c, newsvec.WithDataDir(c.String("data-dir")))
	if err != nil {
		return err
	}
	defer system.Close()

	pipeline, err := newPipeline(c, system)
	if err != nil {
		return err
	}
	defer pipeline.Release()

	watcher, err := feed.NewWatcher(c.String("feed-dir"), pipeline, system.FeedRepository(),
		feed.WithCheckpoints(system.CheckpointRepository()),
		feed.WithSettleDelay(c.Duration("settle-delay")))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := system.Store().EnsureCollection(ctx); err != nil {
		return fmt.Errorf("verifying collection: %w", err)
	}

	if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func serveCommand(c *cli.Context) error {
	system, err := newSystem(c)
	if err != nil {
		return err
	}
	defer system.Close()

	pipeline, err := newPipeline(c, system)
	if err != nil {
		return err
	}
	defer pipeline.Release()

	searcher, err := system.NewSearcher(search.WithTopK(c.Int("top-k")))
	if err != nil {
		return err
	}

	srv, err := server.NewServer(searcher, pipeline, system.Store())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A schema mismatch here is fatal; it would silently corrupt every
	// vector written after it.
	if err := system.Store().EnsureCollection(ctx); err != nil {
		return fmt.Errorf("verifying collection: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(c.String("addr"))
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
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
