package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/torp-app/devis-ingest/internal/conf"
	"github.com/torp-app/devis-ingest/internal/knowledge/chunker"
	"github.com/torp-app/devis-ingest/internal/knowledge/loader"
	"github.com/torp-app/devis-ingest/internal/knowledge/processor"
	"github.com/torp-app/devis-ingest/internal/knowledge/sanitizer"
	"github.com/torp-app/devis-ingest/internal/knowledge/types"
	"github.com/torp-app/devis-ingest/internal/pkg/logger"
	"github.com/torp-app/devis-ingest/internal/pkg/workerpool"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configFile = flag.String("config", "", "config file path, defaults and DEVIS_* env when empty")
	maxTokens  = flag.Int("max-tokens", 0, "token budget per chunk, overrides ingest.max_tokens")
	strategy   = flag.String("strategy", "", "paragraph, recursive or token, overrides ingest.strategy")
	fileType   = flag.String("type", "", "file type for every input, inferred from the extension when empty")
	statsOnly  = flag.Bool("stats", false, "print statistics without chunk contents")
	verbose    = flag.Bool("v", false, "debug logging on stderr")
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [flags] file...\n\nReads '-' as plain text from stdin.\n\n", filepath.Base(os.Args[0]))
	flag.PrintDefaults()
}

// initZapLogger logs to stderr so stdout stays valid JSON.
func initZapLogger(debug bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if debug {
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	config.OutputPaths = []string{"stderr"}
	return config.Build()
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	cfg, err := conf.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *maxTokens > 0 {
		cfg.Ingest.MaxTokens = *maxTokens
	}
	if *strategy != "" {
		cfg.Ingest.Strategy = types.ChunkStrategy(*strategy)
	}

	zapLogger, err := initZapLogger(*verbose)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()
	appLogger := logger.NewFromZap(zapLogger)

	ch, err := chunker.NewFactory().CreateChunker(&chunker.CreateChunkerConfig{
		Strategy: cfg.Ingest.Strategy,
		Size:     cfg.Ingest.MaxTokens,
		Overlap:  cfg.Ingest.Overlap,
		Encoding: cfg.Ingest.Encoding,
	})
	if err != nil {
		log.Fatalf("invalid chunker settings: %v", err)
	}

	loaders, err := loader.NewFactory(&loader.Config{DocxLicenseKey: cfg.Docx.LicenseKey})
	if err != nil {
		log.Fatalf("failed to initialize loaders: %v", err)
	}

	pool, err := workerpool.New(&workerpool.Config{
		Workers:   cfg.Worker.Workers,
		QueueSize: cfg.Worker.QueueSize,
	}, zapLogger)
	if err != nil {
		log.Fatalf("failed to create worker pool: %v", err)
	}
	defer pool.Shutdown()

	san := sanitizer.New(&sanitizer.Config{MaxBytes: cfg.Ingest.MaxBytes}, zapLogger)
	pipeline := processor.NewPipeline(san, ch, loaders, pool, appLogger, &processor.Config{
		MaxFileSize: cfg.Ingest.MaxFileSize,
	})

	docs, err := readInputs(flag.Args(), types.FileType(*fileType))
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := pipeline.ProcessBatch(ctx, docs)
	if err != nil {
		log.Fatalf("processing interrupted: %v", err)
	}

	if *statsOnly {
		for _, r := range results {
			r.Chunks = nil
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		log.Fatalf("failed to write output: %v", err)
	}

	for _, r := range results {
		if r.Status != types.DocumentStatusCompleted {
			pool.Shutdown()
			zapLogger.Sync()
			os.Exit(1)
		}
	}
}

func readInputs(paths []string, fileType types.FileType) ([]*types.Document, error) {
	docs := make([]*types.Document, 0, len(paths))
	for _, path := range paths {
		var (
			content []byte
			err     error
			ft      = fileType
		)
		if path == "-" {
			content, err = io.ReadAll(os.Stdin)
			if ft == "" {
				ft = types.FileTypeTxt
			}
		} else {
			content, err = os.ReadFile(path)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		docs = append(docs, &types.Document{
			Name:     path,
			FileType: ft,
			Content:  content,
		})
	}
	return docs, nil
}
