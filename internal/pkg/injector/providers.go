package injector

import (
	"github.com/torp-app/devis-ingest/internal/conf"
	"github.com/torp-app/devis-ingest/internal/knowledge/chunker"
	"github.com/torp-app/devis-ingest/internal/knowledge/loader"
	"github.com/torp-app/devis-ingest/internal/knowledge/processor"
	"github.com/torp-app/devis-ingest/internal/knowledge/sanitizer"
	"github.com/torp-app/devis-ingest/internal/knowledge/service"
	"github.com/torp-app/devis-ingest/internal/pkg/logger"
	"github.com/torp-app/devis-ingest/internal/pkg/workerpool"
	"github.com/torp-app/devis-ingest/internal/server"
	"go.uber.org/zap"
)

func provideZapLogger(log *logger.Logger) *zap.Logger {
	return log.Logger
}

func provideSanitizer(config *conf.Config, log *zap.Logger) *sanitizer.Sanitizer {
	return sanitizer.New(&sanitizer.Config{MaxBytes: config.Ingest.MaxBytes}, log)
}

func provideChunker(config *conf.Config, factory *chunker.Factory) (chunker.Chunker, error) {
	return factory.CreateChunker(&chunker.CreateChunkerConfig{
		Strategy: config.Ingest.Strategy,
		Size:     config.Ingest.MaxTokens,
		Overlap:  config.Ingest.Overlap,
		Encoding: config.Ingest.Encoding,
	})
}

func provideLoaderFactory(config *conf.Config) (loader.LoaderFactory, error) {
	return loader.NewFactory(&loader.Config{DocxLicenseKey: config.Docx.LicenseKey})
}

func provideWorkerPool(config *conf.Config, log *zap.Logger) (*workerpool.Pool, func(), error) {
	pool, err := workerpool.New(&workerpool.Config{
		Workers:   config.Worker.Workers,
		QueueSize: config.Worker.QueueSize,
	}, log)
	if err != nil {
		return nil, nil, err
	}
	return pool, pool.Shutdown, nil
}

func providePipeline(
	san *sanitizer.Sanitizer,
	ch chunker.Chunker,
	loaders loader.LoaderFactory,
	pool *workerpool.Pool,
	log *logger.Logger,
	config *conf.Config,
) *processor.Pipeline {
	return processor.NewPipeline(san, ch, loaders, pool, log, &processor.Config{
		MaxFileSize: config.Ingest.MaxFileSize,
	})
}

func provideServiceConfig(config *conf.Config) *service.Config {
	return &service.Config{
		Strategy:    config.Ingest.Strategy,
		Encoding:    config.Ingest.Encoding,
		MaxFileSize: config.Ingest.MaxFileSize,
	}
}

func newApp(config *conf.Config, log *logger.Logger, httpServer *server.HTTPServer) *App {
	return &App{
		Config:     config,
		Logger:     log,
		HTTPServer: httpServer,
	}
}
