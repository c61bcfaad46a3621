//go:build wireinject
// +build wireinject

package injector

import (
	"github.com/google/wire"
	"github.com/torp-app/devis-ingest/internal/conf"
	"github.com/torp-app/devis-ingest/internal/knowledge/chunker"
	"github.com/torp-app/devis-ingest/internal/knowledge/service"
	"github.com/torp-app/devis-ingest/internal/pkg/logger"
	"github.com/torp-app/devis-ingest/internal/server"
)

// ProviderSet is the Wire provider set for all dependencies
var ProviderSet = wire.NewSet(
	// Ingestion core
	ingestProviderSet,

	// HTTP services
	httpServiceProviderSet,

	// Servers
	serverProviderSet,
)

var ingestProviderSet = wire.NewSet(
	provideZapLogger,
	provideSanitizer,
	chunker.NewFactory,
	provideChunker,
	provideLoaderFactory,
	provideWorkerPool,
	providePipeline,
)

var httpServiceProviderSet = wire.NewSet(
	provideServiceConfig,
	service.NewChunkingService,
)

var serverProviderSet = wire.NewSet(
	server.NewHTTPServer,
)

// InitializeApp initializes the application with Wire
func InitializeApp(config *conf.Config, log *logger.Logger) (*App, func(), error) {
	wire.Build(ProviderSet, newApp)
	return nil, nil, nil
}
