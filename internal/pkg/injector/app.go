package injector

import (
	"github.com/torp-app/devis-ingest/internal/conf"
	"github.com/torp-app/devis-ingest/internal/pkg/logger"
	"github.com/torp-app/devis-ingest/internal/server"
)

// App encapsulates all application dependencies
type App struct {
	Config     *conf.Config
	Logger     *logger.Logger
	HTTPServer *server.HTTPServer
}
