package app

import (
	"context"

	"github.com/doeshing/springprobe/internal/application/check"
	"github.com/doeshing/springprobe/internal/domain"
	"github.com/doeshing/springprobe/internal/infrastructure/config"
	"github.com/doeshing/springprobe/internal/infrastructure/history"
	"github.com/doeshing/springprobe/internal/infrastructure/httpprobe"
	"github.com/doeshing/springprobe/internal/pkg/logger"
	"github.com/doeshing/springprobe/internal/ports"
	"github.com/doeshing/springprobe/internal/version"
)

// Container wires up application services with infrastructure adapters.
type Container struct {
	CheckService   *check.Service
	ConfigProvider ports.ConfigProvider
	ConfigLoader   *config.FileLoader
	HistoryStore   ports.HistoryRepository
	Logger         *logger.ZapLogger
	Config         domain.Config
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.New(cfg.Logging, verbose)

	var historyStore ports.HistoryRepository
	if cfg.History.Enabled {
		historyStore = history.NewSQLiteStore(cfg.History.Path)
	}

	checkService := &check.Service{
		Prober:  httpprobe.New(log, version.UserAgent()),
		Logger:  log,
		History: historyStore,
	}

	return &Container{
		CheckService:   checkService,
		ConfigProvider: cfgLoader,
		ConfigLoader:   cfgLoader,
		HistoryStore:   historyStore,
		Logger:         log,
		Config:         cfg,
	}, nil
}
