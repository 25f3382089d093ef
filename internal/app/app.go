package app

import (
	"github.com/crackwatch/monitor-service/internal/config"
	"github.com/crackwatch/monitor-service/internal/repositories"
	"github.com/crackwatch/monitor-service/internal/utils"
)

// App holds the config and the flat-file store shared by the
// controllers and scheduled jobs.
type App struct {
	Config       *config.Config
	BuildingRepo repositories.BuildingRepository
}

func NewApp(cfg *config.Config) *App {
	utils.Logger.Info("Initializing crackwatch-monitor App")

	return &App{
		Config:       cfg,
		BuildingRepo: repositories.NewBuildingFileRepository(cfg.DataFilePath),
	}
}

func (a *App) Close() {
	utils.Logger.Info("crackwatch-monitor app shutting down.")
}
