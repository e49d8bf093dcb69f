//go:build wireinject
// +build wireinject

package di

import (
	"cerebro/internal"
	"cerebro/internal/backup"
	"cerebro/internal/controllers"
	"cerebro/internal/geo"
	"cerebro/internal/providers"
	"cerebro/internal/services"
	"cerebro/internal/storage"
	"cerebro/internal/structures"

	wire "github.com/google/wire"
)

var journalSet = wire.NewSet(
	providers.NewConfigProvider,
	providers.NewLogProvider,
	providers.NewMetricsProvider,

	storage.NewSQLiteStore,
	geo.NewLocator,
	services.NewJournalService,
	backup.NewZstdCompressor,
	backup.NewFileManager,
	backup.NewScheduler,
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		journalSet,
		providers.NewInstrumentedCacheProvider,
		controllers.NewEventController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}

func InitJournal(cfg *structures.CliFlags) (*internal.Journal, error) {

	wire.Build(
		journalSet,
		internal.NewJournal,
	)

	return nil, nil
}
