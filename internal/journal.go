package internal

import (
	"cerebro/internal/backup"
	"cerebro/internal/providers"
	"cerebro/internal/services"
	"cerebro/internal/storage"
	"cerebro/internal/structures"
)

// Journal is the headless runtime used by one-shot CLI commands.
type Journal struct {
	Conf        *structures.Config
	Logger      providers.Logger
	Service     services.JournalServiceInterface
	FileManager *backup.FileManager
	store       storage.EventStoreInterface
}

func NewJournal(conf *structures.Config, logger providers.Logger, service services.JournalServiceInterface, fileManager *backup.FileManager, store storage.EventStoreInterface) *Journal {
	return &Journal{
		Conf:        conf,
		Logger:      logger,
		Service:     service,
		FileManager: fileManager,
		store:       store,
	}
}

func (j *Journal) Close() error {
	j.FileManager.Close()
	err := j.store.Close()
	j.Logger.Close()
	return err
}
