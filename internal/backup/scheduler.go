package backup

import (
	"cerebro/internal/backup/interfaces"
	"cerebro/internal/providers"
	"cerebro/internal/services"
	"cerebro/internal/structures"
	"context"
	"sync"
	"time"

	"github.com/roylee0704/gron"
)

type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	service     services.JournalServiceInterface
	fileManager *FileManager
	metrics     providers.MetricsProviderInterface
	cron        *gron.Cron
	opsMu       sync.Mutex
	lastSaved   uint64
	saved       bool
}

// Init starts periodic backups. Snapshots are skipped while the journal
// revision is unchanged since the last successful one.
func (s *Scheduler) Init() {
	if !s.config.Backup.Enabled {
		s.logger.Infof(providers.TypeApp, "Backups disabled")
		return
	}

	s.cron = gron.New()
	s.cron.AddFunc(gron.Every(s.config.Backup.Interval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		if s.saved && s.service.Revision() == s.lastSaved {
			return
		}
		if err := s.persistLocked(); err != nil {
			s.logger.Errorf(providers.TypeApp, "Error while writing backup: %s", err)
		}
	})
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Restore loads the backup file into an empty store when restoreOnEmpty is
// set. A populated store is never overwritten.
func (s *Scheduler) Restore() error {
	if !s.config.Backup.Enabled || !s.config.Backup.RestoreOnEmpty {
		return nil
	}

	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	ctx := context.Background()
	n, err := s.service.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	restored, err := s.fileManager.LoadFromFile(ctx, s.config.Backup.FilePath)
	if err != nil {
		return err
	}
	if restored > 0 {
		s.logger.Infof(providers.TypeApp, "Restored %d events from %s", restored, s.config.Backup.FilePath)
	}
	return nil
}

func (s *Scheduler) Persist() error {
	if !s.config.Backup.Enabled {
		return nil
	}

	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeApp, "Writing journal backup...")
	err := s.persistLocked()
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while writing backup: %s", err)
		return err
	}
	return nil
}

func (s *Scheduler) persistLocked() error {
	start := time.Now()
	revision := s.service.Revision()

	n, err := s.fileManager.SaveToFile(context.Background(), s.config.Backup.FilePath)
	if err != nil {
		return err
	}
	s.metrics.ObserveBackupDuration(time.Since(start))
	s.lastSaved = revision
	s.saved = true
	s.logger.Infof(providers.TypeApp, "Backed up %d events to %s", n, s.config.Backup.FilePath)
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, service services.JournalServiceInterface, fileManager *FileManager, metrics providers.MetricsProviderInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:      config,
		logger:      logger,
		service:     service,
		fileManager: fileManager,
		metrics:     metrics,
	}
}
