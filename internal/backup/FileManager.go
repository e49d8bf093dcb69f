package backup

import (
	"bytes"
	"cerebro/internal/backup/interfaces"
	"cerebro/internal/export"
	"cerebro/internal/models"
	"cerebro/internal/providers"
	"cerebro/internal/services"
	"context"
	"os"

	json "github.com/goccy/go-json"
)

// FileManager writes the journal to a compressed snapshot file and reads it
// back. The payload is the JSON export array.
type FileManager struct {
	service    services.JournalServiceInterface
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileManager(compressor interfaces.CompressorInterface, service services.JournalServiceInterface, logger providers.Logger) *FileManager {
	return &FileManager{
		compressor: compressor,
		service:    service,
		logger:     logger,
	}
}

// SaveToFile replaces fileName atomically through a temporary file.
func (f *FileManager) SaveToFile(ctx context.Context, fileName string) (int, error) {
	events, err := f.service.All(ctx)
	if err != nil {
		return 0, err
	}

	var buf bytes.Buffer
	if err := export.JSON(&buf, events); err != nil {
		return 0, err
	}
	data, err := f.compressor.Compress(buf.Bytes())
	if err != nil {
		return 0, err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return 0, err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return 0, err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return 0, err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return 0, err
	}

	return len(events), os.Rename(tmpFile, fileName)
}

func (f *FileManager) Close() {
	f.compressor.Close()
}

// ReadFile decodes a snapshot. A missing file yields no events and no error.
func (f *FileManager) ReadFile(fileName string) ([]models.Event, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	decompressed, err := f.compressor.Decompress(data)
	if err != nil {
		return nil, err
	}

	var events []models.Event
	if err := json.Unmarshal(decompressed, &events); err != nil {
		f.logger.Warnf(providers.TypeApp, "Backup %s is not a valid journal snapshot", fileName)
		return nil, err
	}
	return events, nil
}

// LoadFromFile imports every event in the snapshot into the store.
func (f *FileManager) LoadFromFile(ctx context.Context, fileName string) (int, error) {
	events, err := f.ReadFile(fileName)
	if err != nil {
		return 0, err
	}
	if len(events) == 0 {
		return 0, nil
	}
	return f.service.Import(ctx, events)
}
