package providers

import (
	"cerebro/internal/structures"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.SetDefault("timezone", "Local")
	v.SetDefault("webServer.host", "127.0.0.1")
	v.SetDefault("webServer.port", 8090)
	v.SetDefault("storage.busyTimeout", 5*time.Second)
	v.SetDefault("backup.interval", time.Hour)
	v.SetDefault("cache.ttl", 30*time.Second)
	v.SetDefault("location.timeout", 4*time.Second)

	v.BindEnv("logger.level", "CEREBRO_LOG_LEVEL")
	v.BindEnv("storage.path", "CEREBRO_DB_PATH")
	v.BindEnv("backup.enabled", "CEREBRO_BACKUP_ENABLED")
	v.BindEnv("backup.filePath", "CEREBRO_BACKUP_PATH")
	v.BindEnv("cache.enabled", "CEREBRO_CACHE_ENABLED")
	v.BindEnv("cache.size", "CEREBRO_CACHE_SIZE")
	v.BindEnv("timezone", "CEREBRO_TZ")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "CerebroJournal"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
