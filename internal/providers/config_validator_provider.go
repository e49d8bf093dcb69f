package providers

import (
	"cerebro/internal/structures"
	"fmt"
	"time"

	"github.com/gookit/validate"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

// Validate checks struct tags first, then the cross-field rules tags cannot express.
func (c *CnfValidator) Validate() error {
	v := validate.Struct(c.conf)
	if !v.Validate() {
		return fmt.Errorf("invalid config: %s", v.Errors.Error())
	}

	if c.conf.Backup.Enabled {
		if c.conf.Backup.FilePath == "" {
			return fmt.Errorf("invalid config: backup.filePath is required when backup is enabled")
		}
		if c.conf.Backup.Interval < time.Second {
			return fmt.Errorf("invalid config: backup.interval must be at least 1s")
		}
	}
	if c.conf.Cache.Enabled && c.conf.Cache.TTL < time.Second {
		return fmt.Errorf("invalid config: cache.ttl must be at least 1s")
	}
	if c.conf.Location.Enabled {
		if c.conf.Location.Lat < -90 || c.conf.Location.Lat > 90 {
			return fmt.Errorf("invalid config: location.lat out of range")
		}
		if c.conf.Location.Lon < -180 || c.conf.Location.Lon > 180 {
			return fmt.Errorf("invalid config: location.lon out of range")
		}
	}
	if c.conf.Timezone != "" && c.conf.Timezone != "Local" {
		if _, err := time.LoadLocation(c.conf.Timezone); err != nil {
			return fmt.Errorf("invalid config: timezone: %w", err)
		}
	}
	return nil
}
