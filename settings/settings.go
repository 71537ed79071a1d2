// Package settings holds the singleton site-wide configuration record.
package settings

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/sufra-dev/sufra/models"
	"github.com/sufra-dev/sufra/storage"
)

const settingsKey = "siteSettings"

type Store struct {
	store storage.Store
	log   *logrus.Entry
}

func NewStore(store storage.Store) *Store {
	return &Store{
		store: store,
		log:   logrus.WithField("component", "settings"),
	}
}

// Get returns the persisted settings. When none exist, or the stored value is
// malformed, the hard-coded default is persisted and returned so subsequent
// reads are stable.
func (s *Store) Get() (models.SiteSettings, error) {
	var cfg models.SiteSettings
	err := s.store.Get(settingsKey, &cfg)
	switch {
	case err == nil:
		return cfg, nil
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, storage.ErrMalformed):
		if errors.Is(err, storage.ErrMalformed) {
			s.log.Warn("malformed site settings, restoring defaults")
		}
		def := models.DefaultSettings()
		if putErr := s.store.Put(settingsKey, def); putErr != nil {
			return models.SiteSettings{}, fmt.Errorf("persist default settings: %w", putErr)
		}
		return def, nil
	default:
		return models.SiteSettings{}, err
	}
}

// Set overwrites the settings wholesale. There is no partial merge.
func (s *Store) Set(cfg models.SiteSettings) error {
	if err := s.store.Put(settingsKey, cfg); err != nil {
		return fmt.Errorf("persist settings: %w", err)
	}
	return nil
}
