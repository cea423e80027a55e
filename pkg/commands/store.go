package commands

import (
	"errors"

	"github.com/gntech/signage/pkg/commands/options"
	"github.com/gntech/signage/pkg/content"
	"github.com/gntech/signage/pkg/store"
)

func loadStore(o *options.StoreOptions) (store.Persistence, error) {
	if o.Path != "" {
		return store.Load(store.PathConfig(o.Path))
	}
	return store.Load(nil)
}

// loadSettingsOrEmpty reads the settings document, treating absence as an
// empty document so editors can start from scratch.
func loadSettingsOrEmpty(p store.Persistence) (*content.Settings, error) {
	s, err := p.Settings()
	if errors.Is(err, store.ErrNotFound) {
		return &content.Settings{}, nil
	}
	return s, err
}

func loadDailyOrEmpty(p store.Persistence, date string) (*content.DailyDoc, error) {
	d, err := p.Daily(date)
	if errors.Is(err, store.ErrNotFound) {
		return &content.DailyDoc{Date: date}, nil
	}
	return d, err
}
