// Package store persists the display documents on disk and notifies watchers
// when they change. The layout mirrors the remote document store the kiosk
// syncs from: a single settings document plus one daily document per date.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"github.com/gntech/signage/pkg/content"
)

const (
	settingsKey = "settings"
	dailyPrefix = "daily-"
)

// ErrNotFound is returned when a requested document does not exist. Feed
// consumers treat it as an explicit "absent" delivery, not a failure.
var ErrNotFound = errors.New("store: document not found")

// Persistence is the persistence contract for display documents.
type Persistence interface {
	Settings() (*content.Settings, error)
	SaveSettings(s *content.Settings) error
	Daily(date string) (*content.DailyDoc, error)
	SaveDaily(d *content.DailyDoc) error
	DeleteDaily(date string) error
	// DailyRange returns daily documents with date >= from, ordered by date
	// ascending, at most limit documents (0 means no limit).
	DailyRange(ctx context.Context, from string, limit int) ([]content.DailyDoc, error)
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) Settings() (*content.Settings, error) {
	if !p.d.Has(settingsKey) {
		return nil, ErrNotFound
	}
	val, err := p.d.Read(settingsKey)
	if err != nil {
		return nil, fmt.Errorf("store: read settings: %w", err)
	}
	s := &content.Settings{}
	if err := json.Unmarshal(val, s); err != nil {
		return nil, fmt.Errorf("store: decode settings: %w", err)
	}
	return s, nil
}

func (p *persistence) SaveSettings(s *content.Settings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("store: encode settings: %w", err)
	}
	if err := p.d.Write(settingsKey, data); err != nil {
		return fmt.Errorf("store: write settings: %w", err)
	}
	return nil
}

func (p *persistence) Daily(date string) (*content.DailyDoc, error) {
	key := dailyPrefix + date
	if !p.d.Has(key) {
		return nil, ErrNotFound
	}
	return p.readDaily(key)
}

func (p *persistence) readDaily(key string) (*content.DailyDoc, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", key, err)
	}
	doc := &content.DailyDoc{}
	if err := json.Unmarshal(val, doc); err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", key, err)
	}
	if doc.Date == "" {
		doc.Date = strings.TrimPrefix(key, dailyPrefix)
	}
	return doc, nil
}

func (p *persistence) SaveDaily(d *content.DailyDoc) error {
	if strings.TrimSpace(d.Date) == "" {
		return errors.New("store: daily document date required")
	}
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("store: encode daily %s: %w", d.Date, err)
	}
	if err := p.d.Write(dailyPrefix+d.Date, data); err != nil {
		return fmt.Errorf("store: write daily %s: %w", d.Date, err)
	}
	return nil
}

func (p *persistence) DeleteDaily(date string) error {
	return p.d.Erase(dailyPrefix + date)
}

func (p *persistence) DailyRange(ctx context.Context, from string, limit int) ([]content.DailyDoc, error) {
	docs := make([]content.DailyDoc, 0, limit)
	for key := range p.d.Keys(ctx.Done()) {
		if !strings.HasPrefix(key, dailyPrefix) {
			continue
		}
		if strings.TrimPrefix(key, dailyPrefix) < from {
			continue
		}
		doc, err := p.readDaily(key)
		if err != nil {
			// A malformed document must not take the display down.
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			continue
		}
		docs = append(docs, *doc)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Date < docs[j].Date })
	if limit > 0 && len(docs) > limit {
		docs = docs[:limit]
	}
	return docs, nil
}

// keyToPathTransform maps "settings" to the base directory and
// "daily-YYYY-MM-DD" into a daily/ subdirectory.
func keyToPathTransform(s string) *diskv.PathKey {
	if rest, ok := strings.CutPrefix(s, dailyPrefix); ok {
		return &diskv.PathKey{Path: []string{"daily"}, FileName: rest + ".json"}
	}
	return &diskv.PathKey{Path: []string{}, FileName: s + ".json"}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	name := strings.TrimSuffix(pathKey.FileName, ".json")
	if len(pathKey.Path) > 0 && pathKey.Path[0] == "daily" {
		return dailyPrefix + name
	}
	return name
}
