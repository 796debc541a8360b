package config

import (
	"fmt"
	"sync"

	"github.com/bbzsolar/solar-roof-map/pkg/validation"
)

// Settings is the mutable, in-memory view of the configuration edited from
// the settings page. Nothing is written back to disk.
type Settings struct {
	mu   sync.RWMutex
	conf Configuration
}

// NewSettings wraps conf. A nil conf starts from Default().
func NewSettings(conf *Configuration) *Settings {
	if conf == nil {
		conf = Default()
	}
	return &Settings{conf: cloneConfiguration(*conf)}
}

// Snapshot returns a copy of the current configuration.
func (s *Settings) Snapshot() Configuration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneConfiguration(s.conf)
}

// Update validates next and replaces the current configuration. Logging and
// output options are process-level and are kept from the current value.
func (s *Settings) Update(next Configuration) error {
	if token := next.Integrations.MapboxToken; token != "" {
		if err := validation.ValidateMapboxToken(token); err != nil {
			return fmt.Errorf("invalid integrations: %w", err)
		}
	}
	if len(next.Panels) == 0 {
		next.Panels = DefaultPanelModels()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next.Logging = s.conf.Logging
	next.Output = s.conf.Output
	s.conf = cloneConfiguration(next)
	return nil
}

// SetMapboxToken stores a public token for the heatmap. An empty token clears
// it, mirroring the "change token" action.
func (s *Settings) SetMapboxToken(token string) error {
	if token != "" {
		if err := validation.ValidateMapboxToken(token); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conf.Integrations.MapboxToken = token
	return nil
}

func cloneConfiguration(c Configuration) Configuration {
	out := c
	out.Panels = append([]PanelModel(nil), c.Panels...)
	return out
}
