package settings

import (
	"fmt"
	"os"
	"sync"

	"github.com/oomph-ac/aimbench/internal"
	"github.com/oomph-ac/aimbench/worker"
	"github.com/sirupsen/logrus"
)

// Store holds the live configuration document. A failed replacement keeps the previous document.
type Store struct {
	mu          sync.RWMutex
	cfg         Config
	fingerprint uint64

	log *logrus.Logger
}

// NewStore returns a store holding the normalised form of cfg.
func NewStore(cfg Config, log *logrus.Logger) *Store {
	log = internal.Logger(log)
	cfg.Normalize()
	fp, err := Fingerprint(cfg)
	if err != nil {
		log.Warnf("unable to fingerprint configuration: %v", err)
	}
	return &Store{cfg: cfg, fingerprint: fp, log: log}
}

// Config returns a copy of the live document.
func (s *Store) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Set replaces the live document with the normalised form of cfg, returning true if anything changed.
func (s *Store) Set(cfg Config) (bool, error) {
	cfg.Normalize()
	fp, err := Fingerprint(cfg)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	changed := fp != s.fingerprint
	s.cfg, s.fingerprint = cfg, fp
	return changed, nil
}

// Replace imports data as the new live document. If data cannot be decoded, the previous document is kept and the
// diagnostic is returned.
func (s *Store) Replace(data []byte) (Config, bool, error) {
	cfg, err := Import(data)
	if err != nil {
		s.log.Warnf("configuration import rejected: %v", err)
		return s.Config(), false, err
	}
	changed, err := s.Set(cfg)
	if err != nil {
		return s.Config(), false, err
	}
	if changed {
		s.log.Debug("configuration replaced")
	}
	return cfg, changed, nil
}

// Export encodes the live document.
func (s *Store) Export() ([]byte, error) {
	return Export(s.Config())
}

// ExportFile writes the live document to path without blocking the caller. The returned channel receives the result
// of the write once it completes.
func (s *Store) ExportFile(path string) <-chan error {
	res := make(chan error, 1)
	data, err := s.Export()
	if err != nil {
		res <- err
		return res
	}
	worker.Submit(func() {
		if err := os.WriteFile(path, data, 0644); err != nil {
			s.log.Warnf("unable to export configuration to %s: %v", path, err)
			res <- fmt.Errorf("failed writing settings file: %w", err)
			return
		}
		s.log.Infof("configuration exported to %s", path)
		res <- nil
	})
	return res
}
