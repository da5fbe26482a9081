package cli

import (
	"fmt"

	"github.com/mesh-intelligence/carta/internal/catalog"
	"github.com/mesh-intelligence/carta/internal/logger"
	"github.com/mesh-intelligence/carta/internal/store"
	"github.com/mesh-intelligence/carta/pkg/types"
)

// session is an attached catalog plus the means to release it.
type session struct {
	settings *settings
	log      *logger.Logger
	cupboard types.Cupboard
	catalog  *catalog.Catalog
}

// open loads settings and attaches the configured backend. logMode is used
// when log.mode is not configured. The caller must call close.
func (a *app) open(logMode string) (*session, error) {
	s, err := a.loadSettings()
	if err != nil {
		return nil, systemError{err}
	}
	if s.LogMode != "" {
		logMode = s.LogMode
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, systemError{fmt.Errorf("init logger: %w", err)}
	}

	cupboard, err := store.Open(s.Store)
	if err != nil {
		log.Sync()
		return nil, systemError{err}
	}
	log.Debug("cupboard attached", "backend", s.Store.Backend, "data_dir", s.Store.DataDir)
	return &session{
		settings: s,
		log:      log,
		cupboard: cupboard,
		catalog:  catalog.New(cupboard, log),
	}, nil
}

// close detaches the cupboard. A Detach failure replaces a nil err.
func (s *session) close(err *error) {
	if derr := s.cupboard.Detach(); derr != nil && *err == nil {
		*err = systemError{fmt.Errorf("detach: %w", derr)}
	}
	s.log.Sync()
}
