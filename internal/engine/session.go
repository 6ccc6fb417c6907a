package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/roach88/lily/internal/compiler"
	"github.com/roach88/lily/internal/ir"
)

// Session tracks the latest generation of an interactively edited
// definition. Update regenerates only when the edit changes the compiled
// result; text edits that parse to the same rules, instructions and
// iterations keep the previous mesh.
//
// Thread-safety: Session is safe for concurrent use.
type Session struct {
	engine *Engine

	mu       sync.Mutex
	compiled *compiler.Compiled
	current  *Generation
}

// NewSession creates a session with no generation yet.
func (e *Engine) NewSession() *Session {
	return &Session{engine: e}
}

// Update applies def. It returns the current generation and whether a new
// one was produced. On error the previous generation is kept.
func (s *Session) Update(ctx context.Context, def ir.Definition) (*Generation, bool, error) {
	start := time.Now()
	c := compiler.Compile(def)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.compiled != nil && s.compiled.Equal(c) {
		s.engine.logger.Debug("definition unchanged, keeping mesh", "run_id", s.current.RunID)
		return s.current, false, nil
	}

	hash, err := ir.DefinitionHash(def)
	if err != nil {
		return s.current, false, fmt.Errorf("update: %w", err)
	}

	gen, err := s.engine.run(ctx, def, hash, c, start)
	if err != nil {
		return s.current, false, err
	}

	s.compiled = &c
	s.current = gen
	return gen, true, nil
}

// Current returns the latest generation, or nil before the first Update.
func (s *Session) Current() *Generation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}
