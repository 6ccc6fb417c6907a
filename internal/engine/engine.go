package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/roach88/lily/internal/compiler"
	"github.com/roach88/lily/internal/ir"
)

// Recorder observes finished generations. Implemented by metrics.Collector.
type Recorder interface {
	RecordGeneration(stats Stats)
	RecordFailure(reason string)
}

// Stats summarizes one generation.
type Stats struct {
	Iterations   int           `json:"iterations"`
	Rules        int           `json:"rules"`
	Symbols      int           `json:"symbols"`
	Instructions int           `json:"instructions"`
	Vertices     int           `json:"vertices"`
	Indices      int           `json:"indices"`
	Duration     time.Duration `json:"-"`
}

// Generation is the result of one pipeline run.
type Generation struct {
	RunID          string           `json:"run_id"`
	DefinitionHash string           `json:"definition_hash"`
	Definition     ir.Definition    `json:"definition"`
	Expanded       string           `json:"expanded"`
	Program        []ir.Instruction `json:"-"`
	Mesh           *ir.Mesh         `json:"mesh"`
	Transform      *Transform       `json:"transform,omitempty"` // nil when no viewport is set
	Stats          Stats            `json:"stats"`
}

// Engine runs the generation pipeline. An Engine holds configuration only;
// every Generate call starts from scratch, so one Engine may serve
// concurrent callers.
type Engine struct {
	logger   *slog.Logger
	quota    SymbolQuota
	recorder Recorder
	runIDs   RunIDGenerator
	viewport *ir.Rect
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithSymbolQuota bounds the expanded string length. limit <= 0 (the
// default) leaves expansion unbounded.
func WithSymbolQuota(limit int) Option {
	return func(e *Engine) {
		e.quota = NewSymbolQuota(limit)
	}
}

// WithRecorder reports every generation to r.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) {
		e.recorder = r
	}
}

// WithRunIDGenerator sets the run ID source. Default: UUIDv7Generator.
func WithRunIDGenerator(g RunIDGenerator) Option {
	return func(e *Engine) {
		e.runIDs = g
	}
}

// WithViewport fits every generated mesh into target. Without a viewport
// meshes are returned in turtle coordinates.
func WithViewport(target ir.Rect) Option {
	return func(e *Engine) {
		e.viewport = &target
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger: slog.Default(),
		runIDs: UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Generate compiles def and runs it through the pipeline.
//
// Malformed input never fails a generation; it degrades as described in
// package compiler. The only errors are a cancelled ctx, which is checked
// between rewriting passes, and an exceeded symbol quota.
func (e *Engine) Generate(ctx context.Context, def ir.Definition) (*Generation, error) {
	start := time.Now()

	hash, err := ir.DefinitionHash(def)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	return e.run(ctx, def, hash, compiler.Compile(def), start)
}

// run executes the pipeline for an already compiled definition.
func (e *Engine) run(ctx context.Context, def ir.Definition, hash string, c compiler.Compiled, start time.Time) (*Generation, error) {
	runID := e.runIDs.Generate()
	log := e.logger.With("run_id", runID)

	log.Debug("definition compiled",
		"definition_hash", hash,
		"rules", len(c.Rules),
		"symbols_mapped", c.Instructions.Len(),
		"iterations", c.Iterations)

	expanded, err := e.expand(ctx, c)
	if err != nil {
		log.Warn("expansion stopped", "err", err)
		if e.recorder != nil {
			e.recorder.RecordFailure(failureReason(err))
		}
		return nil, fmt.Errorf("generate: %w", err)
	}

	program := Translate(c.Instructions, expanded)
	mesh := BuildMesh(c.Options, program)

	gen := &Generation{
		RunID:          runID,
		DefinitionHash: hash,
		Definition:     def,
		Expanded:       expanded,
		Program:        program,
		Mesh:           mesh,
		Stats: Stats{
			Iterations:   c.Iterations,
			Rules:        len(c.Rules),
			Symbols:      utf8.RuneCountInString(expanded),
			Instructions: len(program),
			Vertices:     len(mesh.Vertices),
			Indices:      len(mesh.Indices),
		},
	}

	if e.viewport != nil {
		t := Fit(mesh, *e.viewport)
		gen.Transform = &t
	}

	gen.Stats.Duration = time.Since(start)
	if e.recorder != nil {
		e.recorder.RecordGeneration(gen.Stats)
	}

	log.Info("mesh generated",
		"symbols", gen.Stats.Symbols,
		"instructions", gen.Stats.Instructions,
		"vertices", gen.Stats.Vertices,
		"triangles", mesh.TriangleCount(),
		"duration", gen.Stats.Duration)

	return gen, nil
}

// expand runs the rewriting passes, enforcing the quota and honoring
// cancellation between passes.
func (e *Engine) expand(ctx context.Context, c compiler.Compiled) (string, error) {
	s := c.Axiom
	for pass := 1; pass <= c.Iterations; pass++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		s = Rewrite(c.Rules, s)
		if err := e.quota.Check(pass, s); err != nil {
			return "", err
		}
		e.logger.Debug("rewrite pass", "pass", pass, "bytes", len(s))
	}
	return s, nil
}

func failureReason(err error) string {
	switch {
	case IsSymbolQuotaError(err):
		return "quota"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "error"
	}
}
