package list

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/joshuapare/listkit/internal/logger"
	"github.com/joshuapare/listkit/list/registry"
	"github.com/joshuapare/listkit/pkg/types"
)

// InitOptions configures an Engine.
type InitOptions struct {
	// TrackAll registers every list created through the engine so that
	// MemoryStats and FreeAll can account for it.
	TrackAll bool

	// Debug traces every list operation (name, tag, outcome) at debug level.
	Debug bool

	// DebugWriter receives trace records when Logger is nil.
	// Default: os.Stderr
	DebugWriter io.Writer

	// Logger receives trace records. Overrides DebugWriter.
	Logger *slog.Logger
}

// DefaultInitOptions returns options with tracking and tracing disabled.
func DefaultInitOptions() InitOptions {
	return InitOptions{}
}

// Engine holds the process-wide state shared by lists: the optional
// registry of live lists and the debug trace stream.
//
// Lifecycle contract: Init on an initialized engine fails with
// types.ErrAlreadyInitialized; Shutdown followed by Init is allowed.
// Shutdown drops the registry without freeing the lists it tracked; call
// FreeAll first to release them.
//
// Engine methods are safe for concurrent use. Lists are not.
type Engine struct {
	mu          sync.Mutex
	initialized bool
	reg         *registry.Registry
	debugOut    io.Writer
	custom      *slog.Logger

	debug atomic.Bool
	log   atomic.Pointer[slog.Logger]
}

var std = &Engine{}

// Default returns the process-wide engine used by lists whose Config has no
// Engine. It is usable before Init with tracking and tracing disabled.
func Default() *Engine { return std }

// NewEngine returns an initialized engine configured by opts.
func NewEngine(opts InitOptions) *Engine {
	e := &Engine{}
	e.initLocked(opts)
	return e
}

// Init configures the engine. It fails if the engine is already initialized.
func (e *Engine) Init(opts InitOptions) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.initialized {
		return types.ErrAlreadyInitialized
	}
	e.initLocked(opts)
	return nil
}

func (e *Engine) initLocked(opts InitOptions) {
	e.initialized = true
	e.debugOut = opts.DebugWriter
	e.custom = opts.Logger
	if opts.TrackAll {
		e.reg = registry.New()
	}
	if opts.Debug {
		e.enableDebugLocked()
	} else {
		e.disableDebug()
	}
}

// Shutdown returns the engine to its uninitialized state. Lists that were
// still registered become untracked but remain usable.
func (e *Engine) Shutdown() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.reg != nil {
		e.reg.Close()
		e.reg = nil
	}
	e.initialized = false
	e.debugOut = nil
	e.custom = nil
	e.disableDebug()
	return nil
}

// Initialized reports whether Init (or NewEngine) has configured the engine.
func (e *Engine) Initialized() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.initialized
}

// Tracking reports whether lists created now are registered.
func (e *Engine) Tracking() bool {
	return e.registry() != nil
}

// EnableDebug turns on operation tracing.
func (e *Engine) EnableDebug() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.enableDebugLocked()
}

// DisableDebug turns off operation tracing.
func (e *Engine) DisableDebug() {
	e.disableDebug()
}

func (e *Engine) enableDebugLocked() {
	l := e.custom
	if l == nil {
		l = logger.New(logger.Options{Enabled: true, Writer: e.debugOut})
	}
	e.log.Store(l)
	e.debug.Store(true)
}

func (e *Engine) disableDebug() {
	e.debug.Store(false)
	e.log.Store(logger.Discard)
}

// MemoryStats sums the footprint of every tracked list. With tracking
// disabled it returns a zero snapshot.
func (e *Engine) MemoryStats() (types.MemoryInfo, error) {
	reg := e.registry()
	if reg == nil {
		return types.MemoryInfo{}, nil
	}
	info := reg.MemoryStats()
	e.trace("memory_stats", "", 0, nil, slog.Uint64("total", info.Total), slog.Uint64("used", info.Used))
	return info, nil
}

// Snapshot returns MemoryStats with a per-list breakdown.
func (e *Engine) Snapshot() registry.Snapshot {
	reg := e.registry()
	if reg == nil {
		return registry.Snapshot{}
	}
	return reg.Snapshot()
}

// FreeAll frees every tracked list. With tracking disabled it does nothing.
func (e *Engine) FreeAll() error {
	reg := e.registry()
	if reg == nil {
		return nil
	}
	n := reg.FreeAll()
	e.trace("free_all", "", 0, nil, slog.Int("freed", n))
	return nil
}

// InternalCount returns the number of tracked lists.
func (e *Engine) InternalCount() int {
	reg := e.registry()
	if reg == nil {
		return 0
	}
	return reg.Len()
}

func (e *Engine) registry() *registry.Registry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.reg
}

// trace logs one operation outcome. It never affects control flow.
func (e *Engine) trace(op, tag string, kind types.StoreKind, err error, extra ...slog.Attr) {
	if !e.debug.Load() {
		return
	}
	attrs := make([]slog.Attr, 0, 4+len(extra))
	if kind != 0 {
		attrs = append(attrs, slog.String("tag", tag), slog.String("kind", kind.String()))
	}
	attrs = append(attrs, slog.String("status", types.StatusString(err)))
	attrs = append(attrs, extra...)
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	e.log.Load().LogAttrs(context.Background(), slog.LevelDebug, op, attrs...)
}

// Package-level wrappers over the process-wide engine.

// Init configures the process-wide engine. See Engine.Init.
func Init(opts InitOptions) error { return std.Init(opts) }

// Shutdown resets the process-wide engine. See Engine.Shutdown.
func Shutdown() error { return std.Shutdown() }

// EnableDebug turns on tracing for the process-wide engine.
func EnableDebug() { std.EnableDebug() }

// DisableDebug turns off tracing for the process-wide engine.
func DisableDebug() { std.DisableDebug() }

// MemoryStats reports the memory of lists tracked by the process-wide engine.
func MemoryStats() (types.MemoryInfo, error) { return std.MemoryStats() }

// FreeAll frees every list tracked by the process-wide engine.
func FreeAll() error { return std.FreeAll() }

// InternalCount returns the number of lists tracked by the process-wide engine.
func InternalCount() int { return std.InternalCount() }
