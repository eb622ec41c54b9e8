// SPDX-License-Identifier: MPL-2.0

package host

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/latebind/latebind/pkg/assembly"
	"github.com/latebind/latebind/pkg/gobin"
	"github.com/latebind/latebind/pkg/modpack"

	"github.com/charmbracelet/log"
)

// ErrModuleNotFound is the sentinel error for identities that no probe path
// and no handler could satisfy.
var ErrModuleNotFound = errors.New("module not found")

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

type (
	// FileLoader loads the module stored in the file at path.
	FileLoader func(path string) (assembly.Module, error)

	// Option configures a Registry.
	Option func(*Registry)

	// Registry is a host module registry: the table of loaded modules, the
	// default probing path and the load-failure hook. It is safe for
	// concurrent use.
	Registry struct {
		mu         sync.Mutex
		handlers   []assembly.Handler
		modules    []assembly.Module
		byPath     map[string]assembly.Module
		probePaths []string
		loadFile   FileLoader
		logger     *log.Logger
	}

	// LoadError describes a module that could not be loaded. Reference is set
	// when the module itself loaded but one of its references did not.
	LoadError struct {
		Identity  string
		Reference string
		Err       error
	}

	referencer interface {
		References() []assembly.Identity
	}
)

// Error implements the error interface.
func (e *LoadError) Error() string {
	if e.Reference != "" {
		return fmt.Sprintf("could not load module %q: reference %q: %v", e.Identity, e.Reference, e.Err)
	}
	return fmt.Sprintf("could not load module %q: %v", e.Identity, e.Err)
}

// Unwrap returns the underlying error.
func (e *LoadError) Unwrap() error { return e.Err }

// WithProbePaths sets the directories searched for "<Name>.lbm" before any
// handler is consulted.
func WithProbePaths(dirs ...string) Option {
	return func(r *Registry) {
		r.probePaths = append([]string(nil), dirs...)
	}
}

// WithLoader replaces the file loader. The default tries a module pack first
// and a Go binary second.
func WithLoader(fn FileLoader) Option {
	return func(r *Registry) {
		r.loadFile = fn
	}
}

// WithLogger sets the registry logger. The default discards output.
func WithLogger(l *log.Logger) Option {
	return func(r *Registry) {
		r.logger = l
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		byPath:   make(map[string]assembly.Module),
		loadFile: LoadModuleFile,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Default returns the process-wide registry.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// LoadModuleFile is the default FileLoader.
func LoadModuleFile(path string) (assembly.Module, error) {
	m, packErr := modpack.Open(path)
	if packErr == nil {
		return m, nil
	}
	if !errors.Is(packErr, modpack.ErrNotModulePack) {
		return nil, packErr
	}
	b, binErr := gobin.Open(path)
	if binErr == nil {
		return b, nil
	}
	return nil, fmt.Errorf("%s is not a loadable module: %w", path, errors.Join(packErr, binErr))
}

// Register subscribes h to load failures. Registering a handler twice is a
// no-op; the result reports whether h was added.
func (r *Registry) Register(h assembly.Handler) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if slices.Contains(r.handlers, h) {
		return false
	}
	r.handlers = append(r.handlers, h)
	return true
}

// Unregister removes h. The result reports whether h was registered.
func (r *Registry) Unregister(h assembly.Handler) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := slices.Index(r.handlers, h)
	if i < 0 {
		return false
	}
	r.handlers = slices.Delete(r.handlers, i, i+1)
	return true
}

// IsRegistered reports whether h is currently subscribed.
func (r *Registry) IsRegistered(h assembly.Handler) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Contains(r.handlers, h)
}

// Modules returns the loaded modules in load order.
func (r *Registry) Modules() []assembly.Module {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.modules)
}

// Load returns the module for the display name identityText. The loaded table
// is consulted first, then the probe paths, then each handler in
// registration order. Handlers run without the registry lock held, so they
// may call back into the registry.
func (r *Registry) Load(identityText string) (assembly.Module, error) {
	requested, err := assembly.ParseIdentity(identityText)
	if err != nil {
		return nil, err
	}
	criteria := requestCriteria(requested)

	if m, ok := r.lookup(requested, criteria); ok {
		return m, nil
	}

	if m, ok, err := r.probe(requested, criteria); ok || err != nil {
		return m, err
	}

	r.mu.Lock()
	handlers := slices.Clone(r.handlers)
	r.mu.Unlock()

	for _, h := range handlers {
		m, found, err := h.Resolve(identityText)
		if err != nil {
			return nil, &LoadError{Identity: identityText, Err: err}
		}
		if found {
			r.logger.Debug("module resolved by handler", "identity", identityText, "path", m.Location())
			return r.record(m), nil
		}
	}

	r.logger.Debug("module not found", "identity", identityText)
	return nil, &LoadError{Identity: identityText, Err: ErrModuleNotFound}
}

// LoadFile loads the module stored at path and binds its references through
// Load. A module is recorded before its references are bound, so reference
// cycles terminate. If a reference cannot be bound the module is removed again.
func (r *Registry) LoadFile(path string) (assembly.Module, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve module path: %w", err)
	}

	r.mu.Lock()
	existing, ok := r.byPath[absPath]
	r.mu.Unlock()
	if ok {
		return existing, nil
	}

	m, err := r.loadFile(absPath)
	if err != nil {
		return nil, err
	}
	m = r.record(m)
	r.logger.Debug("module loaded", "identity", m.Identity().String(), "path", absPath)

	refs, ok := m.(referencer)
	if !ok {
		return m, nil
	}
	for _, ref := range refs.References() {
		if _, err := r.Load(ref.String()); err != nil {
			r.forget(m)
			return nil, &LoadError{Identity: m.Identity().String(), Reference: ref.String(), Err: unwrapLoadError(err)}
		}
	}
	return m, nil
}

// lookup finds an already-loaded module satisfying requested.
func (r *Registry) lookup(requested assembly.Identity, criteria assembly.MatchCriteria) (assembly.Module, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range r.modules {
		if criteria.Match(m.Identity(), requested) {
			return m, true
		}
	}
	return nil, false
}

// probe checks "<dir>/<Name>.lbm" in each probe path.
func (r *Registry) probe(requested assembly.Identity, criteria assembly.MatchCriteria) (assembly.Module, bool, error) {
	for _, dir := range r.probePaths {
		path := filepath.Join(dir, requested.Name()+modpack.Ext)
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		id, err := modpack.ReadIdentity(path)
		if err != nil {
			r.logger.Debug("probe candidate unreadable", "path", path, "error", err)
			continue
		}
		if !criteria.Match(id, requested) {
			r.logger.Debug("probe candidate does not match", "path", path, "identity", id.String())
			continue
		}
		m, err := r.LoadFile(path)
		if err != nil {
			return nil, false, err
		}
		return m, true, nil
	}
	return nil, false, nil
}

// record adds m to the loaded table unless a module from the same location is
// already present, in which case the existing module is returned.
func (r *Registry) record(m assembly.Module) assembly.Module {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byPath[m.Location()]; ok {
		return existing
	}
	r.byPath[m.Location()] = m
	r.modules = append(r.modules, m)
	return m
}

func (r *Registry) forget(m assembly.Module) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byPath, m.Location())
	r.modules = slices.DeleteFunc(r.modules, func(x assembly.Module) bool { return x == m })
}

// requestCriteria returns the attributes a request pins down: name and culture
// always, version and public key only when the request carries them.
func requestCriteria(requested assembly.Identity) assembly.MatchCriteria {
	c := assembly.MatchName | assembly.MatchCulture
	if requested.HasVersion() {
		c |= assembly.MatchVersion
	}
	if !requested.PublicKeyToken().IsEmpty() {
		c |= assembly.MatchPublicKey
	}
	return c
}

// unwrapLoadError strips one LoadError layer so nested reference failures
// report the innermost cause once.
func unwrapLoadError(err error) error {
	var le *LoadError
	if errors.As(err, &le) && le.Reference == "" {
		return le.Err
	}
	return err
}
