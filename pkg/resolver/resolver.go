// SPDX-License-Identifier: MPL-2.0

package resolver

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/latebind/latebind/pkg/assembly"
	"github.com/latebind/latebind/pkg/gobin"
	"github.com/latebind/latebind/pkg/host"
	"github.com/latebind/latebind/pkg/modpack"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

var (
	// ErrInvalidArgument is returned for an empty root path or a malformed
	// requested identity.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDirectoryNotFound is the sentinel error wrapped by DirectoryNotFoundError.
	ErrDirectoryNotFound = errors.New("directory not found")
)

type (
	// Registrar is the host's load-failure hook: it routes identities the host
	// could not resolve to the registered handlers.
	Registrar interface {
		Register(h assembly.Handler) bool
		Unregister(h assembly.Handler) bool
	}

	// Loader loads the module stored in the file at path.
	Loader interface {
		LoadFile(path string) (assembly.Module, error)
	}

	// Extractor reads the identity embedded in the file at path. Any error
	// means the file is not a module.
	Extractor interface {
		Extract(path string) (assembly.Identity, error)
	}

	// LoaderFunc adapts a function to Loader.
	LoaderFunc func(path string) (assembly.Module, error)

	// ExtractorFunc adapts a function to Extractor.
	ExtractorFunc func(path string) (assembly.Identity, error)

	// Option configures a Resolver.
	Option func(*Resolver)

	// DirectoryNotFoundError is returned when the root does not exist or is not
	// a directory.
	DirectoryNotFoundError struct {
		Path string
		Err  error
	}

	// Resolver resolves identities the host could not find by searching a
	// directory tree for the first file whose identity satisfies its criteria.
	//
	// Between Start and Stop the resolver is registered with its Registrar and
	// caches the identity (or unparseability) of every file it examines. The
	// cache is discarded by Stop. Resolver is safe for concurrent use.
	Resolver struct {
		root      string
		criteria  assembly.MatchCriteria
		registrar Registrar
		loader    Loader
		extractor Extractor
		logger    *log.Logger

		mu      sync.Mutex
		session *session
	}

	extractorChain []Extractor
)

// Error implements the error interface.
func (e *DirectoryNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("directory not found: %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("directory not found: %s", e.Path)
}

// Unwrap returns ErrDirectoryNotFound so callers can use errors.Is for programmatic detection.
func (e *DirectoryNotFoundError) Unwrap() error { return ErrDirectoryNotFound }

// LoadFile implements Loader.
func (f LoaderFunc) LoadFile(path string) (assembly.Module, error) { return f(path) }

// Extract implements Extractor.
func (f ExtractorFunc) Extract(path string) (assembly.Identity, error) { return f(path) }

// Extractors combines extractors into one that returns the first successful
// result, trying them in order.
func Extractors(extractors ...Extractor) Extractor {
	return extractorChain(extractors)
}

// Extract implements Extractor.
func (c extractorChain) Extract(path string) (assembly.Identity, error) {
	var errs []error
	for _, e := range c {
		id, err := e.Extract(path)
		if err == nil {
			return id, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return assembly.Identity{}, fmt.Errorf("no extractor configured for %s", path)
	}
	return assembly.Identity{}, errors.Join(errs...)
}

// DefaultExtractor reads module packs first and Go binaries second.
func DefaultExtractor() Extractor {
	return Extractors(ExtractorFunc(modpack.ReadIdentity), ExtractorFunc(gobin.ReadIdentity))
}

// WithCriteria sets the attributes a candidate must share with the request.
// The default is assembly.MatchAll.
func WithCriteria(c assembly.MatchCriteria) Option {
	return func(r *Resolver) {
		r.criteria = c
	}
}

// WithRegistrar sets the host hook the resolver attaches to on Start. The
// default is host.Default().
func WithRegistrar(reg Registrar) Option {
	return func(r *Resolver) {
		r.registrar = reg
	}
}

// WithLoader sets the primitive that loads the matching file. The default is
// the registrar when it implements Loader, host.Default() otherwise.
func WithLoader(l Loader) Option {
	return func(r *Resolver) {
		r.loader = l
	}
}

// WithExtractor sets the primitive that reads candidate identities. The
// default is DefaultExtractor().
func WithExtractor(e Extractor) Option {
	return func(r *Resolver) {
		r.extractor = e
	}
}

// WithLogger sets the resolver logger. The default discards output.
func WithLogger(l *log.Logger) Option {
	return func(r *Resolver) {
		r.logger = l
	}
}

// New creates an inactive resolver searching root. root must name an existing
// directory.
func New(root string, opts ...Option) (*Resolver, error) {
	if root == "" {
		return nil, fmt.Errorf("%w: root directory is empty", ErrInvalidArgument)
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, &DirectoryNotFoundError{Path: absRoot, Err: err}
	}
	if !info.IsDir() {
		return nil, &DirectoryNotFoundError{Path: absRoot, Err: errors.New("not a directory")}
	}

	r := &Resolver{
		root:     absRoot,
		criteria: assembly.MatchAll,
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.registrar == nil {
		r.registrar = host.Default()
	}
	if r.loader == nil {
		if l, ok := r.registrar.(Loader); ok {
			r.loader = l
		} else {
			r.loader = host.Default()
		}
	}
	if r.extractor == nil {
		r.extractor = DefaultExtractor()
	}
	if r.logger == nil {
		r.logger = log.New(io.Discard)
	}
	return r, nil
}

// Root returns the absolute root directory.
func (r *Resolver) Root() string { return r.root }

// Criteria returns the matching criteria.
func (r *Resolver) Criteria() assembly.MatchCriteria { return r.criteria }

// Start registers the resolver with its registrar and opens a session with an
// empty cache. It returns false if the resolver is already active.
func (r *Resolver) Start() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session != nil {
		return false
	}
	r.session = newSession(uuid.NewString())
	r.registrar.Register(r)
	r.logger.Debug("resolver started", "root", r.root, "criteria", r.criteria.String(), "session", r.session.id)
	return true
}

// Stop unregisters the resolver and discards the session cache. It returns
// false if the resolver is not active.
func (r *Resolver) Stop() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session == nil {
		return false
	}
	r.registrar.Unregister(r)
	r.logger.Debug("resolver stopped", "root", r.root, "session", r.session.id, "cached", r.session.len())
	r.session = nil
	return true
}

// Active reports whether the resolver is between Start and Stop.
func (r *Resolver) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session != nil
}

// Session returns the current session id, or "" when inactive.
func (r *Resolver) Session() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.session == nil {
		return ""
	}
	return r.session.id
}

// CachedEntries returns the number of files cached in the current session.
func (r *Resolver) CachedEntries() int {
	r.mu.Lock()
	s := r.session
	r.mu.Unlock()
	if s == nil {
		return 0
	}
	return s.len()
}

// Resolve implements assembly.Handler. It parses identityText, searches the
// root and loads the first match. found is false with a nil error when no file
// matches. A malformed identityText yields an error wrapping ErrInvalidArgument.
func (r *Resolver) Resolve(identityText string) (assembly.Module, bool, error) {
	requested, err := assembly.ParseIdentity(identityText)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	path, found := r.Find(requested)
	if !found {
		return nil, false, nil
	}

	m, err := r.loader.LoadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return m, true, nil
}

// Find returns the path of the first file under the root whose identity
// satisfies the criteria against requested. An inactive resolver searches with
// a cache that is dropped when Find returns.
func (r *Resolver) Find(requested assembly.Identity) (string, bool) {
	r.mu.Lock()
	s := r.session
	r.mu.Unlock()
	if s == nil {
		s = newSession("")
	}

	path, found := r.search(s, requested)
	if found {
		r.logger.Debug("module found", "identity", requested.String(), "path", path, "session", s.id)
	} else {
		r.logger.Debug("module not found", "identity", requested.String(), "root", r.root, "session", s.id)
	}
	return path, found
}

// search walks the tree depth-first with an explicit stack. The files of a
// directory are examined before any of its subdirectories, and subdirectories
// are visited in enumeration order.
func (r *Resolver) search(s *session, requested assembly.Identity) (string, bool) {
	stack := []string{r.root}
	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(dir)
		if err != nil {
			r.logger.Debug("skipping unreadable directory", "path", dir, "error", err)
			continue
		}

		var subdirs []string
		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())
			switch {
			case entry.IsDir():
				subdirs = append(subdirs, path)
				continue
			case entry.Type()&fs.ModeSymlink != 0:
				info, err := os.Stat(path)
				if err != nil || !info.Mode().IsRegular() {
					continue
				}
			case !entry.Type().IsRegular():
				continue
			}

			id, ok := s.identity(path, r.extract)
			if ok && r.criteria.Match(id, requested) {
				return path, true
			}
		}

		for i := len(subdirs) - 1; i >= 0; i-- {
			stack = append(stack, subdirs[i])
		}
	}
	return "", false
}

func (r *Resolver) extract(path string) (assembly.Identity, bool) {
	id, err := r.extractor.Extract(path)
	if err != nil {
		r.logger.Debug("skipping unparseable file", "path", path, "error", err)
		return assembly.Identity{}, false
	}
	return id, true
}
