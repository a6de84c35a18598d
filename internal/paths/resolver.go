package paths

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultParallel bounds the number of concurrent artifact searches.
const DefaultParallel = 4

// Resolver turns experiment requests into drive roots and artifact paths.
// A Resolver holds no per-request state and is safe for concurrent use.
type Resolver struct {
	platform Platform
	fsys     Filesystem
	catalog  Catalog
	parallel int
	logger   *slog.Logger
}

// Option configures the Resolver during construction.
type Option func(*resolverConfig) error

type resolverConfig struct {
	platform Platform
	fsys     Filesystem
	catalog  Catalog
	parallel int
	logger   *slog.Logger
}

// New creates a Resolver. Without options it uses the host platform, the host
// filesystem and DefaultCatalog.
func New(opts ...Option) (*Resolver, error) {
	cfg := &resolverConfig{parallel: DefaultParallel}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if cfg.platform == nil {
		cfg.platform = DetectPlatform()
	}
	if cfg.fsys == nil {
		cfg.fsys = OSFilesystem{}
	}
	if cfg.catalog == nil {
		cfg.catalog = DefaultCatalog()
	}
	if err := cfg.catalog.Validate(); err != nil {
		return nil, err
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Resolver{
		platform: cfg.platform,
		fsys:     cfg.fsys,
		catalog:  append(Catalog(nil), cfg.catalog...),
		parallel: cfg.parallel,
		logger:   cfg.logger,
	}, nil
}

// WithPlatform overrides host platform detection.
func WithPlatform(p Platform) Option {
	return func(cfg *resolverConfig) error {
		if p == nil {
			return errors.New("paths: nil platform")
		}
		cfg.platform = p
		return nil
	}
}

// WithFilesystem replaces the host filesystem.
func WithFilesystem(f Filesystem) Option {
	return func(cfg *resolverConfig) error {
		if f == nil {
			return errors.New("paths: nil filesystem")
		}
		cfg.fsys = f
		return nil
	}
}

// WithCatalog replaces DefaultCatalog. The catalog is validated by New.
func WithCatalog(c Catalog) Option {
	return func(cfg *resolverConfig) error {
		cfg.catalog = c
		return nil
	}
}

// WithParallel sets how many artifact searches may run at once; 1 searches
// sequentially.
func WithParallel(n int) Option {
	return func(cfg *resolverConfig) error {
		if n < 1 {
			return fmt.Errorf("paths: parallel must be >= 1, got %d", n)
		}
		cfg.parallel = n
		return nil
	}
}

// WithLogger configures structured logging.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *resolverConfig) error {
		cfg.logger = l
		return nil
	}
}

// Platform returns the strategy the resolver derives drives with.
func (r *Resolver) Platform() Platform { return r.platform }

// Catalog returns a copy of the artifact catalog.
func (r *Resolver) Catalog() Catalog { return append(Catalog(nil), r.catalog...) }

// Drives derives the drive roots for req without touching the filesystem.
func (r *Resolver) Drives(req Request) DriveSet { return r.platform.Drives(req.withDefaults()) }

// Resolve derives the drive roots for req, checks them when req.MustExist is
// set, and searches every catalog artifact. A missing root fails the whole
// call with a *MissingRootsError; a missing artifact is a NotAvailable Value.
//
// Multi-match lists are in lexical walk order. Callers that need a different
// order should sort downstream.
func (r *Resolver) Resolve(ctx context.Context, req Request) (*Result, error) {
	req = req.withDefaults()
	if err := req.validateKeys(r.catalog); err != nil {
		return nil, err
	}

	start := time.Now()
	drives := r.platform.Drives(req)
	roots := drives.list()
	log := r.logger.With(
		slog.String("subject", req.Subject),
		slog.String("date", req.Date),
		slog.String("platform", r.platform.Name()),
	)

	if req.MustExist {
		if err := r.checkRoots(req.Keys, roots); err != nil {
			log.Warn("drive roots missing", slog.String("error", err.Error()))
			return nil, err
		}
	}

	values := make([]Value, len(r.catalog))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.parallel)
	for i, spec := range r.catalog {
		root := drives.Root(spec.Root)
		pattern := expandPattern(spec.Pattern, req.Subject, req.Date)
		g.Go(func() error {
			matches, err := search(gctx, r.fsys, root, pattern, spec.Recursive)
			if err != nil {
				return fmt.Errorf("search %s: %w", spec.Name, err)
			}
			values[i] = Many(matches)
			log.Debug("artifact searched",
				slog.String("artifact", spec.Name),
				slog.String("root", root),
				slog.String("pattern", pattern),
				slog.Int("matches", len(matches)),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(roots)+len(r.catalog))
	for i, root := range roots {
		entries = append(entries, Entry{Name: req.Keys[i], Value: Single(root)})
	}
	found := 0
	for i, spec := range r.catalog {
		if values[i].Available() {
			found++
		}
		entries = append(entries, Entry{Name: spec.Name, Value: values[i]})
	}

	log.Info("experiment resolved",
		slog.Int("artifacts", len(r.catalog)),
		slog.Int("found", found),
		slog.Duration("elapsed", time.Since(start)),
	)
	return newResult(entries, drives), nil
}

// checkRoots stats every root and reports all of the missing ones together.
func (r *Resolver) checkRoots(keys [3]string, roots [3]string) error {
	var missing []MissingRoot
	for i, root := range roots {
		if _, err := r.fsys.Stat(root); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				r.logger.Debug("stat drive root", slog.String("root", root), slog.String("error", err.Error()))
			}
			missing = append(missing, MissingRoot{Key: keys[i], Path: root})
		}
	}
	if len(missing) > 0 {
		return &MissingRootsError{Missing: missing}
	}
	return nil
}
