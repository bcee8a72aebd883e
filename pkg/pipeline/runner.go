package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/shapestack/pkg/cache"
	"github.com/matzehuels/shapestack/pkg/errors"
	"github.com/matzehuels/shapestack/pkg/layout"
	"github.com/matzehuels/shapestack/pkg/matrix"
	"github.com/matzehuels/shapestack/pkg/observability"
	"github.com/matzehuels/shapestack/pkg/scene"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; it does not
// store pipeline results. Multiple goroutines can use the same Runner with
// different options, as long as they do not share a scene.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the default lifetime of cache entries when positive.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidArgument, err, "invalid options")
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	sc, hash, err := r.Load(ctx, opts)
	if err != nil {
		return nil, errors.Wrap(stageCode(err), err, "load")
	}
	result.Scene = sc
	result.SceneHash = hash
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.ShapeCount = sc.Len()

	r.Logger.Info("loaded scene",
		"name", sc.Name,
		"shapes", sc.Len(),
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	l, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, sc, hash, opts)
	if err != nil {
		return nil, errors.Wrap(stageCode(err), err, "layout")
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Rows = l.Rows
	result.Stats.Columns = l.Columns
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"layers", l.Rows,
		"columns", l.Columns,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		return nil, errors.Wrap(stageCode(err), err, "render")
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads and builds the scene, then runs its steps unless
// opts.SkipSteps is set. The returned hash identifies the document content
// and keys the layout cache.
func (r *Runner) Load(ctx context.Context, opts Options) (sc *scene.Scene, hash string, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLoad(); err != nil {
		return nil, "", err
	}

	source := opts.Source()
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, source)
	start := time.Now()
	defer func() {
		shapes := 0
		if sc != nil {
			shapes = sc.Len()
		}
		hooks.OnLoadComplete(ctx, source, shapes, time.Since(start), err)
	}()

	doc := opts.Document
	if doc == nil {
		if doc, err = scene.ReadFile(opts.Scene); err != nil {
			return nil, "", err
		}
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInternal, err, "hash scene")
	}
	hash = cache.Hash(data)

	if sc, err = scene.Build(doc); err != nil {
		return nil, "", err
	}
	if !opts.SkipSteps && len(sc.Steps) > 0 {
		steps := len(sc.Steps)
		if err = sc.Apply(); err != nil {
			return nil, "", err
		}
		opts.Logger.Debug("applied steps", "scene", sc.Name, "steps", steps)
	}
	return sc, hash, nil
}

// ComputeLayoutWithCacheInfo packs the scene into a matrix and snapshots it,
// returning whether the layout came from the cache. An empty sceneHash
// bypasses the cache.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, sc *scene.Scene, sceneHash string, opts Options) (l *layout.Layout, hit bool, err error) {
	if sc == nil {
		return nil, false, errors.New(errors.ErrCodeInvalidArgument, "nil scene")
	}
	r.applyLogger(&opts)

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, sc.Len())
	start := time.Now()
	defer func() {
		rows, cols := 0, 0
		if l != nil {
			rows, cols = l.Rows, l.Columns
		}
		hooks.OnLayoutComplete(ctx, rows, cols, time.Since(start), err)
	}()

	var cacheKey string
	if sceneHash != "" {
		cacheKey = r.Keyer.LayoutKey(sceneHash, opts.LayoutKeyOpts())
		if !opts.Refresh {
			if cached, ok := r.cachedLayout(ctx, cacheKey); ok {
				cached.Name = sc.Name
				return cached, true, nil
			}
		}
	}

	m, err := matrix.FromComposite(sc.Root)
	if err != nil {
		return nil, false, err
	}
	if l, err = layout.Build(m, sc.ID); err != nil {
		return nil, false, err
	}
	l.Name = sc.Name
	opts.Logger.Debug("packed matrix", "scene", sc.Name, "rows", m.Rows(), "columns", m.Columns(), "shapes", m.Len())

	if cacheKey != "" {
		if data, err := layout.Marshal(l); err == nil {
			r.store(ctx, "layout", cacheKey, data, cache.TTLLayout)
		}
	}
	return l, false, nil
}

// ComputeLayout is a convenience wrapper that calls ComputeLayoutWithCacheInfo
// and discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, sc *scene.Scene, sceneHash string, opts Options) (*layout.Layout, error) {
	l, _, err := r.ComputeLayoutWithCacheInfo(ctx, sc, sceneHash, opts)
	return l, err
}

func (r *Runner) cachedLayout(ctx context.Context, key string) (*layout.Layout, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "layout")
		return nil, false
	}
	l, err := layout.Unmarshal(data)
	if err != nil {
		// Stale encoding; recompute.
		observability.Cache().OnCacheMiss(ctx, "layout")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "layout")
	return l, true
}

// RenderWithCacheInfo generates artifacts with caching and returns whether
// every artifact came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l *layout.Layout, opts Options) (artifacts map[string][]byte, hit bool, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	if l == nil {
		return nil, false, errors.New(errors.ErrCodeInvalidArgument, "nil layout")
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	defer func() { hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err) }()

	// Compute cache key from layout data
	layoutData, err := layout.Marshal(l)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize layout for cache key")
	}
	layoutHash := cache.Hash(layoutData)

	if !opts.Refresh {
		artifacts = make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			data, ok, err := r.Cache.Get(ctx, r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format)))
			if err != nil || !ok {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				break
			}
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	rendered, err := RenderLayout(ctx, l, opts)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		r.store(ctx, "artifact", r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format)), data, cache.TTLArtifact)
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Render(ctx context.Context, l *layout.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// store writes a cache entry. Cache failures are logged, never returned.
func (r *Runner) store(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if r.TTL > 0 {
		ttl = r.TTL
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// stageCode keeps the code of a coded error and marks anything else internal.
func stageCode(err error) errors.Code {
	if code := errors.GetCode(err); code != "" {
		return code
	}
	return errors.ErrCodeInternal
}
