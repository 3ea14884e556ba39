// Package registry resolves GBFS versions to compiled JSON Schemas.
package registry

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/usestring/gbfs-validator/internal/cache"
	"github.com/usestring/gbfs-validator/internal/metrics"
	"github.com/usestring/gbfs-validator/pkg/types"
)

// schemaBaseURL is the base of the resource URLs schemas are compiled under.
// Only the fragment part of engine locations is ever reported.
const schemaBaseURL = "https://schemas.gbfs.local"

// DefaultMaxVersions is the default compiled schema cache size.
const DefaultMaxVersions = 16

// CompiledVersion holds the compiled schemas of every feed of one version.
// It is immutable and safe for concurrent use.
type CompiledVersion struct {
	Version string
	feeds   map[string]*jsonschema.Schema
}

// Feed returns the compiled schema of a feed file.
func (cv *CompiledVersion) Feed(name string) (*jsonschema.Schema, error) {
	sch, ok := cv.feeds[name]
	if !ok {
		return nil, &UnsupportedFeedError{Version: cv.Version, Feed: name}
	}
	return sch, nil
}

// Feeds returns the feed names of this version, sorted.
func (cv *CompiledVersion) Feeds() []string {
	names := make([]string, 0, len(cv.feeds))
	for name := range cv.feeds {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Registry resolves versions to compiled schema sets.
// Compilation happens on first use; concurrent callers for the same version
// share one compilation.
type Registry struct {
	loader Loader
	cache  *cache.SchemaCache[*CompiledVersion]
	group  singleflight.Group

	compiles atomic.Int64 // number of compilations started
}

// New creates a registry over loader caching up to maxVersions compiled versions.
func New(loader Loader, maxVersions int) (*Registry, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if maxVersions <= 0 {
		maxVersions = DefaultMaxVersions
	}

	c, err := cache.NewSchemaCache[*CompiledVersion](maxVersions)
	if err != nil {
		return nil, fmt.Errorf("creating schema cache: %w", err)
	}

	return &Registry{
		loader: loader,
		cache:  c,
	}, nil
}

// NewEmbedded creates a registry over the schemas embedded in the binary.
func NewEmbedded(maxVersions int) (*Registry, error) {
	return New(EmbeddedLoader(), maxVersions)
}

// NormalizeVersion maps version spellings such as "v2.3" or "2.3.0" onto the
// canonical "2.3". Unparseable input is an *UnsupportedVersionError.
func NormalizeVersion(version string) (string, error) {
	v, err := semver.NewVersion(strings.TrimSpace(version))
	if err != nil {
		return "", &UnsupportedVersionError{Version: version}
	}

	key := fmt.Sprintf("%d.%d", v.Major(), v.Minor())
	if pre := v.Prerelease(); pre != "" {
		key += "-" + pre
	}
	return key, nil
}

// Resolve returns the compiled schemas of version.
func (r *Registry) Resolve(version string) (*CompiledVersion, error) {
	key, err := NormalizeVersion(version)
	if err != nil {
		var uv *UnsupportedVersionError
		if errors.As(err, &uv) {
			uv.Supported = r.supportedVersions()
		}
		return nil, err
	}

	if cv, ok := r.cache.Get(key); ok {
		metrics.ObserveCacheLookup(true)
		return cv, nil
	}
	metrics.ObserveCacheLookup(false)

	v, err, _ := r.group.Do(key, func() (any, error) {
		// A flight that finished between the lookup above and this one
		// has already stored its result.
		if cv, ok := r.cache.Get(key); ok {
			return cv, nil
		}

		cv, err := r.compile(version, key)
		metrics.ObserveCompile(key, err)
		if err != nil {
			return nil, err
		}
		r.cache.Put(key, cv)
		return cv, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*CompiledVersion), nil
}

func (r *Registry) compile(requested, key string) (*CompiledVersion, error) {
	r.compiles.Add(1)
	start := time.Now()

	feeds, err := r.loader.Feeds(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &UnsupportedVersionError{Version: requested, Supported: r.supportedVersions()}
		}
		return nil, &SchemaLoadError{Version: key, Cause: err}
	}
	if len(feeds) == 0 {
		return nil, &UnsupportedVersionError{Version: requested, Supported: r.supportedVersions()}
	}

	compiler := jsonschema.NewCompiler()
	compiler.DefaultDraft(jsonschema.Draft7)
	compiler.AssertFormat()

	for _, feed := range feeds {
		raw, err := r.loader.ReadSchema(key, feed)
		if err != nil {
			return nil, &SchemaLoadError{Version: key, Feed: feed, Cause: err}
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			return nil, &SchemaLoadError{Version: key, Feed: feed, Cause: err}
		}
		if err := compiler.AddResource(resourceURL(key, feed), doc); err != nil {
			return nil, &SchemaLoadError{Version: key, Feed: feed, Cause: err}
		}
	}

	cv := &CompiledVersion{
		Version: key,
		feeds:   make(map[string]*jsonschema.Schema, len(feeds)),
	}
	for _, feed := range feeds {
		sch, err := compiler.Compile(resourceURL(key, feed))
		if err != nil {
			return nil, &SchemaLoadError{Version: key, Feed: feed, Cause: err}
		}
		cv.feeds[feed] = sch
	}

	slog.Debug("compiled GBFS schemas",
		slog.String("version", key),
		slog.Int("feeds", len(feeds)),
		slog.Duration("duration", time.Since(start)),
	)

	return cv, nil
}

func resourceURL(version, feed string) string {
	return fmt.Sprintf("%s/v%s/%s.json", schemaBaseURL, version, feed)
}

// SchemaDocument returns the raw schema document of a feed in a version.
func (r *Registry) SchemaDocument(version, feed string) ([]byte, error) {
	key, err := NormalizeVersion(version)
	if err != nil {
		return nil, err
	}

	feeds, err := r.loader.Feeds(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &UnsupportedVersionError{Version: version, Supported: r.supportedVersions()}
		}
		return nil, &SchemaLoadError{Version: key, Cause: err}
	}
	if !slices.Contains(feeds, feed) {
		return nil, &UnsupportedFeedError{Version: key, Feed: feed}
	}

	raw, err := r.loader.ReadSchema(key, feed)
	if err != nil {
		return nil, &SchemaLoadError{Version: key, Feed: feed, Cause: err}
	}
	return raw, nil
}

// Versions lists every supported version with its feeds, ordered by version.
func (r *Registry) Versions() ([]types.VersionInfo, error) {
	versions, err := r.sortedVersions()
	if err != nil {
		return nil, err
	}

	infos := make([]types.VersionInfo, 0, len(versions))
	for _, v := range versions {
		feeds, err := r.loader.Feeds(v)
		if err != nil {
			return nil, &SchemaLoadError{Version: v, Cause: err}
		}
		infos = append(infos, types.VersionInfo{Version: v, Feeds: feeds})
	}
	return infos, nil
}

// Warm compiles the given versions concurrently, or every supported version
// when none are given.
func (r *Registry) Warm(ctx context.Context, versions ...string) error {
	if len(versions) == 0 {
		all, err := r.sortedVersions()
		if err != nil {
			return err
		}
		versions = all
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, v := range versions {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, err := r.Resolve(v)
			return err
		})
	}
	return g.Wait()
}

func (r *Registry) sortedVersions() ([]string, error) {
	raw, err := r.loader.Versions()
	if err != nil {
		return nil, err
	}

	parsed := make(semver.Collection, 0, len(raw))
	byVersion := make(map[*semver.Version]string, len(raw))
	for _, s := range raw {
		v, err := semver.NewVersion(s)
		if err != nil {
			slog.Warn("ignoring schema directory with unparseable version", slog.String("version", s))
			continue
		}
		parsed = append(parsed, v)
		byVersion[v] = s
	}
	sort.Sort(parsed)

	out := make([]string, len(parsed))
	for i, v := range parsed {
		out[i] = byVersion[v]
	}
	return out, nil
}

func (r *Registry) supportedVersions() []string {
	versions, err := r.sortedVersions()
	if err != nil {
		return nil
	}
	return versions
}
