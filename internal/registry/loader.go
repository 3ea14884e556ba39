package registry

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed schemas
var embeddedSchemas embed.FS

// Loader reads raw schema documents. Versions are directories named
// "v<version>" holding one "<feed>.json" document per feed file.
type Loader interface {
	Versions() ([]string, error)
	Feeds(version string) ([]string, error)
	ReadSchema(version, feed string) ([]byte, error)
}

// FSLoader is a Loader over an fs.FS.
type FSLoader struct {
	fsys fs.FS
}

// NewFSLoader creates a loader reading from fsys.
func NewFSLoader(fsys fs.FS) *FSLoader {
	return &FSLoader{fsys: fsys}
}

// EmbeddedLoader returns a loader for the GBFS schemas compiled into the binary.
func EmbeddedLoader() *FSLoader {
	sub, err := fs.Sub(embeddedSchemas, "schemas")
	if err != nil {
		// The directory is embedded at build time.
		panic(fmt.Sprintf("embedded schemas: %v", err))
	}
	return NewFSLoader(sub)
}

// Versions lists the version directories, unsorted.
func (l *FSLoader) Versions() ([]string, error) {
	entries, err := fs.ReadDir(l.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("listing schema versions: %w", err)
	}

	var versions []string
	for _, e := range entries {
		if e.IsDir() && strings.HasPrefix(e.Name(), "v") {
			versions = append(versions, strings.TrimPrefix(e.Name(), "v"))
		}
	}
	return versions, nil
}

// Feeds lists the feed names of a version, sorted.
// Returns an error wrapping fs.ErrNotExist for unknown versions.
func (l *FSLoader) Feeds(version string) ([]string, error) {
	entries, err := fs.ReadDir(l.fsys, "v"+version)
	if err != nil {
		return nil, err
	}

	var feeds []string
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".json" {
			continue
		}
		feeds = append(feeds, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(feeds)
	return feeds, nil
}

// ReadSchema returns the raw schema document of a feed.
func (l *FSLoader) ReadSchema(version, feed string) ([]byte, error) {
	return fs.ReadFile(l.fsys, path.Join("v"+version, feed+".json"))
}
