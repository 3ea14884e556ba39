package registry

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels matched by the typed errors below via errors.Is.
var (
	ErrUnsupportedVersion = errors.New("unsupported version")
	ErrUnsupportedFeed    = errors.New("unsupported feed")
	ErrSchemaLoad         = errors.New("schema load failed")
)

// UnsupportedVersionError is returned when no schema set is registered for a version.
type UnsupportedVersionError struct {
	Version   string   // Version as requested by the caller
	Supported []string // Versions that are available, if known
}

func (e *UnsupportedVersionError) Error() string {
	if len(e.Supported) == 0 {
		return fmt.Sprintf("unsupported GBFS version %q", e.Version)
	}
	return fmt.Sprintf("unsupported GBFS version %q (supported: %s)", e.Version, strings.Join(e.Supported, ", "))
}

func (e *UnsupportedVersionError) Is(target error) bool {
	return target == ErrUnsupportedVersion
}

// UnsupportedFeedError is returned when a version has no schema for a feed file.
type UnsupportedFeedError struct {
	Version string
	Feed    string
}

func (e *UnsupportedFeedError) Error() string {
	return fmt.Sprintf("GBFS version %s has no schema for feed %q", e.Version, e.Feed)
}

func (e *UnsupportedFeedError) Is(target error) bool {
	return target == ErrUnsupportedFeed
}

// SchemaLoadError is returned when a schema document cannot be read, parsed or compiled.
type SchemaLoadError struct {
	Version string
	Feed    string // Empty when the failure concerns the whole version
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Feed == "" {
		return fmt.Sprintf("loading schemas for GBFS version %s: %v", e.Version, e.Cause)
	}
	return fmt.Sprintf("loading schema %s for GBFS version %s: %v", e.Feed, e.Version, e.Cause)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (e *SchemaLoadError) Is(target error) bool {
	return target == ErrSchemaLoad
}
