// Package validator validates GBFS feed files against the schemas of a
// GBFS version and reports every conformance violation.
package validator

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/usestring/gbfs-validator/internal/metrics"
	"github.com/usestring/gbfs-validator/internal/query"
	"github.com/usestring/gbfs-validator/internal/registry"
	"github.com/usestring/gbfs-validator/internal/schema"
	"github.com/usestring/gbfs-validator/pkg/types"
)

// DefaultMaxDocumentBytes bounds the size of a document read by ValidateFile.
const DefaultMaxDocumentBytes int64 = 50 << 20

// Metric labels for rejected calls. Caller-supplied names are only used as
// labels once they resolve, which bounds the number of series.
const (
	unresolvedVersion = "unresolved"
	unsupportedFeed   = "unsupported"
)

// Validator validates feed files of any supported GBFS version.
// It is safe for concurrent use.
type Validator struct {
	registry         *registry.Registry
	query            *query.Engine
	maxDocumentBytes int64
	logger           *slog.Logger
}

// Option configures a Validator.
type Option func(*Validator)

// WithMaxDocumentBytes caps the number of bytes read from a document.
// Values <= 0 keep the default.
func WithMaxDocumentBytes(n int64) Option {
	return func(v *Validator) {
		if n > 0 {
			v.maxDocumentBytes = n
		}
	}
}

// WithLogger sets the logger used for per-call records.
func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) {
		if l != nil {
			v.logger = l
		}
	}
}

// WithQueryEngine sets the jq engine used for version detection.
func WithQueryEngine(q *query.Engine) Option {
	return func(v *Validator) {
		if q != nil {
			v.query = q
		}
	}
}

// New creates a validator resolving schemas through reg.
func New(reg *registry.Registry, opts ...Option) *Validator {
	v := &Validator{
		registry:         reg,
		query:            query.NewEngine(),
		maxDocumentBytes: DefaultMaxDocumentBytes,
		logger:           slog.Default(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Registry returns the schema registry backing v.
func (v *Validator) Registry() *registry.Registry {
	return v.registry
}

// ValidateFile validates one feed file of the given version.
//
// Conformance violations are reported in the result, never as an error.
// The error is non-nil only when the version or feed is not supported, the
// schemas cannot be loaded, or the document is not JSON.
func (v *Validator) ValidateFile(version, feed string, document io.Reader) (types.FileValidationResult, error) {
	fv, err := v.FileValidator(version)
	if err != nil {
		metrics.ObserveValidation(unresolvedVersion, unsupportedFeed, metrics.OutcomeFailed, 0, 0)
		return types.FileValidationResult{}, err
	}
	return fv.ValidateFile(feed, document)
}

// FileValidator returns a validator bound to one version.
func (v *Validator) FileValidator(version string) (*FileValidator, error) {
	compiled, err := v.registry.Resolve(version)
	if err != nil {
		return nil, err
	}
	return &FileValidator{
		compiled: compiled,
		parent:   v,
	}, nil
}

// FileValidator validates feed files against the schemas of one version.
type FileValidator struct {
	compiled *registry.CompiledVersion
	parent   *Validator
}

// Version returns the canonical version this validator is bound to.
func (fv *FileValidator) Version() string {
	return fv.compiled.Version
}

// Feeds lists the feed files this validator knows.
func (fv *FileValidator) Feeds() []string {
	return fv.compiled.Feeds()
}

// ValidateFile validates document as the named feed file.
func (fv *FileValidator) ValidateFile(feed string, document io.Reader) (types.FileValidationResult, error) {
	start := time.Now()
	id := uuid.NewString()
	logger := fv.parent.logger.With(
		slog.String("validation_id", id),
		slog.String("version", fv.compiled.Version),
		slog.String("feed", feed),
	)

	sch, err := fv.compiled.Feed(feed)
	if err != nil {
		elapsed := time.Since(start)
		metrics.ObserveValidation(fv.compiled.Version, unsupportedFeed, metrics.OutcomeFailed, 0, elapsed)
		logger.Debug("validation failed", slog.String("error", err.Error()), slog.Duration("duration", elapsed))
		return types.FileValidationResult{}, err
	}

	result, err := fv.validate(sch, document)
	elapsed := time.Since(start)
	if err != nil {
		metrics.ObserveValidation(fv.compiled.Version, feed, metrics.OutcomeFailed, 0, elapsed)
		logger.Debug("validation failed", slog.String("error", err.Error()), slog.Duration("duration", elapsed))
		return types.FileValidationResult{}, err
	}

	outcome := metrics.OutcomeValid
	if !result.Valid() {
		outcome = metrics.OutcomeInvalid
	}
	metrics.ObserveValidation(fv.compiled.Version, feed, outcome, result.ErrorsCount, elapsed)
	logger.Debug("validated feed file",
		slog.Int("errors", result.ErrorsCount),
		slog.Duration("duration", elapsed),
	)
	return result, nil
}

func (fv *FileValidator) validate(sch *jsonschema.Schema, document io.Reader) (types.FileValidationResult, error) {
	data, err := readLimited(document, fv.parent.maxDocumentBytes)
	if err != nil {
		return types.FileValidationResult{}, err
	}

	doc, err := schema.DecodeDocument(bytes.NewReader(data))
	if err != nil {
		return types.FileValidationResult{}, err
	}

	return types.NewFileValidationResult(fv.MapToValidationErrors(schema.Validate(sch, doc))), nil
}

// MapToValidationErrors flattens a violation tree into the ordered list of
// atomic validation errors. A nil tree maps to an empty list.
func (fv *FileValidator) MapToValidationErrors(v *schema.Violation) []types.FileValidationError {
	return schema.Flatten(v)
}

func readLimited(r io.Reader, limit int64) ([]byte, error) {
	if r == nil {
		return nil, &schema.DocumentDecodeError{Cause: fmt.Errorf("no document")}
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, &schema.DocumentDecodeError{Cause: fmt.Errorf("reading document: %w", err)}
	}
	if int64(len(data)) > limit {
		return nil, &schema.DocumentDecodeError{Cause: fmt.Errorf("document exceeds %d bytes", limit)}
	}
	return data, nil
}
