package tools

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/usestring/gbfs-validator/internal/config"
	"github.com/usestring/gbfs-validator/internal/query"
	"github.com/usestring/gbfs-validator/internal/registry"
	"github.com/usestring/gbfs-validator/internal/validator"
)

func newTestDeps(t *testing.T) *Deps {
	t.Helper()
	reg, err := registry.NewEmbedded(0)
	require.NoError(t, err)

	q := query.NewEngine()
	return &Deps{
		Registry:  reg,
		Validator: validator.New(reg, validator.WithQueryEngine(q)),
		Query:     q,
		Config: &config.Config{
			MaxDocumentBytes: config.DefaultMaxDocumentBytes,
			FilterMaxResults: config.DefaultFilterMaxResults,
		},
	}
}
