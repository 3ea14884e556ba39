package tools

import (
	"github.com/usestring/gbfs-validator/internal/config"
	"github.com/usestring/gbfs-validator/internal/query"
	"github.com/usestring/gbfs-validator/internal/registry"
	"github.com/usestring/gbfs-validator/internal/validator"
)

// Deps contains all dependencies needed by tool handlers.
type Deps struct {
	Registry  *registry.Registry
	Validator *validator.Validator
	Query     *query.Engine
	Config    *config.Config
}
