package api

import (
	"github.com/JaimeStill/ecopoint/internal/config"
	"github.com/JaimeStill/ecopoint/internal/geography"
	"github.com/JaimeStill/ecopoint/internal/items"
	"github.com/JaimeStill/ecopoint/internal/points"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Items     items.System
	Points    points.System
	Geography geography.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(cfg *config.Config, runtime *Runtime) *Domain {
	return &Domain{
		Items: items.New(
			runtime.Database.Connection(),
			runtime.Logger,
			runtime.UploadsURL,
		),
		Points: points.New(
			runtime.Database.Connection(),
			runtime.Storage,
			runtime.Logger,
			runtime.Pagination,
			runtime.UploadsURL,
		),
		Geography: geography.New(&cfg.Geography, runtime.Logger),
	}
}
