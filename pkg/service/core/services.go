package core

import (
	"github.com/talkdata/erd-backend/pkg/config"
	"github.com/talkdata/erd-backend/pkg/layout"
	"github.com/talkdata/erd-backend/pkg/service"
)

type Services struct {
	DiagramService service.DiagramService
}

func NewServices(cfg config.Config, catalogAPI service.CatalogAPI, metrics *Metrics) *Services {
	return &Services{
		DiagramService: NewDiagramService(catalogAPI, layoutConfig(cfg.Layout), metrics),
	}
}

// layoutConfig maps the config section onto the engine config; unset values
// keep the engine defaults.
func layoutConfig(l config.Layout) layout.Config {
	cfg := layout.DefaultConfig()

	if l.Direction != "" {
		cfg.Direction = layout.Direction(l.Direction)
	}

	if l.NodeSep > 0 {
		cfg.NodeSep = l.NodeSep
	}

	if l.RankSep > 0 {
		cfg.RankSep = l.RankSep
	}

	return cfg
}
