package handlers

import (
	"github.com/talkdata/erd-backend/pkg/service/core"
)

type Handlers struct {
	DiagramHandler *DiagramHandler
}

func NewHandlers(s *core.Services) *Handlers {
	return &Handlers{
		DiagramHandler: NewDiagramHandler(s.DiagramService),
	}
}
