package catalog

import (
	"context"

	"github.com/talkdata/erd-backend/pkg/service"
)

var _ service.CatalogAPI = &Static{}

// Static serves a fixed table list, for tests and local development without
// a catalog backend.
type Static struct {
	Tables []service.Table
}

func NewStatic(tables []service.Table) *Static {
	return &Static{
		Tables: tables,
	}
}

func (s *Static) GetTables(_ context.Context) ([]service.Table, error) {
	return s.Tables, nil
}
