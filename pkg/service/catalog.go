package service

import (
	"encoding/json"
)

// Table is a catalog table as delivered by the catalog backend. Everything
// besides Name and the column names is pass-through display data.
type Table struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	RowCount    int64    `json:"row_count,omitempty"`
	IsEnabled   *bool    `json:"is_enabled,omitempty"`
	Columns     []Column `json:"columns"`
}

// Enabled treats a missing is_enabled flag as enabled.
func (t Table) Enabled() bool {
	return t.IsEnabled == nil || *t.IsEnabled
}

// ColumnNames tolerates a missing column list.
func (t Table) ColumnNames() []string {
	if len(t.Columns) == 0 {
		return nil
	}

	names := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		names = append(names, c.Name)
	}

	return names
}

type Column struct {
	ID           string          `json:"id,omitempty"`
	Name         string          `json:"name"`
	DataType     string          `json:"data_type,omitempty"`
	Description  string          `json:"description,omitempty"`
	SampleValues json.RawMessage `json:"sample_values,omitempty"`
	FullContext  string          `json:"full_context,omitempty"`
	ValueRange   json.RawMessage `json:"value_range,omitempty"`
}
