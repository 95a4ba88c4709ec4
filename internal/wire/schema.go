// Package wire translates between the backend's snake_case JSON entities and
// the internal domain model.
package wire

import "github.com/alexanderramin/estimo/internal/domain"

// Row is a row as exchanged with the backend. Pointer fields distinguish a
// missing or null value from an explicit zero.
type Row struct {
	ID          *domain.ID `json:"id,omitempty"`
	Feature     *string    `json:"feature"`
	Assumptions *string    `json:"assumptions"`
	DesignMin   *float64   `json:"design_min"`
	DesignMost  *float64   `json:"design_most"`
	DesignMax   *float64   `json:"design_max"`
	BEMin       *float64   `json:"be_min"`
	BEMost      *float64   `json:"be_most"`
	BEMax       *float64   `json:"be_max"`
	FEMin       *float64   `json:"fe_min"`
	FEMost      *float64   `json:"fe_most"`
	FEMax       *float64   `json:"fe_max"`
	SortOrder   *int       `json:"sort_order"`
}

// Group is a group as exchanged with the backend.
type Group struct {
	ID        *domain.ID `json:"id,omitempty"`
	Name      *string    `json:"name"`
	SortOrder *int       `json:"sort_order"`
	Rows      []Row      `json:"rows"`
}

// Estimate is an estimate as exchanged with the backend.
type Estimate struct {
	ID        *domain.ID `json:"id,omitempty"`
	Name      *string    `json:"name"`
	CreatedAt *string    `json:"created_at,omitempty"`
	UpdatedAt *string    `json:"updated_at,omitempty"`
	Groups    []Group    `json:"groups"`
}

// Template is a template as exchanged with the backend. Data holds group
// content; the backend does not keep identities for it.
type Template struct {
	ID        *domain.ID `json:"id,omitempty"`
	Name      *string    `json:"name"`
	Data      []Group    `json:"data"`
	CreatedAt *string    `json:"created_at,omitempty"`
	UpdatedAt *string    `json:"updated_at,omitempty"`
}

// CreateEstimateRequest is the body of POST /estimates.
type CreateEstimateRequest struct {
	Name string `json:"name"`
}

// SaveEstimateRequest is the body of PUT /estimates/{id}.
type SaveEstimateRequest struct {
	Name   string  `json:"name"`
	Groups []Group `json:"groups"`
}

// TemplateRequest is the body of POST /templates and PUT /templates/{id}.
type TemplateRequest struct {
	Name string  `json:"name"`
	Data []Group `json:"data"`
}

// ApplyTemplateRequest is the body of POST /templates/{id}/apply.
type ApplyTemplateRequest struct {
	Name string `json:"name"`
}
