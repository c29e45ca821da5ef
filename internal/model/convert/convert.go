// Package convert maps between GORM records and core types.
package convert

import (
	"github.com/modgarage/customizer/internal/model"
	"github.com/modgarage/customizer/pkg/core"
	"gorm.io/datatypes"
)

// DesignToCore converts a stored record to a core.Design.
func DesignToCore(d model.Design) core.Design {
	created := d.CreatedAt
	updated := d.UpdatedAt
	out := core.Design{
		ID:            d.ID,
		Name:          d.Name,
		BaseModel:     d.BaseModel,
		Modifications: d.Modifications.Data(),
	}
	if !created.IsZero() {
		out.CreatedAt = &created
	}
	if !updated.IsZero() {
		out.UpdatedAt = &updated
	}
	return out.Clone()
}

// CoreToDesign converts a core.Design to a record. Seq is left for the database to assign.
func CoreToDesign(d core.Design) model.Design {
	out := model.Design{
		ID:            d.ID,
		Name:          d.Name,
		BaseModel:     d.BaseModel,
		Modifications: datatypes.NewJSONType(d.Clone().Modifications),
	}
	if d.CreatedAt != nil {
		out.CreatedAt = *d.CreatedAt
	}
	if d.UpdatedAt != nil {
		out.UpdatedAt = *d.UpdatedAt
	}
	return out
}
