// Package model holds the GORM table definitions.
package model

import (
	"time"

	"github.com/modgarage/customizer/pkg/core"
	"gorm.io/datatypes"
)

// DatabaseModels lists every table migrated by the gorm backends.
var DatabaseModels = []any{
	&Design{},
}

// Design is the persisted form of core.Design.
// Seq preserves insertion order; ID is the public identifier.
type Design struct {
	Seq           uint                                   `gorm:"primaryKey;autoIncrement"`
	ID            string                                 `gorm:"size:36;uniqueIndex;not null"`
	Name          string                                 `gorm:"size:255;not null"`
	BaseModel     string                                 `gorm:"size:64;index"`
	Modifications datatypes.JSONType[core.Modifications] `gorm:"not null"`
	CreatedAt     time.Time                              `gorm:"autoCreateTime:false"`
	UpdatedAt     time.Time                              `gorm:"autoUpdateTime:false"`
}

func (*Design) TableName() string {
	return "designs"
}
