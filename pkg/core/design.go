// pkg/core/design.go
package core

import "time"

// Design is a user's vehicle configuration.
// ID and the timestamps are assigned by the storage backend.
// Stats and price are never part of the record; they are recomputed on demand.
type Design struct {
	ID            string        `json:"id,omitempty" yaml:"id,omitempty"`
	Name          string        `json:"name" yaml:"name"`
	BaseModel     string        `json:"baseModel" yaml:"baseModel"`
	Modifications Modifications `json:"modifications" yaml:"modifications"`
	CreatedAt     *time.Time    `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	UpdatedAt     *time.Time    `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

// Modifications holds the three required groups applied on top of a base model.
type Modifications struct {
	Paint       Paint       `json:"paint" yaml:"paint"`
	Performance Performance `json:"performance" yaml:"performance"`
	Visual      Visual      `json:"visual" yaml:"visual"`
}

// Paint settings.
type Paint struct {
	Primary   string  `json:"primary" yaml:"primary"`
	Secondary *string `json:"secondary,omitempty" yaml:"secondary,omitempty"`
	Finish    Finish  `json:"finish" yaml:"finish"`
}

// Performance settings. EngineLevel is 1..4.
type Performance struct {
	EngineLevel    int          `json:"engineLevel" yaml:"engineLevel"`
	TurboInstalled bool         `json:"turboInstalled" yaml:"turboInstalled"`
	Transmission   Transmission `json:"transmission" yaml:"transmission"`
}

// Visual settings. Wheels and BodyKit are a catalog id or Stock.
type Visual struct {
	Wheels     string     `json:"wheels" yaml:"wheels"`
	WindowTint WindowTint `json:"windowTint" yaml:"windowTint"`
	BodyKit    string     `json:"bodyKit" yaml:"bodyKit"`
}

// Clone returns a deep copy of d. Pointer fields are duplicated.
func (d Design) Clone() Design {
	out := d
	if d.Modifications.Paint.Secondary != nil {
		s := *d.Modifications.Paint.Secondary
		out.Modifications.Paint.Secondary = &s
	}
	if d.CreatedAt != nil {
		t := *d.CreatedAt
		out.CreatedAt = &t
	}
	if d.UpdatedAt != nil {
		t := *d.UpdatedAt
		out.UpdatedAt = &t
	}
	return out
}

// Rating is the letter grade derived from a stats vector.
type Rating string

const (
	RatingS Rating = "S"
	RatingA Rating = "A"
	RatingB Rating = "B"
	RatingC Rating = "C"
	RatingD Rating = "D"
)

func (r Rating) String() string {
	return string(r)
}

// Valuation is the derived result for a design.
type Valuation struct {
	Stats  Stats  `json:"stats"`
	Price  int64  `json:"price"`
	Rating Rating `json:"rating"`
}
