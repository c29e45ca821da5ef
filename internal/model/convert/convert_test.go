package convert

import (
	"testing"
	"time"

	"github.com/modgarage/customizer/internal/model"
	"github.com/modgarage/customizer/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func sampleDesign() core.Design {
	secondary := "#FFFFFF"
	created := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	return core.Design{
		ID:        "sample-2",
		Name:      "Ice Storm",
		BaseModel: "zentorno",
		Modifications: core.Modifications{
			Paint:       core.Paint{Primary: "#00FFFF", Secondary: &secondary, Finish: core.FinishPearlescent},
			Performance: core.Performance{EngineLevel: 3, TurboInstalled: true, Transmission: core.TransmissionSport},
			Visual:      core.Visual{Wheels: "tuner", WindowTint: core.TintLight, BodyKit: "sport"},
		},
		CreatedAt: &created,
		UpdatedAt: &created,
	}
}

func TestCoreToDesign(t *testing.T) {
	d := sampleDesign()
	rec := CoreToDesign(d)

	assert.Zero(t, rec.Seq)
	assert.Equal(t, "sample-2", rec.ID)
	assert.Equal(t, "Ice Storm", rec.Name)
	assert.Equal(t, "zentorno", rec.BaseModel)
	assert.Equal(t, d.Modifications, rec.Modifications.Data())
	assert.True(t, rec.CreatedAt.Equal(*d.CreatedAt))

	// The record must not alias the caller's pointers.
	*d.Modifications.Paint.Secondary = "#000000"
	assert.Equal(t, "#FFFFFF", *rec.Modifications.Data().Paint.Secondary)
}

func TestCoreToDesign_NoTimestamps(t *testing.T) {
	d := sampleDesign()
	d.CreatedAt = nil
	d.UpdatedAt = nil

	rec := CoreToDesign(d)
	assert.True(t, rec.CreatedAt.IsZero())
	assert.True(t, rec.UpdatedAt.IsZero())
}

func TestDesignToCore(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rec := model.Design{
		Seq:       7,
		ID:        "sample-1",
		Name:      "Fire Dragon",
		BaseModel: "adder",
		Modifications: datatypes.NewJSONType(core.Modifications{
			Paint:       core.Paint{Primary: "#FF0000", Finish: core.FinishMetallic},
			Performance: core.Performance{EngineLevel: 4, TurboInstalled: true, Transmission: core.TransmissionRace},
			Visual:      core.Visual{Wheels: "high_end", WindowTint: core.TintDark, BodyKit: "carbon"},
		}),
		CreatedAt: created,
	}

	d := DesignToCore(rec)
	assert.Equal(t, "sample-1", d.ID)
	assert.Equal(t, "Fire Dragon", d.Name)
	assert.Equal(t, 4, d.Modifications.Performance.EngineLevel)
	assert.Nil(t, d.Modifications.Paint.Secondary)
	require.NotNil(t, d.CreatedAt)
	assert.True(t, d.CreatedAt.Equal(created))
	assert.Nil(t, d.UpdatedAt)
}

func TestRoundTrip(t *testing.T) {
	d := sampleDesign()
	assert.Equal(t, d, DesignToCore(CoreToDesign(d)))
}
