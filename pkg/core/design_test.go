package core

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDesign_JSONOmitsUnsetOptionalFields(t *testing.T) {
	d := Design{
		Name:      "Plain",
		BaseModel: "adder",
		Modifications: Modifications{
			Paint:       Paint{Primary: "#FF0000", Finish: FinishMatte},
			Performance: Performance{EngineLevel: 1, Transmission: TransmissionStreet},
			Visual:      Visual{Wheels: Stock, WindowTint: TintNone, BodyKit: Stock},
		},
	}

	data, err := json.Marshal(d)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.NotContains(t, raw, "id")
	assert.NotContains(t, raw, "createdAt")
	assert.NotContains(t, raw, "updatedAt")

	paint := raw["modifications"].(map[string]any)["paint"].(map[string]any)
	assert.NotContains(t, paint, "secondary")
	assert.Equal(t, "matte", paint["finish"])
}

func TestDesign_DecodeWireFormat(t *testing.T) {
	body := `{
		"id": "sample-2",
		"name": "Ice Storm",
		"baseModel": "zentorno",
		"modifications": {
			"paint": {"primary": "#00FFFF", "secondary": "#FFFFFF", "finish": "pearlescent"},
			"performance": {"engineLevel": 3, "turboInstalled": true, "transmission": "sport"},
			"visual": {"wheels": "tuner", "windowTint": "light", "bodyKit": "sport"}
		},
		"createdAt": "2024-01-02T00:00:00Z"
	}`

	var d Design
	require.NoError(t, json.Unmarshal([]byte(body), &d))

	assert.Equal(t, "sample-2", d.ID)
	assert.Equal(t, "zentorno", d.BaseModel)
	require.NotNil(t, d.Modifications.Paint.Secondary)
	assert.Equal(t, "#FFFFFF", *d.Modifications.Paint.Secondary)
	assert.Equal(t, FinishPearlescent, d.Modifications.Paint.Finish)
	assert.Equal(t, Performance{EngineLevel: 3, TurboInstalled: true, Transmission: TransmissionSport}, d.Modifications.Performance)
	assert.Equal(t, TintLight, d.Modifications.Visual.WindowTint)
	require.NotNil(t, d.CreatedAt)
	assert.True(t, d.CreatedAt.Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)))
	assert.Nil(t, d.UpdatedAt)
}

func TestDesign_Clone(t *testing.T) {
	secondary := "#000000"
	now := time.Now()
	d := Design{
		ID:            "x",
		Modifications: Modifications{Paint: Paint{Primary: "#FF0000", Secondary: &secondary}},
		CreatedAt:     &now,
	}

	c := d.Clone()
	assert.Equal(t, d, c)

	*c.Modifications.Paint.Secondary = "#FFFFFF"
	*c.CreatedAt = now.Add(time.Hour)
	assert.Equal(t, "#000000", *d.Modifications.Paint.Secondary)
	assert.True(t, d.CreatedAt.Equal(now))
}

func TestEnums(t *testing.T) {
	assert.True(t, FinishMetallic.IsValid())
	assert.False(t, Finish("chrome").IsValid())
	assert.True(t, TransmissionRace.IsValid())
	assert.False(t, Transmission("").IsValid())
	assert.True(t, TintLimo.IsValid())
	assert.False(t, WindowTint("mirror").IsValid())
	assert.True(t, CategorySuper.IsValid())
	assert.False(t, Category("truck").IsValid())

	assert.Len(t, AllFinishes(), 3)
	assert.Len(t, AllTransmissions(), 3)
	assert.Len(t, AllWindowTints(), 4)
	assert.Equal(t, "S", RatingS.String())
}
