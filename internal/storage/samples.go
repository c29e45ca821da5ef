package storage

import (
	"time"

	"github.com/modgarage/customizer/pkg/core"
)

// SampleDesigns returns the showroom designs a fresh store starts with.
func SampleDesigns() []core.Design {
	fireCreated := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	iceCreated := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	fireSecondary := "#000000"
	iceSecondary := "#FFFFFF"

	return []core.Design{
		{
			ID:        "sample-1",
			Name:      "Fire Dragon",
			BaseModel: "adder",
			Modifications: core.Modifications{
				Paint: core.Paint{Primary: "#FF0000", Secondary: &fireSecondary, Finish: core.FinishMetallic},
				Performance: core.Performance{
					EngineLevel:    4,
					TurboInstalled: true,
					Transmission:   core.TransmissionRace,
				},
				Visual: core.Visual{Wheels: "high_end", WindowTint: core.TintDark, BodyKit: "carbon"},
			},
			CreatedAt: &fireCreated,
			UpdatedAt: timePtr(fireCreated),
		},
		{
			ID:        "sample-2",
			Name:      "Ice Storm",
			BaseModel: "zentorno",
			Modifications: core.Modifications{
				Paint: core.Paint{Primary: "#00FFFF", Secondary: &iceSecondary, Finish: core.FinishPearlescent},
				Performance: core.Performance{
					EngineLevel:    3,
					TurboInstalled: true,
					Transmission:   core.TransmissionSport,
				},
				Visual: core.Visual{Wheels: "tuner", WindowTint: core.TintLight, BodyKit: "sport"},
			},
			CreatedAt: &iceCreated,
			UpdatedAt: timePtr(iceCreated),
		},
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}
