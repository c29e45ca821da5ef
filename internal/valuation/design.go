package valuation

import (
	"fmt"
	"strings"

	"github.com/modgarage/customizer/internal/catalog"
	"github.com/modgarage/customizer/pkg/core"
)

// DefaultModel is the base model used when none is given.
const DefaultModel = "adder"

// DefaultDesign returns an unmodified design on the given base model.
// An empty baseModel selects DefaultModel. The model is not checked against the catalog.
func DefaultDesign(baseModel string) core.Design {
	if baseModel == "" {
		baseModel = DefaultModel
	}
	secondary := "#000000"
	return core.Design{
		Name:      "Untitled Vehicle",
		BaseModel: baseModel,
		Modifications: core.Modifications{
			Paint: core.Paint{
				Primary:   "#FF0000",
				Secondary: &secondary,
				Finish:    core.FinishMetallic,
			},
			Performance: core.Performance{
				EngineLevel:    1,
				TurboInstalled: false,
				Transmission:   core.TransmissionStreet,
			},
			Visual: core.Visual{
				Wheels:     core.Stock,
				WindowTint: core.TintNone,
				BodyKit:    core.Stock,
			},
		},
	}
}

// Validate checks every field of a design against the catalog and the enums.
// It returns ErrModelNotFound for an unknown base model and ErrInvalidDesign otherwise.
func Validate(d core.Design) error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("name is required: %w", ErrInvalidDesign)
	}
	if _, ok := catalog.Model(d.BaseModel); !ok {
		return fmt.Errorf("vehicle model %s: %w", d.BaseModel, ErrModelNotFound)
	}

	mods := d.Modifications
	if mods.Paint.Primary == "" {
		return fmt.Errorf("primary paint color is required: %w", ErrInvalidDesign)
	}
	if !mods.Paint.Finish.IsValid() {
		return fmt.Errorf("paint finish %q: %w", mods.Paint.Finish, ErrInvalidDesign)
	}
	if err := validatePerformance(mods.Performance); err != nil {
		return err
	}
	if !mods.Visual.WindowTint.IsValid() {
		return fmt.Errorf("window tint %q: %w", mods.Visual.WindowTint, ErrInvalidDesign)
	}
	if w := mods.Visual.Wheels; w != core.Stock {
		if _, ok := catalog.Wheel(w); !ok {
			return fmt.Errorf("wheels %q: %w", w, ErrInvalidDesign)
		}
	}
	if k := mods.Visual.BodyKit; k != core.Stock {
		if _, ok := catalog.BodyKit(k); !ok {
			return fmt.Errorf("body kit %q: %w", k, ErrInvalidDesign)
		}
	}
	return nil
}
