package core

// Finish is the paint finish. It has no effect on stats or price.
type Finish string

const (
	FinishMatte       Finish = "matte"
	FinishMetallic    Finish = "metallic"
	FinishPearlescent Finish = "pearlescent"
)

// AllFinishes returns every paint finish.
func AllFinishes() []Finish {
	return []Finish{FinishMatte, FinishMetallic, FinishPearlescent}
}

// IsValid reports whether f is a known finish.
func (f Finish) IsValid() bool {
	switch f {
	case FinishMatte, FinishMetallic, FinishPearlescent:
		return true
	}
	return false
}

func (f Finish) String() string {
	return string(f)
}

// Transmission is one of the three fixed gearbox tiers.
type Transmission string

const (
	TransmissionStreet Transmission = "street"
	TransmissionSport  Transmission = "sport"
	TransmissionRace   Transmission = "race"
)

// AllTransmissions returns the tiers from cheapest to most expensive.
func AllTransmissions() []Transmission {
	return []Transmission{TransmissionStreet, TransmissionSport, TransmissionRace}
}

// IsValid reports whether t is a known tier.
func (t Transmission) IsValid() bool {
	switch t {
	case TransmissionStreet, TransmissionSport, TransmissionRace:
		return true
	}
	return false
}

func (t Transmission) String() string {
	return string(t)
}

// WindowTint is visual only.
type WindowTint string

const (
	TintNone  WindowTint = "none"
	TintLight WindowTint = "light"
	TintDark  WindowTint = "dark"
	TintLimo  WindowTint = "limo"
)

// AllWindowTints returns every tint level from lightest to darkest.
func AllWindowTints() []WindowTint {
	return []WindowTint{TintNone, TintLight, TintDark, TintLimo}
}

// IsValid reports whether w is a known tint.
func (w WindowTint) IsValid() bool {
	switch w {
	case TintNone, TintLight, TintDark, TintLimo:
		return true
	}
	return false
}

func (w WindowTint) String() string {
	return string(w)
}

// Stock is the wheel and body-kit value meaning "no upgrade".
const Stock = "stock"

// MinEngineLevel and MaxEngineLevel bound Performance.EngineLevel.
const (
	MinEngineLevel = 1
	MaxEngineLevel = 4
)
