package dispatcher

import "github.com/modgarage/customizer/pkg/core"

// Design lifecycle commands. Each carries a DesignEvent payload.
const (
	CmdDesignCreated  = ":DESIGN:CREATED:"
	CmdDesignUpdated  = ":DESIGN:UPDATED:"
	CmdDesignDeleted  = ":DESIGN:DELETED:"
	CmdDesignValuated = ":DESIGN:VALUATED:"
)

// DesignEvent is the payload of the design commands.
// Deletions carry only Design.ID. Valuation is nil when it was not computed.
type DesignEvent struct {
	Design    core.Design
	Valuation *core.Valuation
}

// DesignEventFrom extracts the DesignEvent payload of e.
func DesignEventFrom(e Event) (DesignEvent, bool) {
	switch p := e.Payload.(type) {
	case DesignEvent:
		return p, true
	case *DesignEvent:
		if p == nil {
			return DesignEvent{}, false
		}
		return *p, true
	}
	return DesignEvent{}, false
}
