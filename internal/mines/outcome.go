package mines

import (
	"fmt"
	"strconv"
)

type OutcomeKind int8

const (
	NoChange OutcomeKind = iota
	Cascaded
	Detonated
	Victory
)

func (k OutcomeKind) String() string {
	switch k {
	case NoChange:
		return "no_change"
	case Cascaded:
		return "cascaded"
	case Detonated:
		return "detonated"
	case Victory:
		return "won"
	default:
		return "OutcomeKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// [OutcomeKind] implements [encoding.TextMarshaler]
func (k OutcomeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// [OutcomeKind] implements [encoding.TextUnmarshaler]
func (k *OutcomeKind) UnmarshalText(text []byte) error {
	for _, v := range []OutcomeKind{NoChange, Cascaded, Detonated, Victory} {
		if v.String() == string(text) {
			*k = v
			return nil
		}
	}
	return fmt.Errorf("unknown OutcomeKind %q", text)
}

// Outcome lists the cells a reveal or chord changed so that a presentation
// layer can redraw only those.
//
//   - Cascaded: Revealed, plus Misflagged neighbours of a chord.
//   - Detonated: Exploded (empty on forfeit), Misflagged and every mine.
//   - Victory: Revealed and the mines AutoFlagged by the win.
type Outcome struct {
	Kind        OutcomeKind `json:"kind"`
	Revealed    []Point     `json:"revealed,omitempty"`
	Exploded    []Point     `json:"exploded,omitempty"`
	Misflagged  []Point     `json:"misflagged,omitempty"`
	Mines       []Point     `json:"mines,omitempty"`
	AutoFlagged []Point     `json:"auto_flagged,omitempty"`
}

func (o Outcome) Changed() bool {
	return o.Kind != NoChange
}

type ToggleOutcome struct {
	Changed bool      `json:"changed"`
	State   CellState `json:"state"`
}
