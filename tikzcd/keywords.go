package tikzcd

import (
	"math"

	"github.com/yishn/tikzcd-editor/diagram"
)

const (
	defaultBend  = 30
	defaultShift = 1

	// loopSpread is half the angle between a loop's in and out tangents
	// when it is written back as text.
	loopSpread = 35
)

// clause is one arrow option: a keyword name, an optional value and an
// optional trailing tick.
type clause struct {
	name  string
	value *ArgValue
	alt   bool
	tok   Token
}

func (c clause) number(def int) int {
	if c.value == nil {
		return def
	}
	return c.value.Number
}

// arrowState accumulates the effect of an arrow's options.
type arrowState struct {
	style   diagram.Style
	loop    bool
	in, out *int
}

type clauseFunc func(s *arrowState, c clause)

// arrowKeywords is the option vocabulary of \arrow[...]. It must stay in
// sync with the reverse tables below, which ToTeX uses to write options back.
var arrowKeywords = map[string]clauseFunc{
	"harpoon": func(s *arrowState, c clause) {
		s.style.Head = diagram.HeadHarpoon
		if c.alt {
			s.style.Head = diagram.HeadHarpoonAlt
		}
	},
	"two heads": func(s *arrowState, c clause) { s.style.Head = diagram.HeadTwoHeads },
	"no head":   func(s *arrowState, c clause) { s.style.Head = diagram.HeadNone },
	"hook": func(s *arrowState, c clause) {
		s.style.Tail = diagram.TailHook
		if c.alt {
			s.style.Tail = diagram.TailHookAlt
		}
	},
	"maps to":    func(s *arrowState, c clause) { s.style.Tail = diagram.TailMapsTo },
	"tail":       func(s *arrowState, c clause) { s.style.Tail = diagram.TailTail },
	"Rightarrow": func(s *arrowState, c clause) { s.style.Line = diagram.LineDouble },
	"dashed":     func(s *arrowState, c clause) { s.style.Line = diagram.LineDashed },
	"dotted":     func(s *arrowState, c clause) { s.style.Line = diagram.LineDotted },
	"phantom": func(s *arrowState, c clause) {
		s.style.LabelPosition = diagram.LabelInside
		s.style.Tail = diagram.TailNone
		s.style.Line = diagram.LineNone
		s.style.Head = diagram.HeadNone
	},
	"bend left":  func(s *arrowState, c clause) { s.style.Bend = c.number(defaultBend) },
	"bend right": func(s *arrowState, c clause) { s.style.Bend = -c.number(defaultBend) },
	"shift left": func(s *arrowState, c clause) { s.style.Shift = -c.number(defaultShift) },
	"shift right": func(s *arrowState, c clause) {
		s.style.Shift = c.number(defaultShift)
	},
	"near start":      longitudinal(diagram.NearStart),
	"very near start": longitudinal(diagram.VeryNearStart),
	"near end":        longitudinal(diagram.NearEnd),
	"very near end":   longitudinal(diagram.VeryNearEnd),
	"loop":            func(s *arrowState, c clause) { s.loop = true },
	"in": func(s *arrowState, c clause) {
		if c.value != nil {
			s.in = &c.value.Number
		}
	},
	"out": func(s *arrowState, c clause) {
		if c.value != nil {
			s.out = &c.value.Number
		}
	},
}

func longitudinal(p diagram.LongitudinalPosition) clauseFunc {
	return func(s *arrowState, c clause) { s.style.LabelPositionLongitudinal = p }
}

var (
	headKeywords = map[diagram.Head]string{
		diagram.HeadNone:       "no head",
		diagram.HeadHarpoon:    "harpoon",
		diagram.HeadHarpoonAlt: "harpoon'",
		diagram.HeadTwoHeads:   "two heads",
	}
	lineKeywords = map[diagram.Line]string{
		diagram.LineDouble: "Rightarrow",
		diagram.LineDashed: "dashed",
		diagram.LineDotted: "dotted",
	}
	tailKeywords = map[diagram.Tail]string{
		diagram.TailHook:    "hook",
		diagram.TailHookAlt: "hook'",
		diagram.TailMapsTo:  "maps to",
		diagram.TailTail:    "tail",
	}
	longitudinalKeywords = map[diagram.LongitudinalPosition]string{
		diagram.NearStart:     "near start",
		diagram.VeryNearStart: "very near start",
		diagram.NearEnd:       "near end",
		diagram.VeryNearEnd:   "very near end",
	}
)

// loopFromAngles derives a loop from the in and out tangent angles of a
// tikzcd loop, in degrees. Loop angles are whole degrees: the mean of in and
// out is rounded half away from zero.
func loopFromAngles(in, out int) diagram.Loop {
	mid := int(math.Round(float64(in+out) / 2))
	return diagram.Loop{
		Angle:     ((mid+90)%360 + 360) % 360,
		Clockwise: ((out-in)%360+360)%360 < 180,
	}
}

// loopAngles is the inverse of loopFromAngles. Both angles are non-negative;
// they may exceed 360 so that their mean stays exact.
func loopAngles(l diagram.Loop) (in, out int) {
	mid := ((l.Angle-90)%360 + 360) % 360
	if l.Clockwise {
		in, out = mid-loopSpread, mid+loopSpread
	} else {
		in, out = mid+loopSpread, mid-loopSpread
	}
	if in < 0 || out < 0 {
		in += 360
		out += 360
	}
	return in, out
}
