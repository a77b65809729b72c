package input

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var keyAliases = map[string]string{
	"esc":    Escape,
	"escape": Escape,
	"left":   ArrowLeft,
	"right":  ArrowRight,
	"up":     ArrowUp,
	"down":   ArrowDown,
	"comma":  ",",
}

// ParseKey normalizes a key name: a single character, or one of esc, left,
// right, up, down, comma.
func ParseKey(s string) (string, error) {
	if k, ok := keyAliases[strings.ToLower(s)]; ok {
		return k, nil
	}
	if len(s) == 1 {
		return s, nil
	}
	return "", errors.Errorf("unknown key %q", s)
}

// ParseScript reads a whitespace separated list of events. Besides key
// names it accepts drag:DX,DY, pan:DX,DY and zoom:N.
//
//	1 2 right up up t drag:40,-10 esc
func ParseScript(s string) ([]Event, error) {
	var out []Event
	for _, tok := range strings.Fields(s) {
		name, arg, hasArg := strings.Cut(tok, ":")
		if !hasArg || len(tok) == 1 {
			k, err := ParseKey(tok)
			if err != nil {
				return nil, err
			}
			out = append(out, Key(k))
			continue
		}
		name = strings.ToLower(name)
		switch name {
		case "drag", "pan":
			dx, dy, err := parsePair(arg)
			if err != nil {
				return nil, errors.Wrapf(err, "token %q", tok)
			}
			ev := Drag(dx, dy)
			if name == "pan" {
				ev.Button = ButtonMiddle
			}
			out = append(out, ev)
		case "zoom":
			v, err := ParseFinite(arg)
			if err != nil {
				return nil, errors.Wrapf(err, "token %q", tok)
			}
			out = append(out, Event{Kind: Scroll, DY: v})
		default:
			return nil, errors.Errorf("unknown token %q", tok)
		}
	}
	return out, nil
}

func parsePair(s string) (float64, float64, error) {
	a, b, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, errors.Errorf("want X,Y, got %q", s)
	}
	x, err := ParseFinite(a)
	if err != nil {
		return 0, 0, err
	}
	y, err := ParseFinite(b)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

// ParseFinite parses a float, rejecting NaN and infinities.
func ParseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.Errorf("not a finite number: %q", s)
	}
	return v, nil
}
