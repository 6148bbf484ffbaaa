package gap

import "fmt"

// Position of an average relative to the recommended range.
type Position int

const (
	Below Position = iota
	Within
	Above
)

var positionLabels = map[Position]string{
	Below:  "below",
	Within: "within",
	Above:  "above",
}

func (p Position) String() string {
	if res, ok := positionLabels[p]; ok {
		return res
	}
	return fmt.Sprintf("Position(%d)", int(p))
}

// MarshalText implements encoding.TextMarshaler.
func (p Position) MarshalText() ([]byte, error) {
	if _, ok := positionLabels[p]; !ok {
		return nil, fmt.Errorf("unknown position %d", int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Position) UnmarshalText(text []byte) error {
	for k, v := range positionLabels {
		if v == string(text) {
			*p = k
			return nil
		}
	}
	return fmt.Errorf("unknown position %q", string(text))
}
