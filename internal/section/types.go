package section

import (
	"errors"
	"fmt"
	"strings"
)

// Family identifies one of the standard cross-section shapes.
type Family int

const (
	FamilyUnknown Family = iota
	HWide                // wide flange H-beam
	HMedium              // medium flange H-beam
	HNarrow              // narrow flange H-beam
	IBeam
	LightH
	LippedLightH
	Channel
	LightChannel
	LippedChannel
	EqualAngle
	UnequalAngle
	SquareTube
	RectTube
	Pipe
	Rectangle
	Circle
	Estimated // circular fallback derived from the member area
)

var familyKeys = map[Family]string{
	HWide:         "h-wide",
	HMedium:       "h-medium",
	HNarrow:       "h-narrow",
	IBeam:         "i-beam",
	LightH:        "light-h",
	LippedLightH:  "lipped-light-h",
	Channel:       "channel",
	LightChannel:  "light-channel",
	LippedChannel: "lipped-channel",
	EqualAngle:    "equal-angle",
	UnequalAngle:  "unequal-angle",
	SquareTube:    "square-tube",
	RectTube:      "rect-tube",
	Pipe:          "pipe",
	Rectangle:     "rectangle",
	Circle:        "circle",
	Estimated:     "estimated",
}

// AllFamilies returns every known family in declaration order.
func AllFamilies() []Family {
	out := make([]Family, 0, len(familyKeys))
	for f := HWide; f <= Estimated; f++ {
		out = append(out, f)
	}
	return out
}

// ParseFamily maps a section-type key to its Family.
// Keys are case-insensitive and accept '_' in place of '-'.
func ParseFamily(key string) (Family, error) {
	k := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "_", "-")
	for f, name := range familyKeys {
		if name == k {
			return f, nil
		}
	}
	return FamilyUnknown, fmt.Errorf("unknown section family %q", key)
}

func (f Family) String() string {
	if name, ok := familyKeys[f]; ok {
		return name
	}
	return fmt.Sprintf("Family(%d)", int(f))
}

// MarshalText implements encoding.TextMarshaler.
func (f Family) MarshalText() ([]byte, error) {
	if _, ok := familyKeys[f]; !ok {
		return nil, fmt.Errorf("unknown section family %d", int(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Family) UnmarshalText(b []byte) error {
	v, err := ParseFamily(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// IsHollow reports whether profiles of this family carry a hole.
func (f Family) IsHollow() bool {
	return f == SquareTube || f == RectTube || f == Pipe
}

// Axis selects which principal axis of the section is aligned with the
// member's strong direction. It affects rendering rotation only.
type Axis string

const (
	AxisStrong Axis = "strong"
	AxisWeak   Axis = "weak"
	AxisBoth   Axis = "both"
)

// ParseAxis maps a string to an Axis. The empty string means strong.
func ParseAxis(s string) (Axis, error) {
	switch Axis(strings.ToLower(strings.TrimSpace(s))) {
	case "", AxisStrong:
		return AxisStrong, nil
	case AxisWeak:
		return AxisWeak, nil
	case AxisBoth:
		return AxisBoth, nil
	}
	return "", fmt.Errorf("unknown axis %q", s)
}

// Dims maps a dimension symbol (H, B, A, C, D, t, t1, t2, ...) to a
// length in millimeters.
type Dims map[string]float64

// Spec is the input to the profile builder. It is never modified.
type Spec struct {
	Family Family `json:"family" yaml:"family"`
	Dims   Dims   `json:"dims" yaml:"dims"`
	Axis   Axis   `json:"axis,omitempty" yaml:"axis,omitempty"`

	// Member axial area in m², consulted only by the estimated family.
	MemberArea float64 `json:"member_area,omitempty" yaml:"member_area,omitempty"`
}

// ErrInvalidDimension is wrapped by every DimensionError.
var ErrInvalidDimension = errors.New("missing or invalid dimension")

// DimensionError reports why a dimension record cannot describe a section.
type DimensionError struct {
	Family Family
	Symbol string
	Reason string
}

func (e *DimensionError) Error() string {
	if e.Symbol == "" {
		return fmt.Sprintf("%s: %s", e.Family, e.Reason)
	}
	return fmt.Sprintf("%s: dimension %s %s", e.Family, e.Symbol, e.Reason)
}

func (e *DimensionError) Unwrap() error {
	return ErrInvalidDimension
}
