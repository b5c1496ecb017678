package core

// Color is the color of a ball. The zero value is not a valid color.
type Color uint8

const (
	Red Color = iota + 1
	Green
	Blue
)

// Valid reports whether c is one of the three ball colors.
func (c Color) Valid() bool {
	return c == Red || c == Green || c == Blue
}

// Char returns the single-letter tag of the color.
func (c Color) Char() rune {
	switch c {
	case Red:
		return 'R'
	case Green:
		return 'G'
	case Blue:
		return 'B'
	default:
		return '?'
	}
}

// String returns the single-letter tag of the color.
func (c Color) String() string {
	return string(c.Char())
}

// Name returns the lowercase color name.
func (c Color) Name() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	default:
		return "unknown"
	}
}

// ParseColor converts a color tag to a Color.
// Only the uppercase tags R, G and B are accepted.
func ParseColor(tag rune) (Color, error) {
	switch tag {
	case 'R':
		return Red, nil
	case 'G':
		return Green, nil
	case 'B':
		return Blue, nil
	default:
		return 0, &UnknownColorError{Tag: string(tag)}
	}
}

// AllColors returns every ball color in tag order.
func AllColors() []Color {
	return []Color{Red, Green, Blue}
}

// MarshalText encodes the color as its single-letter tag.
func (c Color) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, &UnknownColorError{Tag: c.String()}
	}
	return []byte(c.String()), nil
}

// UnmarshalText decodes a single-letter color tag.
func (c *Color) UnmarshalText(text []byte) error {
	r := []rune(string(text))
	if len(r) != 1 {
		return &UnknownColorError{Tag: string(text)}
	}
	parsed, err := ParseColor(r[0])
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
