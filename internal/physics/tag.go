package physics

import "strconv"

// EncodeTag names a block body by its linear grid index row*cols+col.
func EncodeTag(row, col, cols int) string {
	return strconv.Itoa(row*cols + col)
}

// DecodeTag recovers the grid coordinate from a block tag. Names that are
// not canonical non-negative integers are not block tags.
func DecodeTag(tag string, cols int) (row, col int, ok bool) {
	if cols <= 0 {
		return 0, 0, false
	}
	n, err := strconv.Atoi(tag)
	if err != nil || n < 0 || strconv.Itoa(n) != tag {
		return 0, 0, false
	}
	return n / cols, n % cols, true
}

// ContactKind classifies the far side of a contact.
type ContactKind uint8

const (
	ContactOther ContactKind = iota
	ContactBlock
	ContactFoundation
	ContactSurface
	ContactBottom
)

// String returns the kind name.
func (k ContactKind) String() string {
	switch k {
	case ContactBlock:
		return "block"
	case ContactFoundation:
		return "foundation"
	case ContactSurface:
		return "surface"
	case ContactBottom:
		return "bottom"
	default:
		return "other"
	}
}

// Classifier maps body names back to scene roles.
type Classifier struct {
	Foundation string
	Surface    string
	Bottom     string
	Cols       int
}

// Classify returns the role of a body name.
func (c Classifier) Classify(node string) ContactKind {
	switch node {
	case "":
		return ContactOther
	case c.Foundation:
		return ContactFoundation
	case c.Surface:
		return ContactSurface
	case c.Bottom:
		return ContactBottom
	}
	if _, _, ok := DecodeTag(node, c.Cols); ok {
		return ContactBlock
	}
	return ContactOther
}
