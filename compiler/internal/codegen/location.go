package codegen

import "fmt"

// Segment says which register a Location is relative to.
type Segment int

const (
	FrameRelative Segment = iota
	GlobalRelative
)

// Location is a 4-byte storage slot: a variable, a parameter or a compiler temporary.
type Location struct {
	Segment Segment
	Offset  int
	Name    string
}

func (l *Location) String() string {
	if l == nil {
		return "<nil>"
	}
	return l.Name
}

// Base returns "fp" or "gp" with the signed offset, e.g. "fp-12".
func (l *Location) Base() string {
	reg := "fp"
	if l.Segment == GlobalRelative {
		reg = "gp"
	}
	return fmt.Sprintf("%s%+d", reg, l.Offset)
}

const (
	VarSize = 4

	OffsetToFirstLocal  = -8
	OffsetToFirstParam  = 4
	OffsetToFirstGlobal = 0
	// Offset 0 of an object holds its vtable pointer.
	OffsetToFirstMember = 4
	// The receiver of a method is its first parameter.
	OffsetToThis = OffsetToFirstParam
)

// ThisLocation is where a method finds its receiver.
var ThisLocation = &Location{Segment: FrameRelative, Offset: OffsetToThis, Name: "this"}
