package codegen

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// InstrKind tells which Emitter operation produced an Instr.
type InstrKind int

const (
	OpLoadConstant InstrKind = iota
	OpLoadStringConstant
	OpLoadLabel
	OpAssign
	OpLoad
	OpStore
	OpBinary
	OpBuiltInCall
	OpPushParam
	OpPopParams
	OpLCall
	OpACall
	OpLabel
	OpIfZ
	OpGoto
	OpReturn
	OpBeginFunc
	OpEndFunc
	OpRuntimeError
	OpGlobalTable
	OpVTable
)

// Instr is one recorded operation. Only the fields its Kind uses are set.
type Instr struct {
	Kind    InstrKind
	Dst     *Location
	Src     *Location
	Ref     *Location
	A, B    *Location
	Args    []*Location
	Op      OpCode
	BuiltIn BuiltIn
	Error   RuntimeErrorKind
	Value   int
	Offset  int
	Str     string
	Label   string
	Labels  []string
	// FrameSize is set on BeginFunc once the function body is done.
	FrameSize int
}

func (i *Instr) SetFrameSize(bytes int) { i.FrameSize = bytes }

func offsetRef(ref *Location, offset int) string {
	if offset == 0 {
		return "*(" + ref.String() + ")"
	}
	return fmt.Sprintf("*(%s %+d)", ref, offset)
}

func (i *Instr) String() string {
	switch i.Kind {
	case OpLoadConstant:
		return fmt.Sprintf("%s = %d", i.Dst, i.Value)
	case OpLoadStringConstant:
		return fmt.Sprintf("%s = %q", i.Dst, i.Str)
	case OpLoadLabel:
		return fmt.Sprintf("%s = %s", i.Dst, i.Label)
	case OpAssign:
		return fmt.Sprintf("%s = %s", i.Dst, i.Src)
	case OpLoad:
		return fmt.Sprintf("%s = %s", i.Dst, offsetRef(i.Ref, i.Offset))
	case OpStore:
		return fmt.Sprintf("%s = %s", offsetRef(i.Ref, i.Offset), i.Src)
	case OpBinary:
		return fmt.Sprintf("%s = %s %s %s", i.Dst, i.A, i.Op, i.B)
	case OpBuiltInCall:
		return call(i.Dst, "LCall "+i.BuiltIn.String(), i.Args...)
	case OpPushParam:
		return "PushParam " + i.Src.String()
	case OpPopParams:
		return fmt.Sprintf("PopParams %d", i.Value)
	case OpLCall:
		return call(i.Dst, "LCall "+i.Label)
	case OpACall:
		return call(i.Dst, "ACall "+i.Src.String())
	case OpLabel:
		return i.Label + ":"
	case OpIfZ:
		return fmt.Sprintf("IfZ %s Goto %s", i.Src, i.Label)
	case OpGoto:
		return "Goto " + i.Label
	case OpReturn:
		if i.Src == nil {
			return "Return"
		}
		return "Return " + i.Src.String()
	case OpBeginFunc:
		return fmt.Sprintf("BeginFunc %d", i.FrameSize)
	case OpEndFunc:
		return "EndFunc"
	case OpRuntimeError:
		return fmt.Sprintf("RuntimeError %q", i.Error)
	case OpGlobalTable:
		names := make([]string, len(i.Args))
		for j, loc := range i.Args {
			names[j] = loc.Name + "@" + loc.Base()
		}
		return "Globals " + strings.Join(names, ", ")
	case OpVTable:
		return fmt.Sprintf("VTable %s = %s", i.Label, strings.Join(i.Labels, ", "))
	}
	return fmt.Sprintf("unknown instruction %d", i.Kind)
}

func call(dst *Location, target string, args ...*Location) string {
	if len(args) > 0 {
		names := make([]string, len(args))
		for j, arg := range args {
			names[j] = arg.String()
		}
		target += " " + strings.Join(names, ", ")
	}
	if dst == nil {
		return target
	}
	return dst.String() + " = " + target
}

// Listing is an Emitter that keeps every operation in order.
type Listing struct {
	Instrs []*Instr
}

func NewListing() *Listing { return &Listing{} }

func (l *Listing) add(i *Instr) *Instr {
	l.Instrs = append(l.Instrs, i)
	return i
}

func (l *Listing) LoadConstant(dst *Location, value int) {
	l.add(&Instr{Kind: OpLoadConstant, Dst: dst, Value: value})
}

func (l *Listing) LoadStringConstant(dst *Location, value string) {
	l.add(&Instr{Kind: OpLoadStringConstant, Dst: dst, Str: value})
}

func (l *Listing) LoadLabel(dst *Location, label string) {
	l.add(&Instr{Kind: OpLoadLabel, Dst: dst, Label: label})
}

func (l *Listing) Assign(dst, src *Location) {
	l.add(&Instr{Kind: OpAssign, Dst: dst, Src: src})
}

func (l *Listing) Load(dst, ref *Location, offset int) {
	l.add(&Instr{Kind: OpLoad, Dst: dst, Ref: ref, Offset: offset})
}

func (l *Listing) Store(ref *Location, offset int, src *Location) {
	l.add(&Instr{Kind: OpStore, Ref: ref, Offset: offset, Src: src})
}

func (l *Listing) BinaryOp(dst *Location, op OpCode, a, b *Location) {
	l.add(&Instr{Kind: OpBinary, Dst: dst, Op: op, A: a, B: b})
}

func (l *Listing) BuiltInCall(dst *Location, fn BuiltIn, args ...*Location) {
	l.add(&Instr{Kind: OpBuiltInCall, Dst: dst, BuiltIn: fn, Args: args})
}

func (l *Listing) PushParam(src *Location) {
	l.add(&Instr{Kind: OpPushParam, Src: src})
}

func (l *Listing) PopParams(bytes int) {
	if bytes > 0 {
		l.add(&Instr{Kind: OpPopParams, Value: bytes})
	}
}

func (l *Listing) LCall(dst *Location, label string) {
	l.add(&Instr{Kind: OpLCall, Dst: dst, Label: label})
}

func (l *Listing) ACall(dst *Location, addr *Location) {
	l.add(&Instr{Kind: OpACall, Dst: dst, Src: addr})
}

func (l *Listing) Label(label string) {
	l.add(&Instr{Kind: OpLabel, Label: label})
}

func (l *Listing) IfZ(test *Location, label string) {
	l.add(&Instr{Kind: OpIfZ, Src: test, Label: label})
}

func (l *Listing) Goto(label string) {
	l.add(&Instr{Kind: OpGoto, Label: label})
}

func (l *Listing) Return(val *Location) {
	l.add(&Instr{Kind: OpReturn, Src: val})
}

func (l *Listing) BeginFunc() FrameSizer {
	return l.add(&Instr{Kind: OpBeginFunc})
}

func (l *Listing) EndFunc() {
	l.add(&Instr{Kind: OpEndFunc})
}

func (l *Listing) RuntimeError(kind RuntimeErrorKind) {
	l.add(&Instr{Kind: OpRuntimeError, Error: kind})
}

func (l *Listing) GlobalTable(globals []*Location) {
	l.add(&Instr{Kind: OpGlobalTable, Args: globals})
}

func (l *Listing) VTable(class string, labels []string) {
	l.add(&Instr{Kind: OpVTable, Label: class, Labels: labels})
}

// Find returns the instructions of the given kind, in order.
func (l *Listing) Find(kind InstrKind) []*Instr {
	var result []*Instr
	for _, i := range l.Instrs {
		if i.Kind == kind {
			result = append(result, i)
		}
	}
	return result
}

// WriteTo prints the listing, one instruction per line. Labels start in the first column.
func (l *Listing) WriteTo(w io.Writer) (int64, error) {
	writer := bufio.NewWriter(w)
	var total int64
	for _, i := range l.Instrs {
		line := i.String()
		if i.Kind != OpLabel && i.Kind != OpVTable && i.Kind != OpGlobalTable {
			line = "\t" + line
		}
		n, err := writer.WriteString(line + "\n")
		total += int64(n)
		if err != nil {
			return total, errors.Wrap(err, "write listing")
		}
	}
	if err := writer.Flush(); err != nil {
		return total, errors.Wrap(err, "flush listing")
	}
	return total, nil
}

func (l *Listing) String() string {
	var b strings.Builder
	_, _ = l.WriteTo(&b)
	return b.String()
}
