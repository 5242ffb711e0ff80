package codegen

// OpCode is a binary operation of the target machine. Everything else is built from these.
type OpCode int

const (
	Add OpCode = iota
	Sub
	Mul
	Div
	Mod
	Eq
	Less
	And
	Or
)

var opNames = [...]string{"+", "-", "*", "/", "%", "==", "<", "&&", "||"}

func (op OpCode) String() string { return opNames[op] }

var opCodes = map[string]OpCode{
	"+": Add, "-": Sub, "*": Mul, "/": Div, "%": Mod,
	"==": Eq, "<": Less, "&&": And, "||": Or,
}

// BuiltIn is a routine of the runtime library.
type BuiltIn int

const (
	Alloc BuiltIn = iota
	ReadLine
	ReadInteger
	StringEqual
	PrintInt
	PrintString
	PrintBool
	Halt
)

var builtIns = [...]struct {
	label     string
	numArgs   int
	hasReturn bool
}{
	Alloc:       {"_Alloc", 1, true},
	ReadLine:    {"_ReadLine", 0, true},
	ReadInteger: {"_ReadInteger", 0, true},
	StringEqual: {"_StringEqual", 2, true},
	PrintInt:    {"_PrintInt", 1, false},
	PrintString: {"_PrintString", 1, false},
	PrintBool:   {"_PrintBool", 1, false},
	Halt:        {"_Halt", 0, false},
}

func (b BuiltIn) String() string { return builtIns[b].label }

// HasReturn reports whether the routine produces a value.
func (b BuiltIn) HasReturn() bool { return builtIns[b].hasReturn }

// NumArgs is the number of arguments the routine takes.
func (b BuiltIn) NumArgs() int { return builtIns[b].numArgs }

// RuntimeErrorKind is a failure detected by generated code. The program prints the message and
// halts.
type RuntimeErrorKind int

const (
	ErrArrayOutOfBounds RuntimeErrorKind = iota
	ErrNewArrayBadSize
	// ErrInterfaceDispatch is raised unconditionally by every method call on a value of
	// interface type, interfaces have no dispatch tables.
	ErrInterfaceDispatch
)

var runtimeErrors = [...]string{
	ErrArrayOutOfBounds:  "Decaf runtime error: Array subscript out of bounds",
	ErrNewArrayBadSize:   "Decaf runtime error: Array size is <= 0",
	ErrInterfaceDispatch: "Decaf runtime error: Call through an interface is not supported",
}

func (k RuntimeErrorKind) String() string { return runtimeErrors[k] }

// FrameSizer is returned by BeginFunc. The frame size is only known once the body has been
// emitted, it is set then.
type FrameSizer interface {
	SetFrameSize(bytes int)
}

// Emitter receives the generated program one operation at a time. A nil dst means the result
// is not needed.
type Emitter interface {
	LoadConstant(dst *Location, value int)
	LoadStringConstant(dst *Location, value string)
	LoadLabel(dst *Location, label string)
	Assign(dst, src *Location)
	// Load reads the word at ref+offset.
	Load(dst, ref *Location, offset int)
	// Store writes src to the word at ref+offset.
	Store(ref *Location, offset int, src *Location)
	BinaryOp(dst *Location, op OpCode, a, b *Location)
	BuiltInCall(dst *Location, fn BuiltIn, args ...*Location)
	PushParam(src *Location)
	PopParams(bytes int)
	// LCall calls a label, ACall calls through an address.
	LCall(dst *Location, label string)
	ACall(dst *Location, addr *Location)
	Label(label string)
	IfZ(test *Location, label string)
	Goto(label string)
	Return(val *Location)
	BeginFunc() FrameSizer
	EndFunc()
	RuntimeError(kind RuntimeErrorKind)
	GlobalTable(globals []*Location)
	VTable(class string, labels []string)
}
