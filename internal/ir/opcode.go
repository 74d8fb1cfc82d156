package ir

import "fmt"

// UnaryOp enumerates the pure unary numeric functions available to map
// nodes and transform map steps. Field Op kernels use ScalarFieldOp.
type UnaryOp byte

const (
	UnarySin UnaryOp = iota
	UnaryCos
	UnaryTan
	UnaryAsin
	UnaryAcos
	UnaryAtan
	UnaryAbs
	UnaryFloor
	UnaryCeil
	UnaryRound
	UnaryFract
	UnarySign
)

func (o UnaryOp) String() string {
	names := [...]string{"Sin", "Cos", "Tan", "Asin", "Acos", "Atan", "Abs", "Floor", "Ceil", "Round", "Fract", "Sign"}
	if int(o) < len(names) {
		return names[o]
	}
	return fmt.Sprintf("unaryOp(%d)", byte(o))
}

// BinaryOp enumerates the pure binary numeric functions available to zip
// nodes. Field Zip kernels use ZipOp.
type BinaryOp byte

const (
	BinaryAdd BinaryOp = iota
	BinarySub
	BinaryMul
	BinaryDiv
	BinaryMod
	BinaryPow
	BinaryMin
	BinaryMax
	BinaryAtan2
)

func (o BinaryOp) String() string {
	names := [...]string{"Add", "Sub", "Mul", "Div", "Mod", "Pow", "Min", "Max", "Atan2"}
	if int(o) < len(names) {
		return names[o]
	}
	return fmt.Sprintf("binaryOp(%d)", byte(o))
}

// TernaryOp enumerates the pure ternary numeric functions. These are not
// reachable from a dedicated signal node kind; they back field Op kernels
// that take baked-in parameters (e.g. clamp(a,b) applied to one source).
type TernaryOp byte

const (
	TernaryClamp TernaryOp = iota
	TernaryLerp
	TernarySmoothstep
	TernaryStep
)

func (o TernaryOp) String() string {
	names := [...]string{"Clamp", "Lerp", "Smoothstep", "Step"}
	if int(o) < len(names) {
		return names[o]
	}
	return fmt.Sprintf("ternaryOp(%d)", byte(o))
}

// OpCode is a type alias of UnaryOp, not a distinct type: a value of one
// is a value of the other, with no extra compile-time checking.
type OpCode = UnaryOp
