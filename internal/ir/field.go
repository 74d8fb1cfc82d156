package ir

import (
	"fmt"

	"github.com/brandon-fryslie/oscilla-animator-sub000/api"
)

// FieldId indexes into a FieldNode slice, the field-handle counterpart to
// SigExprId.
type FieldId int

// FieldKind tags the variant a FieldNode holds.
type FieldKind byte

const (
	FieldConst FieldKind = iota
	FieldBroadcast
	FieldOp
	FieldZip
	FieldSelect
	FieldTransform // reserved, always errors
	FieldCombine
	FieldSource
	FieldMapIndexed
	FieldZipSig
)

func (k FieldKind) String() string {
	names := [...]string{"Const", "Broadcast", "Op", "Zip", "Select", "Transform", "Combine", "Source", "MapIndexed", "ZipSig"}
	if int(k) < len(names) {
		return names[k]
	}
	return fmt.Sprintf("fieldKind(%d)", byte(k))
}

// ZipOp enumerates the element-wise binary ops available to a field Zip
// handle. Scalar ops mirror BinaryOp's Add/Sub/Mul/Div/Min/Max/Pow/Mod
// but Div/Mod here do NOT special-case zero (see DESIGN.md Open Question
// 2): they produce NaN/Inf like ordinary float division, unlike the
// signal evaluator's BinaryDiv/BinaryMod which fall back to 0.
type ZipOp byte

const (
	ZipAdd ZipOp = iota
	ZipSub
	ZipMul
	ZipDiv
	ZipMin
	ZipMax
	ZipPow
	ZipMod
	ZipVec2Add
	ZipVec2Sub
	ZipVec2Mul
	ZipVec2Div
)

// ScalarFieldOp enumerates the unary (or one-source, parameterized)
// scalar kernels available to a field Op handle.
type ScalarFieldOp byte

const (
	FieldOpIdentity ScalarFieldOp = iota
	FieldOpNegate
	FieldOpAbs
	FieldOpFloor
	FieldOpCeil
	FieldOpRound
	FieldOpSin
	FieldOpCos
	FieldOpTanh
	FieldOpSqrt
	FieldOpExp
	FieldOpLog
	FieldOpSmoothstep // params a,b
	FieldOpClamp      // params a,b
	FieldOpScale      // param k
	FieldOpOffset     // param k
	FieldOpHash01ById // param seed
	FieldOpZipSignal  // param signal, op
)

// Vec2FieldOp enumerates the vec2-specific kernels available to a field
// Op handle.
type Vec2FieldOp byte

const (
	Vec2OpRotate Vec2FieldOp = iota
	Vec2OpScale
	Vec2OpTranslate
	Vec2OpReflect
	Vec2OpJitter
)

// ZipSignalOp is the element-combine op for FieldOpZipSignal.
type ZipSignalOp byte

const (
	ZipSignalAdd ZipSignalOp = iota
	ZipSignalSub
	ZipSignalMul
	ZipSignalMin
	ZipSignalMax
)

// ParamRef is a field-op parameter that is either a baked-in constant or
// a reference to a signal, resolved by evaluating the signal once before
// the kernel runs.
type ParamRef struct {
	IsSignal bool
	Const    float64
	SigId    SigExprId
}

// OpParams bundles the named scalar parameters a field Op or MapIndexed
// kernel needs, each independently possibly signal-backed.
type OpParams struct {
	A, B                     *ParamRef
	K                        *ParamRef
	Seed                     *ParamRef
	CenterX, CenterY         *ParamRef
	Angle                    *ParamRef
	ScaleX, ScaleY           *ParamRef
	OffsetX, OffsetY         *ParamRef
	Phase, Amount, Frequency *ParamRef
	ZipOpKind                ZipSignalOp
	ZipSigId                 SigExprId
}

// ConstPayload is the payload of a FieldConst handle: the handle names a
// const-pool id, and Type selects which arena of the pool to read it
// from. IsArray routes ConstId to the pool's array arena instead (one
// value per field element; validated against N at fill time).
type ConstPayload struct {
	Type    api.Layout
	ConstId int64
	IsArray bool
}

// MapIndexedFn names the index-parameterized kernel for a MapIndexed
// handle.
type MapIndexedFn byte

const (
	MapIndexedLinearInterp MapIndexedFn = iota // params start,end
	MapIndexedNormalizedIndex
	MapIndexedHueGradient // params offset,spread
)

// ZipSigFn names the kernel for a ZipSig handle.
type ZipSigFn byte

const (
	ZipSigAdd ZipSigFn = iota
	ZipSigMul
	ZipSigSub
	ZipSigDiv
	ZipSigJitterVec2   // params time, ampX, ampY?
	ZipSigVec2Rotate   // params angle, cx, cy
	ZipSigVec2Scale    // params sx, sy?, cx, cy
	ZipSigVec2Translate // params dx, dy
)

// FieldNode is one entry of the compiled field-handle array. Exactly the
// payload fields relevant to Kind are populated.
type FieldNode struct {
	Kind FieldKind
	Type api.Layout

	Const ConstPayload // const

	SigId    SigExprId // broadcast
	DomainId int       // not read by the materializer; every fill uses the request's domain

	Src      FieldId       // op, transform
	ScalarOp ScalarFieldOp // op
	Vec2Op   Vec2FieldOp   // op
	Params   OpParams      // op, mapIndexed

	A, B  FieldId // zip, select
	ZipOp ZipOp   // zip

	Cond, T, F FieldId // select

	ChainId int // transform (reserved)

	Combine BusCombineSpec // combine mode/default
	Terms   []FieldId      // combine

	SourceTag string // source

	Fn      MapIndexedFn // mapIndexed
	Signals []SigExprId  // mapIndexed, zipSig

	ZipSigFn    ZipSigFn // zipSig
	ZipSigField FieldId  // zipSig
}
