package field

import (
	"math"

	"github.com/brandon-fryslie/oscilla-animator-sub000/api"
	"github.com/brandon-fryslie/oscilla-animator-sub000/internal/ir"
)

// fillZipSig evaluates node.Signals once, materializes the source field,
// and applies a named kernel element-wise (spec.md §4.2 "ZipSig").
func (m *Materializer) fillZipSig(out *api.BufferView, n int, req Request, node *ir.FieldNode) error {
	sigVals := make([]float64, len(node.Signals))
	for i, sigId := range node.Signals {
		v, err := m.Env.evalSignal(sigId)
		if err != nil {
			return err
		}
		sigVals[i] = v
	}

	src, err := m.materializeField(node.ZipSigField, req.DomainId)
	if err != nil {
		return err
	}

	switch node.ZipSigFn {
	case ir.ZipSigAdd, ir.ZipSigMul, ir.ZipSigSub, ir.ZipSigDiv:
		c := 0.0
		if len(sigVals) > 0 {
			c = sigVals[0]
		}
		for i := 0; i < n; i++ {
			setScalar(out, i, applyZipSigScalar(node.ZipSigFn, getScalar(src, i), c))
		}
	case ir.ZipSigJitterVec2:
		return m.fillJitterVec2ZipSig(out, n, src, sigVals)
	case ir.ZipSigVec2Rotate:
		return m.fillVec2RotateZipSig(out, n, src, sigVals)
	case ir.ZipSigVec2Scale:
		return m.fillVec2ScaleZipSig(out, n, src, sigVals)
	case ir.ZipSigVec2Translate:
		return m.fillVec2TranslateZipSig(out, n, src, sigVals)
	default:
		// default identity, per spec.md
		for i := 0; i < n; i++ {
			setScalar(out, i, getScalar(src, i))
		}
	}
	return nil
}

func applyZipSigScalar(fn ir.ZipSigFn, x, c float64) float64 {
	switch fn {
	case ir.ZipSigAdd:
		return x + c
	case ir.ZipSigMul:
		return x * c
	case ir.ZipSigSub:
		return x - c
	case ir.ZipSigDiv:
		return x / c
	}
	return x
}

func sigAt(vals []float64, i int) float64 {
	if i < len(vals) {
		return vals[i]
	}
	return 0
}

func (m *Materializer) fillJitterVec2ZipSig(out *api.BufferView, n int, src *api.BufferView, sig []float64) error {
	t := sigAt(sig, 0)
	ampX := sigAt(sig, 1)
	ampY := ampX
	if len(sig) > 2 {
		ampY = sig[2]
	}
	for i := 0; i < n; i++ {
		x, y := getVec2(src, i)
		jx := math.Sin(t+float64(i)) * ampX
		jy := math.Cos(t+float64(i)) * ampY
		setVec2(out, i, x+jx, y+jy)
	}
	return nil
}

func (m *Materializer) fillVec2RotateZipSig(out *api.BufferView, n int, src *api.BufferView, sig []float64) error {
	angle := sigAt(sig, 0)
	cx := sigAt(sig, 1)
	cy := sigAt(sig, 2)
	rad := angle * math.Pi / 180
	s, c := math.Sin(rad), math.Cos(rad)
	for i := 0; i < n; i++ {
		x, y := getVec2(src, i)
		dx, dy := x-cx, y-cy
		setVec2(out, i, cx+dx*c-dy*s, cy+dx*s+dy*c)
	}
	return nil
}

func (m *Materializer) fillVec2ScaleZipSig(out *api.BufferView, n int, src *api.BufferView, sig []float64) error {
	sx := sigAt(sig, 0)
	sy := sx
	if len(sig) > 1 {
		sy = sig[1]
	}
	cx := sigAt(sig, 2)
	cy := sigAt(sig, 3)
	for i := 0; i < n; i++ {
		x, y := getVec2(src, i)
		setVec2(out, i, cx+(x-cx)*sx, cy+(y-cy)*sy)
	}
	return nil
}

func (m *Materializer) fillVec2TranslateZipSig(out *api.BufferView, n int, src *api.BufferView, sig []float64) error {
	dx := sigAt(sig, 0)
	dy := sigAt(sig, 1)
	for i := 0; i < n; i++ {
		x, y := getVec2(src, i)
		setVec2(out, i, x+dx, y+dy)
	}
	return nil
}
