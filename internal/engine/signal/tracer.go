package signal

import "github.com/brandon-fryslie/oscilla-animator-sub000/internal/ir"

// Tracer receives strictly observational trace records during
// evaluation — never consulted for numeric decisions (spec.md §4.1
// "Debug tracing"). The zero-cost-when-absent contract from DESIGN NOTES
// is implemented by a nil check hoisted to each emission site rather
// than a no-op implementation, so no record is ever constructed when no
// tracer is attached.
type Tracer interface {
	// BusCombine fires only when 2 or more terms were evaluated.
	BusCombine(node ir.SigExprId, busIndex int, values []float64, mode ir.CombineMode, result float64)
	// TransformStep fires once per step in a transform chain.
	TransformStep(node ir.SigExprId, chainId int, stepIdx int, kind ir.StepKind, out float64)
	// TransformSummary fires once per transform node, after all steps.
	TransformSummary(node ir.SigExprId, chainId int, in, out float64)
	// ClosureBridge fires once per closureBridge evaluation, with the
	// wall-clock duration of the callable invocation in nanoseconds.
	ClosureBridge(node ir.SigExprId, closureId string, result float64, execNanos int64)
}

// CountingTracer is a test helper that counts trace emissions by kind,
// used to verify spec.md §8 properties 1 and 4 ("observable via a
// counting debug sink").
type CountingTracer struct {
	BusCombineCount       int
	TransformStepCount    int
	TransformSummaryCount int
	ClosureBridgeCount    int
}

func (c *CountingTracer) BusCombine(ir.SigExprId, int, []float64, ir.CombineMode, float64) {
	c.BusCombineCount++
}

func (c *CountingTracer) TransformStep(ir.SigExprId, int, int, ir.StepKind, float64) {
	c.TransformStepCount++
}

func (c *CountingTracer) TransformSummary(ir.SigExprId, int, float64, float64) {
	c.TransformSummaryCount++
}

func (c *CountingTracer) ClosureBridge(ir.SigExprId, string, float64, int64) {
	c.ClosureBridgeCount++
}
