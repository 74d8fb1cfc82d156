package field

import (
	"sort"
	"strings"

	"github.com/brandon-fryslie/oscilla-animator-sub000/api"
	"github.com/brandon-fryslie/oscilla-animator-sub000/internal/ir"
)

// SinkRequest is the input to the Render-Sink Planner (spec.md §4.2
// "Render-Sink Planner").
type SinkRequest struct {
	SinkType       string
	DomainId       int
	FieldInputs    map[string]ir.FieldId
	SignalUniforms map[string]ir.SigExprId
}

// RenderOutput is the planner's execution result (spec.md §6 "Render
// output").
type RenderOutput struct {
	Kind          string
	InstanceCount int
	Buffers       map[string]*api.BufferView
	Uniforms      map[string]float64
}

// renderSinkPlanEntry is one resolved field-input slot of a plan.
type renderSinkPlanEntry struct {
	name    string
	fieldId ir.FieldId
	format  api.Format
	layout  api.Layout
}

// RenderSinkPlan is the planner's intermediate, already-resolved form:
// one materialization request per named field input, plus the uniform
// signal ids to evaluate at execution time.
type RenderSinkPlan struct {
	req     SinkRequest
	entries []renderSinkPlanEntry
}

// PlanSink infers format/layout for every named field input from the
// usage-tag heuristic table (spec.md §4.2 step 1), in deterministic
// (sorted-by-name) order (spec.md §5 "iteration over the field-inputs
// map must be deterministic").
func (m *Materializer) PlanSink(req SinkRequest) RenderSinkPlan {
	names := make([]string, 0, len(req.FieldInputs))
	for name := range req.FieldInputs {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]renderSinkPlanEntry, 0, len(names))
	for _, name := range names {
		format, layout := usageFormat(name)
		entries = append(entries, renderSinkPlanEntry{
			name:    name,
			fieldId: req.FieldInputs[name],
			format:  format,
			layout:  layout,
		})
	}
	return RenderSinkPlan{req: req, entries: entries}
}

// usageFormat maps a usage tag to its inferred (format, layout) pair,
// per the render-sink heuristic table.
func usageFormat(usageTag string) (api.Format, api.Layout) {
	tag := strings.ToLower(usageTag)
	switch {
	case strings.Contains(tag, "pos"):
		return api.FormatVec2F32, api.LayoutVec2
	case strings.Contains(tag, "size"), strings.Contains(tag, "radius"):
		return api.FormatF32, api.LayoutScalar
	case strings.Contains(tag, "fill"), strings.Contains(tag, "color"):
		return api.FormatRGBA8, api.LayoutColor
	case strings.Contains(tag, "velocity"):
		return api.FormatVec2F32, api.LayoutVec2
	case strings.Contains(tag, "rotation"):
		return api.FormatF32, api.LayoutScalar
	}
	return api.FormatF32, api.LayoutScalar
}

// Execute runs a previously computed plan: one materialization request
// per field input (spec.md §4.2 step 2) plus one evaluation per signal
// uniform (step 3), in deterministic order.
func (m *Materializer) Execute(plan RenderSinkPlan) (*RenderOutput, error) {
	n, err := m.Env.DomainCount(plan.req.DomainId)
	if err != nil {
		return nil, err
	}

	buffers := make(map[string]*api.BufferView, len(plan.entries))
	for _, e := range plan.entries {
		buf, err := m.Materialize(Request{
			FieldId:  e.fieldId,
			DomainId: plan.req.DomainId,
			Format:   e.format,
			Layout:   e.layout,
			UsageTag: e.name,
		})
		if err != nil {
			return nil, err
		}
		buffers[e.name] = buf
	}

	uniformNames := make([]string, 0, len(plan.req.SignalUniforms))
	for name := range plan.req.SignalUniforms {
		uniformNames = append(uniformNames, name)
	}
	sort.Strings(uniformNames)

	uniforms := make(map[string]float64, len(uniformNames))
	for _, name := range uniformNames {
		v, err := m.Env.evalSignal(plan.req.SignalUniforms[name])
		if err != nil {
			return nil, err
		}
		uniforms[name] = v
	}

	return &RenderOutput{
		Kind:          plan.req.SinkType,
		InstanceCount: n,
		Buffers:       buffers,
		Uniforms:      uniforms,
	}, nil
}
