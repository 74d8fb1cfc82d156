// Package oscilla is the execution core of a node-graph animation
// runtime: a SignalExpr Evaluator over a memoizing scalar DAG, and a
// Field Materializer that turns field-expression handles into dense
// typed buffers for rendering.
//
// A Bundle holds the compiled, immutable IR (signal nodes, field nodes,
// const pool, transform chains, closure registry) produced by whatever
// compiles a graph into this shape. Bundle.NewFrame builds an
// Environment for one frame's worth of evaluation; Environment.EvalSig
// and Environment.Materialize are the main public entry points, alongside
// Environment.Reduce, Environment.PlanSink and Environment.ExecuteSink,
// with Environment.ReleaseFrame as the end-of-frame cleanup hook.
package oscilla
