// Package param provides time-automated control values for the synth graph.
//
// A [Param] mirrors the scheduling model of browser audio parameters: values
// are set, ramped linearly, or approached exponentially at absolute times on
// the audio clock, and pending events can be cancelled from a point in time
// onwards. The engine evaluates parameters once per control block with
// [Param.ValueAt] and calls [Param.Advance] to retire settled events.
package param
