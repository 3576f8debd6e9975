package report

import "github.com/agentstation/pedigreecheck/pkg/matcher"

// Sink receives every outcome as it is emitted, duplicates included.
type Sink interface {
	Emit(o matcher.Outcome)
}

// SinkFunc is an adapter to allow functions to be used as Sinks.
type SinkFunc func(matcher.Outcome)

// Emit calls the function.
func (f SinkFunc) Emit(o matcher.Outcome) { f(o) }

// Discard is a Sink that drops every outcome.
var Discard Sink = SinkFunc(func(matcher.Outcome) {})

// MultiSink emits to every sink in order.
func MultiSink(sinks ...Sink) Sink {
	return SinkFunc(func(o matcher.Outcome) {
		for _, s := range sinks {
			s.Emit(o)
		}
	})
}

// Collector is a Sink that keeps every emission in order.
type Collector struct {
	Outcomes []matcher.Outcome
}

// Emit appends o.
func (c *Collector) Emit(o matcher.Outcome) { c.Outcomes = append(c.Outcomes, o) }
