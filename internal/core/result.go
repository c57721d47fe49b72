package core

// OutcomeStatus tags how an external call site produced its value.
type OutcomeStatus string

const (
	OutcomeOK       OutcomeStatus = "ok"       // The external service answered
	OutcomeFallback OutcomeStatus = "fallback" // A deterministic substitute was used
	OutcomeFailed   OutcomeStatus = "failed"   // No value could be produced
)

// Outcome wraps a value produced by an external call site. Callers treat
// OutcomeOK and OutcomeFallback identically downstream; only metadata such as
// clustering method or confidence reflects the difference.
type Outcome[T any] struct {
	Status OutcomeStatus // How the value was produced
	Value  T             // The produced value, valid unless Status is failed
}

// Ok wraps a value produced by a successful external call.
func Ok[T any](v T) Outcome[T] { return Outcome[T]{Status: OutcomeOK, Value: v} }

// Fallback wraps a deterministically substituted value.
func Fallback[T any](v T) Outcome[T] { return Outcome[T]{Status: OutcomeFallback, Value: v} }

// Failed marks a call site that produced no usable value.
func Failed[T any]() Outcome[T] { return Outcome[T]{Status: OutcomeFailed} }

// Usable reports whether the outcome carries a value callers may consume.
func (o Outcome[T]) Usable() bool { return o.Status != OutcomeFailed }
