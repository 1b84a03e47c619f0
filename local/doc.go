// Package local provides scoped, dynamically nested storage for units of
// execution: goroutine call stacks and step-driven futures. A scope installs
// a value for a key for the duration of an inner computation; the computation
// and everything it calls observe that value, including across suspension
// points, and the previous state is restored on every exit path — normal
// return, panic, or cancellation.
package local
