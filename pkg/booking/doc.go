// Package booking holds the pure rules of the reservation engine: interval
// overlap under half-open semantics, date and stay-length validation,
// nightly pricing and the booking lifecycle state machine.
//
// Nothing in this package performs I/O or reads the wall clock directly;
// the current time comes in through the Clock interface so every rule is
// deterministic under test.
package booking
