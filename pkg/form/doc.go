// Package form holds the order form state machine.
//
// A Form owns one draft, its validation errors and the submission status.
// It is mutated only through Change and Submit; renderers read it through
// Snapshot. One Form serves one UI session.
package form
