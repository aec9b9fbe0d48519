// Package schema compiles the order contract (an OpenAPI 3 document) into an
// ordered list of per-field rules and validates drafts against it.
//
// Validation is a pure function of the compiled Schema and an order.Draft: it
// performs no I/O and evaluates every rule, reporting all violations. Callers
// that need a single message per field use Result.Errors, which applies the
// fixed priority required, minLength, maxLength, enum.
package schema
