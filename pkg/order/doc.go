// Package order defines the pizza order draft edited by the order form, the
// fixed size and topping identifiers, and the display catalog that labels
// them.
//
// A Draft only lives for a single submission attempt. It is created empty,
// mutated through the form's change handlers and discarded (reset) once the
// order API acknowledges it.
package order
