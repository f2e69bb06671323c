// Package engine decides which candidate paths pass a Selection of tests.
//
// Each candidate is looked up once. A trivial selection passes everything;
// otherwise a candidate must exist and pass every enabled test, with
// inapplicable comparisons not counting against it. Invert negates the final
// result. Filter runs the engine over an ordered list of paths, optionally
// replacing directories by their entries, and emits passing candidates in
// input order.
package engine
