// Package format is the formatting engine: a closed set of pipeline nodes,
// the Builder that assembles them, and the immutable Formatter that prints
// field values to text and parses text back into a Parsed result.
//
// A Formatter holds no mutable state. Every Format and Parse call allocates
// its own cursor and result, so one Formatter may be shared freely between
// goroutines.
package format
