// Package pattern compiles pattern strings such as "yyyy-MM-dd'T'HH:mm"
// into Builder calls.
//
// A pattern is a sequence of letter runs, quoted literals, single literal
// characters and the optional-section brackets '[' and ']'. Each letter run
// maps to one builder element through a fixed table; the pad prefix 'p' and
// the fraction prefix 'f' modify the element that follows them.
package pattern
