// Package iso implements the calendar collaborators for the ISO calendar
// over time.Time: the field rules, English and French text catalogs, zone
// lookup, and Resolve, which merges parsed fields back into a time.Time.
package iso
