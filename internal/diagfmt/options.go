package diagfmt

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	Label     string // name shown before positions, "pattern" when empty
	ShowNotes bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // add 1-based columns
	Max              int  // output cut-off, not the Bag limit
	IncludeNotes     bool
}
