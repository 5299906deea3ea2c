package format

import (
	"slices"

	"calfmt/internal/diag"
	"calfmt/internal/field"
)

const (
	maxValueWidth    = 19
	maxReducedWidth  = 18
	maxFractionWidth = 9
)

type padRequest struct {
	width int
	char  rune
}

// optionalMarker remembers where a group started and the pad request that
// was pending when it opened; that pad wraps the group once it closes.
type optionalMarker struct {
	index int
	pad   *padRequest
}

// Builder accumulates pipeline nodes. It is not safe for concurrent use.
// A failing call leaves the builder exactly as it was.
type Builder struct {
	nodes    []*node
	optional []optionalMarker
	pad      *padRequest
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) appendNode(n *node) {
	if b.pad != nil {
		n = wrapPad(n, b.pad)
		b.pad = nil
	}
	b.nodes = append(b.nodes, n)
}

func wrapPad(n *node, p *padRequest) *node {
	if p == nil {
		return n
	}
	return &node{kind: kindPad, padWidth: p.width, padChar: p.char, children: []*node{n}}
}

func checkField(f field.Field) error {
	if f == nil {
		return constructionErr(diag.BldNilField, "field must not be nil")
	}
	return nil
}

// AppendLiteral appends fixed text.
func (b *Builder) AppendLiteral(text string) error {
	if text == "" {
		return constructionErr(diag.BldEmptyLiteral, "literal must not be empty")
	}
	b.appendNode(&node{kind: kindLiteral, text: text})
	return nil
}

// AppendValue appends the field printed at its natural width.
func (b *Builder) AppendValue(f field.Field) error {
	if err := checkField(f); err != nil {
		return err
	}
	b.appendNode(&node{kind: kindValue, field: f, minWidth: 1, maxWidth: maxValueWidth, sign: SignNormal, plain: true})
	return nil
}

// AppendValueWidth appends the field zero-padded to exactly width digits.
func (b *Builder) AppendValueWidth(f field.Field, width int) error {
	if err := checkField(f); err != nil {
		return err
	}
	if width < 1 || width > maxValueWidth {
		return constructionErr(diag.BldWidthRange, "width must be from 1 to 19 inclusive but was %d", width)
	}
	b.appendNode(&node{kind: kindValue, field: f, minWidth: width, maxWidth: width, sign: SignNormal})
	return nil
}

// AppendValueRange appends the field with a width range and sign style.
func (b *Builder) AppendValueRange(f field.Field, minWidth, maxWidth int, sign SignStyle) error {
	if err := checkField(f); err != nil {
		return err
	}
	if minWidth < 1 || minWidth > maxValueWidth {
		return constructionErr(diag.BldWidthRange, "minimum width must be from 1 to 19 inclusive but was %d", minWidth)
	}
	if maxWidth < 1 || maxWidth > maxValueWidth {
		return constructionErr(diag.BldWidthRange, "maximum width must be from 1 to 19 inclusive but was %d", maxWidth)
	}
	if maxWidth < minWidth {
		return constructionErr(diag.BldWidthOrder, "maximum width must exceed or equal the minimum width but %d < %d", maxWidth, minWidth)
	}
	if !sign.Valid() {
		return constructionErr(diag.BldBadStyle, "unknown sign style %d", sign)
	}
	b.appendNode(&node{kind: kindValue, field: f, minWidth: minWidth, maxWidth: maxWidth, sign: sign})
	return nil
}

// AppendValueReduced appends the low width digits of the field, read back
// into the window [base, base+10^width).
func (b *Builder) AppendValueReduced(f field.Field, width int, base int64) error {
	if err := checkField(f); err != nil {
		return err
	}
	if width < 1 || width > maxReducedWidth {
		return constructionErr(diag.BldReducedWidth, "width must be from 1 to 18 inclusive but was %d", width)
	}
	b.appendNode(&node{kind: kindReduced, field: f, minWidth: width, maxWidth: width, sign: SignNotNegative, base: base})
	return nil
}

// AppendFraction appends the field as a decimal fraction of its range.
func (b *Builder) AppendFraction(f field.Field, minWidth, maxWidth int) error {
	if err := checkField(f); err != nil {
		return err
	}
	if minWidth < 0 || minWidth > maxFractionWidth {
		return constructionErr(diag.BldFractionWidths, "minimum width must be from 0 to 9 inclusive but was %d", minWidth)
	}
	if maxWidth < 0 || maxWidth > maxFractionWidth {
		return constructionErr(diag.BldFractionWidths, "maximum width must be from 0 to 9 inclusive but was %d", maxWidth)
	}
	if maxWidth < minWidth {
		return constructionErr(diag.BldWidthOrder, "maximum width must exceed or equal the minimum width but %d < %d", maxWidth, minWidth)
	}
	if r := f.Range(); !r.IsFixed() || r.Min != 0 {
		return constructionErr(diag.BldFractionField, "field %s must have a fixed range starting at zero, got %s", f.ID(), r)
	}
	b.appendNode(&node{kind: kindFraction, field: f, minWidth: minWidth, maxWidth: maxWidth})
	return nil
}

// AppendText appends the field as SHORT text.
func (b *Builder) AppendText(f field.Field) error {
	return b.AppendTextStyle(f, field.Short)
}

// AppendTextStyle appends the field as text of the given style.
func (b *Builder) AppendTextStyle(f field.Field, style field.TextStyle) error {
	if err := checkField(f); err != nil {
		return err
	}
	if !style.Valid() {
		return constructionErr(diag.BldBadStyle, "unknown text style %d", style)
	}
	b.appendNode(&node{kind: kindText, field: f, style: style})
	return nil
}

// AppendOffsetID appends the offset as +HH:MM:ss with Z for zero.
func (b *Builder) AppendOffsetID() {
	b.appendNode(&node{kind: kindOffset, text: "Z", offset: 4})
}

// AppendOffset appends the offset using one of the fixed layouts.
func (b *Builder) AppendOffset(noOffsetText, pattern string) error {
	p, ok := lookupOffsetPattern(pattern)
	if !ok {
		return constructionErr(diag.BldOffsetPattern, "invalid offset pattern %q", pattern)
	}
	b.appendNode(&node{kind: kindOffset, text: noOffsetText, offset: p})
	return nil
}

// AppendZoneID appends the zone id.
func (b *Builder) AppendZoneID() {
	b.appendNode(&node{kind: kindZoneID})
}

// AppendZoneText appends the zone name in the given style.
func (b *Builder) AppendZoneText(style field.TextStyle) error {
	if !style.Valid() {
		return constructionErr(diag.BldBadStyle, "unknown text style %d", style)
	}
	b.appendNode(&node{kind: kindZoneText, style: style})
	return nil
}

// PadNext pads the next appended element with spaces to width.
func (b *Builder) PadNext(width int) error {
	return b.PadNextWith(width, ' ')
}

// PadNextWith pads the next appended element with char to width.
func (b *Builder) PadNextWith(width int, char rune) error {
	if width < 1 {
		return constructionErr(diag.BldPadWidth, "pad width must be at least one but was %d", width)
	}
	b.pad = &padRequest{width: width, char: char}
	return nil
}

// OptionalStart opens an optional group.
func (b *Builder) OptionalStart() {
	b.optional = append(b.optional, optionalMarker{index: len(b.nodes), pad: b.pad})
	b.pad = nil
}

// OptionalEnd closes the innermost group, replacing the nodes appended
// since it opened with one Optional node. An empty group appends nothing.
func (b *Builder) OptionalEnd() error {
	if len(b.optional) == 0 {
		return constructionErr(diag.BldNoOptional, "cannot call optionalEnd() as there was no previous call to optionalStart()")
	}
	m := b.optional[len(b.optional)-1]
	b.optional = b.optional[:len(b.optional)-1]
	if len(b.nodes) == m.index {
		b.pad = m.pad
		return nil
	}
	opt := &node{kind: kindOptional, children: slices.Clone(b.nodes[m.index:])}
	b.nodes = append(b.nodes[:m.index:m.index], wrapPad(opt, m.pad))
	b.pad = nil
	return nil
}

// ParseCaseSensitive makes subsequent parsing case sensitive.
func (b *Builder) ParseCaseSensitive() { b.appendNode(&node{kind: kindCase, flag: true}) }

// ParseCaseInsensitive makes subsequent parsing ignore case.
func (b *Builder) ParseCaseInsensitive() { b.appendNode(&node{kind: kindCase, flag: false}) }

// ParseStrict makes subsequent parsing strict.
func (b *Builder) ParseStrict() { b.appendNode(&node{kind: kindStrict, flag: true}) }

// ParseLenient makes subsequent parsing lenient.
func (b *Builder) ParseLenient() { b.appendNode(&node{kind: kindStrict, flag: false}) }

// Append splices a copy of another formatter's pipeline.
func (b *Builder) Append(f *Formatter) error {
	if f == nil {
		return constructionErr(diag.BldNilFormatter, "formatter must not be nil")
	}
	b.appendNode(&node{kind: kindComposite, children: cloneNodes(f.root.children)})
	return nil
}

// AppendOptional splices a copy of another formatter's pipeline as an
// optional group.
func (b *Builder) AppendOptional(f *Formatter) error {
	if f == nil {
		return constructionErr(diag.BldNilFormatter, "formatter must not be nil")
	}
	b.appendNode(&node{kind: kindOptional, children: cloneNodes(f.root.children)})
	return nil
}

// Checkpoint captures the builder state.
type Checkpoint struct {
	owner    *Builder
	nodes    []*node
	optional []optionalMarker
	pad      *padRequest
}

// Checkpoint snapshots the current state for a later Restore.
func (b *Builder) Checkpoint() Checkpoint {
	return Checkpoint{
		owner:    b,
		nodes:    slices.Clone(b.nodes),
		optional: slices.Clone(b.optional),
		pad:      b.pad,
	}
}

// Restore rewinds the builder to a checkpoint it produced.
func (b *Builder) Restore(cp Checkpoint) error {
	if cp.owner != b {
		return constructionErr(diag.BldBadCheckpoint, "checkpoint belongs to a different builder")
	}
	b.nodes = slices.Clone(cp.nodes)
	b.optional = slices.Clone(cp.optional)
	b.pad = cp.pad
	return nil
}

// OpenOptionals reports how many optional groups are open.
func (b *Builder) OpenOptionals() int { return len(b.optional) }

// ToFormatter snapshots the builder into an immutable Formatter, closing
// any open optional groups at the end. The builder itself is unchanged.
func (b *Builder) ToFormatter() *Formatter {
	nodes := slices.Clone(b.nodes)
	for i := len(b.optional) - 1; i >= 0; i-- {
		m := b.optional[i]
		if len(nodes) == m.index {
			continue
		}
		opt := &node{kind: kindOptional, children: slices.Clone(nodes[m.index:])}
		nodes = append(nodes[:m.index:m.index], wrapPad(opt, m.pad))
	}
	return newFormatter(&node{kind: kindComposite, children: nodes})
}

func cloneNodes(in []*node) []*node {
	out := make([]*node, len(in))
	for i, n := range in {
		c := *n
		if n.children != nil {
			c.children = cloneNodes(n.children)
		}
		out[i] = &c
	}
	return out
}
