// Package field defines the boundary between the formatting engine and the
// calendar collaborators: the Field capability, value ranges, text styles,
// and the text and zone providers. The engine depends only on these types.
package field
