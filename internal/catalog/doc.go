// Package catalog loads named pattern catalogs from calfmt.toml (or a YAML
// equivalent) and checks them: each entry's canonical rendering, sample
// inputs that must parse, and instants that must format to given texts.
package catalog
