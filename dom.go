package fbx

import "github.com/g3n/fbx/dom"

// RawNode and Value are re-exported from the dom package so object-reader
// code in this package can refer to them without an extra import alias;
// dom itself stays dialect-agnostic and has no dependency back on this
// package (spec §4.6 / SPEC_FULL module map).
type (
	RawNode = dom.RawNode
	Value   = dom.Value
)
