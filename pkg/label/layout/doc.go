// Package layout is the label layout engine.
//
// [Compose] turns one per-page [label.Request] into a [Page] of drawing
// primitives with exact coordinates and font sizes. Coordinates are in
// millimeters with the origin at the bottom-left corner and y increasing
// upward; font and stroke sizes are in points. Sinks convert to their
// device space.
//
// The engine performs no I/O and holds no state: composing the same
// request always yields the same page.
package layout
