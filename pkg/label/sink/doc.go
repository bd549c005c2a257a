// Package sink renders composed label pages into output formats.
//
// Each renderer follows the same pattern: it takes the layout engine's
// pages plus functional options and returns the encoded bytes.
//
//   - [RenderPDF] produces the multi-page print document (the primary
//     output, sized for 29×52mm label stock).
//   - [RenderPNG] rasterizes a single page for previewing.
//   - [RenderJSON] dumps the computed layout for inspection and tests.
//
// Sinks convert the layout engine's bottom-left/mm coordinates into
// their own device space; the layout engine knows nothing about devices.
package sink
