package sink

import (
	"encoding/json"
	"fmt"

	"github.com/skomura/medlabel/pkg/label/layout"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	runID string
}

// WithJSONRunID records the pipeline run ID in the JSON output so a dump
// can be correlated with its log lines.
func WithJSONRunID(id string) JSONOption {
	return func(r *jsonRenderer) { r.runID = id }
}

type jsonDoc struct {
	RunID     string     `json:"run_id,omitempty"`
	Width     float64    `json:"width"`
	Height    float64    `json:"height"`
	PageCount int        `json:"page_count"`
	Pages     []jsonPage `json:"pages"`
}

type jsonPage struct {
	Index int      `json:"index"`
	Ops   []jsonOp `json:"ops"`
}

// jsonOp flattens the primitive types into one tagged record.
type jsonOp struct {
	Kind    string  `json:"kind"`
	Value   string  `json:"value,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	X2      float64 `json:"x2,omitempty"`
	Y2      float64 `json:"y2,omitempty"`
	W       float64 `json:"w,omitempty"`
	H       float64 `json:"h,omitempty"`
	Size    float64 `json:"size,omitempty"`
	Stroke  float64 `json:"stroke,omitempty"`
	CenterX float64 `json:"center_x,omitempty"`
	Color   string  `json:"color,omitempty"`
}

// RenderJSON encodes the computed layout of every page. This is the
// machine-readable view of exactly what the print sinks draw, in layout
// units (mm, bottom-left origin; sizes in pt).
func RenderJSON(pages []layout.Page, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}

	doc := jsonDoc{
		RunID:     r.runID,
		Width:     layout.PageWidth,
		Height:    layout.PageHeight,
		PageCount: len(pages),
		Pages:     make([]jsonPage, len(pages)),
	}
	for i, page := range pages {
		jp := jsonPage{Index: i, Ops: make([]jsonOp, 0, len(page.Ops))}
		for _, op := range page.Ops {
			switch op := op.(type) {
			case layout.Rect:
				jp.Ops = append(jp.Ops, jsonOp{
					Kind: "rect", X: op.X, Y: op.Y, W: op.W, H: op.H, Color: op.Fill.String(),
				})
			case layout.Text:
				jp.Ops = append(jp.Ops, jsonOp{
					Kind: "text", Value: op.Value, X: op.X, Y: op.Y, Size: op.Size, Color: op.Color.String(),
				})
			case layout.Line:
				jp.Ops = append(jp.Ops, jsonOp{
					Kind: "line", X: op.X1, Y: op.Y1, X2: op.X2, Y2: op.Y2, Stroke: op.Width, Color: op.Color.String(),
				})
			case layout.Underline:
				jp.Ops = append(jp.Ops, jsonOp{
					Kind: "underline", Value: op.Value, CenterX: op.CenterX, Y: op.Y,
					Size: op.Size, Stroke: op.Width, Color: op.Color.String(),
				})
			}
		}
		doc.Pages[i] = jp
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode layout: %w", err)
	}
	return data, nil
}
