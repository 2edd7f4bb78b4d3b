package export

import "deckforge/slides"

// RenderStatus classifies the outcome of rendering one frame.
type RenderStatus string

const (
	// RenderOK means the frame rendered as designed.
	RenderOK RenderStatus = "ok"
	// RenderFallback means the frame rendered in a degraded textual
	// form, e.g. a chart that could not be embedded natively.
	RenderFallback RenderStatus = "fallback"
	// RenderSkipped means the frame produced no output. Skips are
	// recorded and logged, never propagated: a bad image URL costs
	// one image, not the deck.
	RenderSkipped RenderStatus = "skipped"
)

// RenderResult records how a single frame fared during export.
type RenderResult struct {
	SlideID string
	FrameID string
	Kind    slides.BlockKind
	Status  RenderStatus
	Reason  string
}

// Artifact is a finished export: the serialized presentation plus the
// per-frame render results. Data is complete whenever the error return
// alongside it is nil; Results lets callers report degraded frames.
type Artifact struct {
	Data    []byte
	Results []RenderResult
}

// Skips returns only the non-ok results.
func (a *Artifact) Skips() []RenderResult {
	var out []RenderResult
	for _, r := range a.Results {
		if r.Status != RenderOK {
			out = append(out, r)
		}
	}
	return out
}
