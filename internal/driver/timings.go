package driver

import (
	"encoding/json"
	"fmt"

	"tint/internal/diag"
	"tint/internal/observ"
	"tint/internal/source"
)

type timingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// appendTimingDiagnostic records the phase timings of a run as an info
// diagnostic at the empty span of its file. The note carries the JSON
// payload.
func appendTimingDiagnostic(bag *diag.Bag, span source.Span, payload timingPayload) {
	if bag == nil {
		return
	}
	if payload.Kind == "" {
		payload.Kind = "file"
	}
	msg := fmt.Sprintf("timings (%s): total %.2f ms", payload.Kind, payload.TotalMS)
	if payload.Path != "" {
		msg = fmt.Sprintf("%s, %s", msg, payload.Path)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	entry := diag.Diagnostic{
		Severity: diag.SevInfo,
		Code:     diag.ObsTimings,
		Message:  msg,
		Primary:  span,
		Notes: []diag.Note{
			{Span: span, Msg: string(data)},
		},
	}

	if bag.Add(entry) {
		return
	}
	// a full bag still gets its timings
	overflow := diag.NewBag(1)
	overflow.Add(entry)
	bag.Merge(overflow)
}
