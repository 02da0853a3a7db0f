// ABOUTME: JSON encoding for `validate --json`, hand-written against mailru/easyjson's
// ABOUTME: Marshaler interface since this repo has no go:generate step to run the easyjson tool

package main

import (
	"github.com/mailru/easyjson/jwriter"

	"github.com/githooks-go/githooks/internal/hookconfig"
	"github.com/githooks-go/githooks/internal/hookserrors"
)

// validateJSONReport is the --json shape for `githooks validate`: every
// diagnostic the loader produced, plus the import trace when
// --trace-imports was also given (nil otherwise).
type validateJSONReport struct {
	Diagnostics []hookserrors.Diagnostic
	Imports     []hookconfig.ImportRecord
}

func (v validateJSONReport) MarshalEasyJSON(w *jwriter.Writer) {
	w.RawByte('{')
	w.RawString(`"diagnostics":[`)
	for i, d := range v.Diagnostics {
		if i > 0 {
			w.RawByte(',')
		}
		marshalDiagnosticJSON(w, d)
	}
	w.RawString(`],"imports":[`)
	for i, rec := range v.Imports {
		if i > 0 {
			w.RawByte(',')
		}
		marshalImportRecordJSON(w, rec)
	}
	w.RawString(`]}`)
}

func marshalDiagnosticJSON(w *jwriter.Writer, d hookserrors.Diagnostic) {
	w.RawByte('{')
	w.RawString(`"kind":`)
	w.String(string(d.Kind))
	w.RawString(`,"severity":`)
	w.String(severityJSONName(d.Severity))
	w.RawString(`,"message":`)
	w.String(d.Message)
	w.RawString(`,"path":`)
	w.String(d.Path)
	w.RawString(`,"line":`)
	w.Int(d.Line)
	w.RawByte('}')
}

func severityJSONName(s hookserrors.Severity) string {
	switch s {
	case hookserrors.SeverityError:
		return "error"
	case hookserrors.SeverityWarning:
		return "warning"
	case hookserrors.SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

func marshalImportRecordJSON(w *jwriter.Writer, rec hookconfig.ImportRecord) {
	w.RawByte('{')
	w.RawString(`"path":`)
	w.String(rec.Path)
	w.RawString(`,"order":`)
	w.Int(rec.Order)
	w.RawString(`,"overridden_names":[`)
	for i, name := range rec.OverriddenNames {
		if i > 0 {
			w.RawByte(',')
		}
		w.String(name)
	}
	w.RawString(`]}`)
}
