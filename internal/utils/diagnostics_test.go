package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureDiag(level DiagnosticLevel, emit func(d *DiagnosticSystem)) string {
	d := NewDiagnosticSystem(level)
	d.useColors = false
	d.showTime = false
	var buf bytes.Buffer
	d.SetOutput(&buf)
	emit(d)
	return buf.String()
}

func TestDiagnosticLevelFiltering(t *testing.T) {
	out := captureDiag(DiagnosticError, func(d *DiagnosticSystem) {
		d.Error("bad: %s", "schema")
		d.Warn("suspicious")
		d.Info("background")
	})
	assert.Contains(t, out, "[ERROR] bad: schema")
	assert.NotContains(t, out, "suspicious")
	assert.NotContains(t, out, "background")
}

func TestDiagnosticVerboseShowsEverything(t *testing.T) {
	out := captureDiag(DiagnosticVerbose, func(d *DiagnosticSystem) {
		d.Warn("w")
		d.Info("i")
		d.Verbose("v")
		d.Debug("hidden")
	})
	assert.Contains(t, out, "[WARN] w")
	assert.Contains(t, out, "[INFO] i")
	assert.Contains(t, out, "[VERBOSE] v")
	assert.NotContains(t, out, "hidden")
}

func TestDiagnosticIndentation(t *testing.T) {
	out := captureDiag(DiagnosticInfo, func(d *DiagnosticSystem) {
		d.Info("outer")
		d.Indent()
		d.Info("inner")
		d.Unindent()
		d.Unindent() // never goes negative
		d.Info("outer again")
	})
	assert.Contains(t, out, "\n  [INFO] inner")
	assert.Contains(t, out, "\n[INFO] outer again")
}

func TestDiagnosticSectionsAndLists(t *testing.T) {
	out := captureDiag(DiagnosticInfo, func(d *DiagnosticSystem) {
		d.Section("Interfaces")
		d.List("%s (%d methods)", "UserAPI", 3)
	})
	assert.Contains(t, out, "Interfaces\n")
	assert.Contains(t, out, "- UserAPI (3 methods)")
}

func TestDiagnosticSilent(t *testing.T) {
	out := captureDiag(DiagnosticSilent, func(d *DiagnosticSystem) {
		d.Error("nope")
		d.Success("nope")
	})
	assert.Empty(t, out)
}
