package ui

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrinterPlainOutput(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Success("Session saved")
	p.Error("Could not save", errors.New("disk full"))
	p.Warning("No sessions")
	p.Info("Account", "main")

	out := buf.String()
	assert.Contains(t, out, "✓ Session saved\n")
	assert.Contains(t, out, "✗ Could not save: disk full\n")
	assert.Contains(t, out, "! No sessions\n")
	assert.Contains(t, out, "Account: main\n")
	assert.NotContains(t, out, "\x1b[", "no escape codes outside a terminal")
}

func TestPrinterErrorWithoutCause(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).Error("Failed", nil)
	assert.Equal(t, "✗ Failed\n", buf.String())
}

func TestPanel(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).Panel("limits:\n  follower_cap: 50\n")

	out := buf.String()
	assert.Contains(t, out, "╭")
	assert.Contains(t, out, "follower_cap: 50")
	assert.Contains(t, out, "╯")
}
