package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressBar(t *testing.T) {
	tests := []struct {
		name              string
		done, total, wide int
		want              string
	}{
		{name: "empty list", done: 0, total: 0, wide: 10, want: "░░░░░░░░░░   0%"},
		{name: "half", done: 1, total: 2, wide: 10, want: "█████░░░░░  50%"},
		{name: "full", done: 3, total: 3, wide: 5, want: "█████ 100%"},
		{name: "width clamped", done: 1, total: 1, wide: 2, want: "█████ 100%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProgressBar(tt.done, tt.total, tt.wide))
		})
	}
}

func TestPanelContainsLines(t *testing.T) {
	SetTheme("mono")
	defer SetTheme("classic")

	out := Panel([]string{"hello", "world"})
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "world")
	assert.True(t, strings.HasPrefix(out, "┌"), "mono uses the normal border: %q", out)
}

func TestSetTheme(t *testing.T) {
	defer SetTheme("classic")

	SetTheme("mono")
	assert.Equal(t, "[x]", Current().BoxChecked)

	SetTheme("NEON")
	assert.Equal(t, "◼", Current().BoxChecked)

	SetTheme("nope")
	assert.Equal(t, "☑", Current().BoxChecked)
}

func TestStatusLines(t *testing.T) {
	SetTheme("mono")
	defer SetTheme("classic")

	var buf bytes.Buffer
	OK(&buf, "added")
	Fail(&buf, "boom")
	Hint(&buf, "try again")

	assert.Equal(t, "x added\n✖ boom\ntry again\n", buf.String())
}
