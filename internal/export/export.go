// Package export renders a todo list for use outside the app.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/todokit/internal/model"
)

var ErrUnknownFormat = errors.New("unknown export format")

// Formats lists the accepted format names.
func Formats() []string { return []string{"json", "yaml", "pdf"} }

// Write encodes items to w in the named format.
func Write(w io.Writer, format string, items []model.Item) error {
	if items == nil {
		items = []model.Item{}
	}
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(items); err != nil {
			return err
		}
		return enc.Close()
	case "pdf":
		return writePDF(w, items)
	}
	return fmt.Errorf("%w %q (want one of %s)", ErrUnknownFormat, format, strings.Join(Formats(), ", "))
}

func writePDF(w io.Writer, items []model.Item) error {
	active, completed := model.Count(items)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Todos")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(40, 6, fmt.Sprintf("%d open, %d done, %d total", active, completed, len(items)))
	pdf.Ln(10)

	// Core fonts are cp1252; translate so accented titles survive.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	for _, it := range items {
		pdf.MultiCell(0, 6, tr(row(it)), "0", "L", false)
	}
	return pdf.Output(w)
}

// row is one report line. The number is the item's position in the full
// list, matching what `todo ls` shows, so filtered reports stay usable.
func row(it model.Item) string {
	box := "[ ]"
	if it.Completed {
		box = "[x]"
	}
	return fmt.Sprintf("%2d. %s %s", it.ID+1, box, it.Title)
}
