package render

import (
	"bytes"
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Entry is one language's translation progress, as reported by the
// localization service. Percentages are in [0, 100]. The service guarantees
// approval <= translation; this package does not enforce it.
type Entry struct {
	ID          string // language id, e.g. "de"
	Name        string // display name, e.g. "German"
	Translation int    // translation completion percentage
	Approval    int    // approval completion percentage
}

// Chart geometry. Height grows with the entry count; everything else is fixed.
const (
	chartWidth  = 600
	rowHeight   = 40
	labelWidth  = 220
	barHeight   = 16
	percentPad  = 46 // room for the trailing percent label
	trackColor  = "#e8e8e8"
	todoColor   = "#cccccc"
	transColor  = "#5d89c3"
	approvColor = "#71c837"
)

// Sorted returns the entries in chart order: descending approval, then
// descending translation, then ascending display name. If an entry's ID
// equals reference, it is moved to the front regardless of its sort
// position, so the reference language is always shown first.
func Sorted(entries []Entry, reference string) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)

	slices.SortFunc(out, func(a, b Entry) int {
		if c := cmp.Compare(b.Approval, a.Approval); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Translation, a.Translation); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})

	for i, e := range out {
		if e.ID == reference {
			out = append(out[:i], out[i+1:]...)
			out = append([]Entry{e}, out...)
			break
		}
	}
	return out
}

// ProgressSVG renders the per-language progress chart. Entries are sorted
// with [Sorted] before layout; each row is offset by its index times the
// fixed row height.
func ProgressSVG(entries []Entry, reference string) []byte {
	sorted := Sorted(entries, reference)
	height := len(sorted) * rowHeight

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		chartWidth, height, chartWidth, height)
	fmt.Fprintf(&buf, `  <style>text { font-family: sans-serif; font-size: 13px; fill: #333; }</style>`+"\n")

	for i, e := range sorted {
		renderRow(&buf, i, e)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderRow(buf *bytes.Buffer, row int, e Entry) {
	y := row * rowHeight
	barY := y + (rowHeight-barHeight)/2
	barW := chartWidth - labelWidth - percentPad
	textY := y + rowHeight/2 + 5

	fmt.Fprintf(buf, `  <text x="%d" y="%d" text-anchor="end">%s (%s)</text>`+"\n",
		labelWidth-10, textY, escape(e.Name), escape(e.ID))

	fmt.Fprintf(buf, `  <rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`+"\n",
		labelWidth, barY, barW, barHeight, trackColor)

	if e.Translation < 100 {
		fmt.Fprintf(buf, `  <rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`+"\n",
			labelWidth, barY, barW, barHeight, todoColor)
	}
	if e.Translation > 0 && e.Approval < 100 {
		fmt.Fprintf(buf, `  <rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`+"\n",
			labelWidth, barY, barW*e.Translation/100, barHeight, transColor)
	}
	if e.Approval > 0 {
		fmt.Fprintf(buf, `  <rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`+"\n",
			labelWidth, barY, barW*e.Approval/100, barHeight, approvColor)
	}

	fmt.Fprintf(buf, `  <text x="%d" y="%d">%d%%</text>`+"\n",
		labelWidth+barW+8, textY, e.Translation)
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escape(s string) string { return escaper.Replace(s) }
