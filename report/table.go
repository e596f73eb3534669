// Package report renders explanation results for terminals (tables) and for
// other programs (protobuf Struct, binary or JSON encoded).
package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// DocumentRow is one explained document, already resolved to words.
type DocumentRow struct {
	ID        string
	Label     string // true label, may be empty
	Predicted string
	Sign      int    // prediction sign: +1 iff Predicted is the positive class
	Tokens    []string
	Scores    []float64
}

// PatternRow lists the strongest global terms of one class.
type PatternRow struct {
	Class   string
	Terms   []string
	Weights []float64
}

// formatFloat keeps tables narrow.
func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) }

// WriteDocuments renders one row per document: id, label, prediction, sign
// and the top tokens with their relevance.
func WriteDocuments(w io.Writer, rows []DocumentRow) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Document", "Label", "Predicted", "Sign", "Top tokens"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)

	for _, r := range rows {
		parts := make([]string, len(r.Tokens))
		for i, t := range r.Tokens {
			parts[i] = t + " (" + formatFloat(r.Scores[i]) + ")"
		}
		table.Append([]string{r.ID, r.Label, r.Predicted, strconv.Itoa(r.Sign), strings.Join(parts, ", ")})
	}
	table.Render()
}

// WritePattern renders rank × class, each cell "term (weight)".
func WritePattern(w io.Writer, rows []PatternRow) {
	table := tablewriter.NewWriter(w)
	header := []string{"Rank"}
	depth := 0
	for _, r := range rows {
		header = append(header, r.Class)
		if len(r.Terms) > depth {
			depth = len(r.Terms)
		}
	}
	table.SetHeader(header)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for k := 0; k < depth; k++ {
		line := []string{strconv.Itoa(k + 1)}
		for _, r := range rows {
			cell := ""
			if k < len(r.Terms) {
				cell = r.Terms[k] + " (" + formatFloat(r.Weights[k]) + ")"
			}
			line = append(line, cell)
		}
		table.Append(line)
	}
	table.Render()
}
