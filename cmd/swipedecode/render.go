package main

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/rbscholtus/swipedecode/internal/gesture"
)

// renderResult prints ranked candidates as a terminal table, mirroring the
// teacher's ranking-table conventions (rounded style, right-aligned
// numerics, a title summarising run diagnostics).
func renderResult(result gesture.RankedResult, elapsed time.Duration) {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Box.PaddingLeft = ""
	tw.Style().Box.PaddingRight = ""
	tw.Style().Title.Align = text.AlignLeft

	title := fmt.Sprintf("Decode Result (%d candidates, %s)", len(result.Candidates), elapsed.Round(time.Microsecond))
	if result.Ambiguous {
		title += " [ambiguous]"
	}
	tw.SetTitle(title)

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Name: "#", Align: text.AlignRight},
		{Name: "Word", Align: text.AlignLeft},
		{Name: "Score", Align: text.AlignRight},
		{Name: "Freq", Align: text.AlignRight},
		{Name: "Coverage", Align: text.AlignRight},
		{Name: "Coherence", Align: text.AlignRight},
		{Name: "VtxPenalty", Align: text.AlignRight},
	})
	tw.AppendHeader(table.Row{"#", "Word", "Score", "Freq", "Coverage", "Coherence", "VtxPenalty"})

	for i, c := range result.Candidates {
		tw.AppendRow(table.Row{
			i + 1,
			c.Word,
			fmt.Sprintf("%.4f", c.Score),
			fmt.Sprintf("%.0f", c.BaseFrequency),
			fmt.Sprintf("%.2f", c.PathCoverage),
			fmt.Sprintf("%.2f", c.PathCoherence),
			fmt.Sprintf("%.2f", c.VertexPenalty),
		})
	}

	fmt.Println(tw.Render())
}
