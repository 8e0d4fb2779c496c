package renderer

import (
	"bytes"
	"fmt"
	"time"

	hesabna "github.com/mohammedsaidi/hisabna-app-v2"
	md "github.com/nao1215/markdown"
)

// BudgetMarkdown renders the monthly budget report. At-risk lines carry a
// warning marker so they stand out even in plain terminals.
func BudgetMarkdown(ref time.Time, lines []hesabna.BudgetLine) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("Budget Report %s", ref.Format("January 2006")))
	if len(lines) == 0 {
		doc.PlainText("No expense categories.")
		doc.Build()
		return buf.String()
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignLeft,
		},
		Header: []string{"Category", "Limit", "Spent", "Used", "Status"},
	}
	for _, line := range lines {
		used, status := "", "ok"
		switch {
		case line.Limit.IsZero():
			status = "no limit"
		case line.AtRisk && line.Ratio >= 1:
			used, status = fmt.Sprintf("%.0f%%", line.Ratio*100), "OVER"
		case line.AtRisk:
			used, status = fmt.Sprintf("%.0f%%", line.Ratio*100), "at risk"
		default:
			used = fmt.Sprintf("%.0f%%", line.Ratio*100)
		}
		table.Rows = append(table.Rows, []string{
			line.Category, line.Limit.String(), line.Spent.String(), used, status,
		})
	}
	doc.Table(table)
	doc.Build()
	return buf.String()
}
