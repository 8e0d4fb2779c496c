package renderer

import (
	"bytes"
	"fmt"

	hesabna "github.com/mohammedsaidi/hisabna-app-v2"
	"github.com/mohammedsaidi/hisabna-app-v2/advisor"
	md "github.com/nao1215/markdown"
)

// HealthMarkdown renders the financial health score breakdown, optionally
// followed by advisor tips.
func HealthMarkdown(h hesabna.HealthScore, tips *advisor.HealthTips) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("Financial Health: %d / 100", h.Total))

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignLeft},
		Header:    []string{"Factor", "Points", "Detail"},
	}
	table.Rows = append(table.Rows,
		[]string{"Savings rate", fmt.Sprintf("%d / 25", h.SavingsRate.Score), fmt.Sprintf("%.0f%% of income saved", h.SavingsRate.Value*100)},
		[]string{"Debt load", fmt.Sprintf("%d / 25", h.DebtLoad.Score), fmt.Sprintf("%.0f%% of income on debt payments", h.DebtLoad.Value*100)},
		[]string{"Emergency fund", fmt.Sprintf("%d / 25", h.EmergencyFund.Score), fmt.Sprintf("%.1f months covered", h.EmergencyFund.Value)},
		[]string{"Income diversity", fmt.Sprintf("%d / 25", h.IncomeDiversity.Score), fmt.Sprintf("%.0f income sources this month", h.IncomeDiversity.Value)},
	)
	doc.Table(table)

	if tips != nil {
		doc.H2("Advice")
		doc.PlainText(tips.Summary)
		for _, tip := range tips.Tips {
			doc.BulletList(tip)
		}
	}
	doc.Build()
	return buf.String()
}

// PlanMarkdown renders a what-if scenario projection.
func PlanMarkdown(p *advisor.Plan) string {
	if p == nil {
		return "No plan available.\n"
	}
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(p.Title)
	doc.PlainText(p.Summary)
	if len(p.Impact) > 0 {
		doc.H2("Impact")
		doc.BulletList(p.Impact...)
	}
	if len(p.Recommendations) > 0 {
		doc.H2("Recommendations")
		doc.BulletList(p.Recommendations...)
	}
	doc.Build()
	return buf.String()
}

// EstimateMarkdown renders an emergency fund estimate.
func EstimateMarkdown(e *advisor.EmergencyFundEstimate) string {
	if e == nil {
		return "Not enough spending history to size an emergency fund.\n"
	}
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Emergency Fund Estimate")
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"", ""},
		Rows: [][]string{
			{"Essential monthly spend", hesabna.A(e.MonthlyEssentials).String()},
			{"3-month target", hesabna.A(e.ThreeMonthTarget).String()},
			{"6-month target", hesabna.A(e.SixMonthTarget).String()},
		},
	}
	doc.Table(table)
	if len(e.EssentialCategories) > 0 {
		doc.H2("Essential Categories")
		doc.BulletList(e.EssentialCategories...)
	}
	doc.Build()
	return buf.String()
}
