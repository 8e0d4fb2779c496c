package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	hesabna "github.com/mohammedsaidi/hisabna-app-v2"
	"google.golang.org/genai"
)

// model is the Gemini model every advisory call uses.
const model = "gemini-2.5-flash"

// Gemini implements Advisor against the Gemini API. All errors are logged
// and swallowed into neutral values: advice must never block the ledger.
type Gemini struct {
	client *genai.Client
}

var _ Advisor = (*Gemini)(nil)

// NewGemini creates a Gemini advisor. The API key is read from the
// GEMINI_API_KEY environment variable by the client itself.
func NewGemini(ctx context.Context) (*Gemini, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Gemini{client: client}, nil
}

// generate runs one structured-output call and returns the raw JSON text.
func (g *Gemini) generate(ctx context.Context, schema *genai.Schema, parts ...*genai.Part) (string, bool) {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	}
	contents := []*genai.Content{{Role: genai.RoleUser, Parts: parts}}
	resp, err := g.client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		log.Printf("advisor: %v", err)
		return "", false
	}
	text := resp.Text()
	if text == "" {
		log.Print("advisor: empty response")
		return "", false
	}
	return text, true
}

// txPayload is the transaction projection sent to the model. Invoice
// attachments and internal ids stay local.
type txPayload struct {
	Date        string  `json:"date"`
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

func payload(txs []hesabna.Transaction) string {
	rows := make([]txPayload, 0, len(txs))
	for _, t := range txs {
		rows = append(rows, txPayload{
			Date:        t.Date.Format(hesabna.DateFormat),
			Type:        string(t.Type),
			Category:    t.Category,
			Description: t.Description,
			Amount:      t.Amount.InexactFloat64(),
		})
	}
	b, _ := json.Marshal(rows)
	return string(b)
}

func (g *Gemini) SuggestCategory(ctx context.Context, description string, categories []string) string {
	if strings.TrimSpace(description) == "" {
		return ""
	}
	schema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"category": {Type: genai.TypeString},
		},
		Required: []string{"category"},
	}
	prompt := fmt.Sprintf(
		"Pick the best matching expense category for this transaction description.\n"+
			"Description: %q\nCategories: %s\n"+
			"Answer with one category from the list, verbatim.",
		description, strings.Join(categories, ", "))
	text, ok := g.generate(ctx, schema, genai.NewPartFromText(prompt))
	if !ok {
		return ""
	}
	var out struct {
		Category string `json:"category"`
	}
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		log.Printf("advisor: bad category response: %v", err)
		return ""
	}
	// only accept a known category, the model occasionally invents one
	for _, c := range categories {
		if strings.EqualFold(out.Category, c) {
			return c
		}
	}
	return ""
}

func (g *Gemini) SuggestBudgets(ctx context.Context, txs []hesabna.Transaction, categories []string) []hesabna.Budget {
	if len(txs) == 0 {
		return nil
	}
	schema := &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"category": {Type: genai.TypeString},
				"limit":    {Type: genai.TypeNumber},
			},
			Required: []string{"category", "limit"},
		},
	}
	prompt := fmt.Sprintf(
		"Suggest a realistic monthly budget limit for each of these expense categories,\n"+
			"based on the spending history below. Round limits to sensible values.\n"+
			"Categories: %s\nTransactions: %s",
		strings.Join(categories, ", "), payload(txs))
	text, ok := g.generate(ctx, schema, genai.NewPartFromText(prompt))
	if !ok {
		return nil
	}
	var rows []struct {
		Category string  `json:"category"`
		Limit    float64 `json:"limit"`
	}
	if err := json.Unmarshal([]byte(text), &rows); err != nil {
		log.Printf("advisor: bad budget response: %v", err)
		return nil
	}
	var out []hesabna.Budget
	for _, r := range rows {
		if r.Category == "" || r.Limit < 0 {
			continue
		}
		out = append(out, hesabna.Budget{Category: r.Category, Limit: hesabna.A(r.Limit)})
	}
	return out
}

func (g *Gemini) AnalyzeSpending(ctx context.Context, txs []hesabna.Transaction) string {
	if len(txs) == 0 {
		return ""
	}
	schema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"analysis": {Type: genai.TypeString},
		},
		Required: []string{"analysis"},
	}
	prompt := "Analyze this spending history. Point out the dominant categories, any unusual " +
		"spikes and one concrete saving opportunity. Answer in short markdown.\n" +
		"Transactions: " + payload(txs)
	text, ok := g.generate(ctx, schema, genai.NewPartFromText(prompt))
	if !ok {
		return ""
	}
	var out struct {
		Analysis string `json:"analysis"`
	}
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		log.Printf("advisor: bad analysis response: %v", err)
		return ""
	}
	return out.Analysis
}

func (g *Gemini) PlanScenario(ctx context.Context, query string, snapshot Snapshot) *Plan {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	snap, _ := json.Marshal(snapshot)
	schema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":           {Type: genai.TypeString},
			"summary":         {Type: genai.TypeString},
			"impact":          {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"recommendations": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		},
		Required: []string{"title", "summary"},
	}
	prompt := fmt.Sprintf(
		"You are a financial planner. Project this what-if scenario against the\n"+
			"financial snapshot and describe the impact and your recommendations.\n"+
			"Scenario: %s\nSnapshot: %s", query, snap)
	text, ok := g.generate(ctx, schema, genai.NewPartFromText(prompt))
	if !ok {
		return nil
	}
	var plan Plan
	if err := json.Unmarshal([]byte(text), &plan); err != nil {
		log.Printf("advisor: bad plan response: %v", err)
		return nil
	}
	if plan.Title == "" && plan.Summary == "" {
		return nil
	}
	return &plan
}

func (g *Gemini) EstimateEmergencyFund(ctx context.Context, txs []hesabna.Transaction) *EmergencyFundEstimate {
	cutoff := time.Now().AddDate(0, -3, 0)
	var recent []hesabna.Transaction
	for _, t := range txs {
		if t.Type == hesabna.Expense && !t.IsRecurring && t.Date.After(cutoff) {
			recent = append(recent, t)
		}
	}
	if len(recent) < minEstimateTxs {
		return nil
	}
	schema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"essentialCategories": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"monthlyEssentials":   {Type: genai.TypeNumber},
			"threeMonthTarget":    {Type: genai.TypeNumber},
			"sixMonthTarget":      {Type: genai.TypeNumber},
		},
		Required: []string{"monthlyEssentials", "threeMonthTarget", "sixMonthTarget"},
	}
	prompt := "From these last three months of expenses, identify the essential categories\n" +
		"(housing, food, utilities, transport, health and the like), compute the average\n" +
		"essential monthly spend and derive three and six month emergency fund targets.\n" +
		"Transactions: " + payload(recent)
	text, ok := g.generate(ctx, schema, genai.NewPartFromText(prompt))
	if !ok {
		return nil
	}
	var est EmergencyFundEstimate
	if err := json.Unmarshal([]byte(text), &est); err != nil {
		log.Printf("advisor: bad estimate response: %v", err)
		return nil
	}
	if est.MonthlyEssentials <= 0 {
		return nil
	}
	return &est
}

func (g *Gemini) HealthTips(ctx context.Context, score hesabna.HealthScore) *HealthTips {
	breakdown, _ := json.Marshal(map[string]int{
		"total":           score.Total,
		"savingsRate":     score.SavingsRate.Score,
		"debtLoad":        score.DebtLoad.Score,
		"emergencyFund":   score.EmergencyFund.Score,
		"incomeDiversity": score.IncomeDiversity.Score,
	})
	schema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"summary": {Type: genai.TypeString},
			"tips":    {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		},
		Required: []string{"summary", "tips"},
	}
	prompt := fmt.Sprintf(
		"This is a financial health score out of 100, with per-factor points out of 25.\n"+
			"Give a one-paragraph summary and 3 short, concrete tips targeting the weakest\n"+
			"factors first.\nScore: %s", breakdown)
	text, ok := g.generate(ctx, schema, genai.NewPartFromText(prompt))
	if !ok {
		return nil
	}
	var tips HealthTips
	if err := json.Unmarshal([]byte(text), &tips); err != nil {
		log.Printf("advisor: bad tips response: %v", err)
		return nil
	}
	return &tips
}

func (g *Gemini) DetectSubscriptions(ctx context.Context, txs []hesabna.Transaction) []hesabna.Subscription {
	var candidates []hesabna.Transaction
	for _, t := range txs {
		if t.Type == hesabna.Expense && !t.IsRecurring && t.SubscriptionID == "" {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) < minDetectTxs {
		return nil
	}
	schema := &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"name":      {Type: genai.TypeString},
				"amount":    {Type: genai.TypeNumber},
				"frequency": {Type: genai.TypeString, Enum: []string{"monthly", "yearly"}},
				"category":  {Type: genai.TypeString},
			},
			Required: []string{"name", "amount", "frequency"},
		},
	}
	prompt := "Find likely subscriptions in this expense history: the same merchant billed\n" +
		"at a regular monthly or yearly cadence for a similar amount.\n" +
		"Transactions: " + payload(candidates)
	text, ok := g.generate(ctx, schema, genai.NewPartFromText(prompt))
	if !ok {
		return nil
	}
	var rows []struct {
		Name      string  `json:"name"`
		Amount    float64 `json:"amount"`
		Frequency string  `json:"frequency"`
		Category  string  `json:"category"`
	}
	if err := json.Unmarshal([]byte(text), &rows); err != nil {
		log.Printf("advisor: bad subscription response: %v", err)
		return nil
	}
	today := hesabna.Today()
	var out []hesabna.Subscription
	for _, r := range rows {
		if r.Name == "" || r.Amount <= 0 {
			continue
		}
		freq := hesabna.MonthlyFrequency
		if r.Frequency == string(hesabna.YearlyFrequency) {
			freq = hesabna.YearlyFrequency
		}
		category := r.Category
		if category == "" {
			category = hesabna.BillsCategory
		}
		next := today.AddMonths(1)
		if freq == hesabna.YearlyFrequency {
			next = today.AddYears(1)
		}
		out = append(out, hesabna.Subscription{
			Name:            r.Name,
			Amount:          hesabna.A(r.Amount),
			Frequency:       freq,
			NextPaymentDate: next,
			Category:        category,
		})
	}
	return out
}

func (g *Gemini) ParseInvoice(ctx context.Context, image []byte, mimeType string) *InvoiceDetails {
	if len(image) == 0 {
		return nil
	}
	schema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"merchant": {Type: genai.TypeString},
			"amount":   {Type: genai.TypeNumber},
			"date":     {Type: genai.TypeString, Description: "ISO-8601 date"},
			"category": {Type: genai.TypeString},
		},
		Required: []string{"merchant", "amount"},
	}
	parts := []*genai.Part{
		genai.NewPartFromText("Extract the merchant name, total amount, date and a plausible expense category from this receipt."),
		genai.NewPartFromBytes(image, mimeType),
	}
	text, ok := g.generate(ctx, schema, parts...)
	if !ok {
		return nil
	}
	// receipt extraction is the least reliable call, read the fields one by
	// one instead of trusting the whole shape
	var jobj any
	if err := json.Unmarshal([]byte(text), &jobj); err != nil {
		log.Printf("advisor: bad invoice response: %v", err)
		return nil
	}
	details := &InvoiceDetails{}
	if v, err := jsonpath.Get("$.merchant", jobj); err == nil {
		details.Merchant, _ = v.(string)
	}
	if v, err := jsonpath.Get("$.amount", jobj); err == nil {
		details.Amount, _ = v.(float64)
	}
	if v, err := jsonpath.Get("$.date", jobj); err == nil {
		details.Date, _ = v.(string)
	}
	if v, err := jsonpath.Get("$.category", jobj); err == nil {
		details.Category, _ = v.(string)
	}
	if details.Merchant == "" && details.Amount == 0 {
		return nil
	}
	return details
}
