package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fieldsales-backend/internal/analytics"
	"github.com/go-resty/resty/v2"
)

var ErrSummaryDisabled = errors.New("summary service not configured")

// maxSummaryRows bounds how many client rows go into the prompt.
const maxSummaryRows = 40

// SummaryService asks an OpenAI-compatible chat endpoint for a narrative
// reading of the current dashboard numbers. It consumes a truncated slice
// of the same snapshot the engine uses and has no bearing on the numeric
// aggregates: a failure here surfaces as a message, never as corrupted
// KPIs.
type SummaryService struct {
	URL    string
	APIKey string
	Model  string
	Client *resty.Client
}

func NewSummaryService(url, apiKey, model string, timeout time.Duration) *SummaryService {
	return &SummaryService{
		URL:    url,
		APIKey: apiKey,
		Model:  model,
		Client: resty.New().SetTimeout(timeout),
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Summarize builds a compact prompt from the KPI report and the top
// client rollups and returns the model's narrative.
func (s *SummaryService) Summarize(ctx context.Context, report analytics.KPIReport, rollups []analytics.CustomerRollup) (string, error) {
	if s.URL == "" {
		return "", ErrSummaryDisabled
	}
	if len(rollups) > maxSummaryRows {
		rollups = rollups[:maxSummaryRows]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Période courante: %d visites, %d achats, %.2f de chiffre d'affaires, %d nouveaux clients (tendances: visites %s, CA %s).\n",
		report.Current.Visits, report.Current.Purchases, report.Current.Revenue,
		report.Current.NewClients, report.Trends.Visits, report.Trends.Revenue)
	b.WriteString("Clients (représentant le plus récent, totaux cumulés):\n")
	for _, r := range rollups {
		fmt.Fprintf(&b, "- %s (%s): %d visites, total %.2f, quantité %d\n",
			r.Representative.CustomerName, r.Representative.City, r.VisitCount, r.TotalPrice, r.TotalQuantity)
	}

	req := chatRequest{
		Model: s.Model,
		Messages: []chatMessage{
			{Role: "system", Content: "Tu es un analyste commercial. Résume l'activité terrain en quelques phrases claires, en français."},
			{Role: "user", Content: b.String()},
		},
	}

	var out chatResponse
	resp, err := s.Client.R().
		SetContext(ctx).
		SetAuthToken(s.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&out).
		Post(s.URL)
	if err != nil {
		return "", fmt.Errorf("summary request: %w", err)
	}
	if resp.IsError() {
		if out.Error != nil && out.Error.Message != "" {
			return "", fmt.Errorf("summary request: %s", out.Error.Message)
		}
		return "", fmt.Errorf("summary request: status %d", resp.StatusCode())
	}
	if len(out.Choices) == 0 {
		return "", errors.New("summary request: empty response")
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}
