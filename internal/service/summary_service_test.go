package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fieldsales-backend/internal/analytics"
	"fieldsales-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeDisabledWithoutURL(t *testing.T) {
	svc := NewSummaryService("", "", "gpt-4o-mini", time.Second)
	_, err := svc.Summarize(context.Background(), analytics.KPIReport{}, nil)
	assert.ErrorIs(t, err, ErrSummaryDisabled)
}

func TestSummarizeReturnsNarrative(t *testing.T) {
	var gotBody chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "  Bonne dynamique ce mois-ci. "}},
			},
		})
	}))
	defer srv.Close()

	svc := NewSummaryService(srv.URL, "test-key", "gpt-4o-mini", time.Second)
	report := analytics.KPIReport{Current: analytics.PeriodMetrics{Visits: 12, Purchases: 4, Revenue: 8000}}
	rollups := []analytics.CustomerRollup{
		{Representative: domain.Visit{CustomerName: "Café du Port", City: "Casablanca"}, VisitCount: 3, TotalPrice: 4500},
	}

	got, err := svc.Summarize(context.Background(), report, rollups)
	require.NoError(t, err)
	assert.Equal(t, "Bonne dynamique ce mois-ci.", got)
	assert.Equal(t, "gpt-4o-mini", gotBody.Model)
	require.Len(t, gotBody.Messages, 2)
	assert.Contains(t, gotBody.Messages[1].Content, "Café du Port")
}

func TestSummarizeSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]string{"message": "rate limited"}})
	}))
	defer srv.Close()

	svc := NewSummaryService(srv.URL, "k", "m", time.Second)
	_, err := svc.Summarize(context.Background(), analytics.KPIReport{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestSummarizeTruncatesRows(t *testing.T) {
	var gotBody chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]string{"content": "ok"}}},
		})
	}))
	defer srv.Close()

	rollups := make([]analytics.CustomerRollup, maxSummaryRows+20)
	for i := range rollups {
		rollups[i].Representative.CustomerName = "C"
	}
	svc := NewSummaryService(srv.URL, "k", "m", time.Second)
	_, err := svc.Summarize(context.Background(), analytics.KPIReport{}, rollups)
	require.NoError(t, err)

	lines := 0
	for _, c := range gotBody.Messages[1].Content {
		if c == '\n' {
			lines++
		}
	}
	// header + intro + at most maxSummaryRows client lines
	assert.LessOrEqual(t, lines, maxSummaryRows+2)
}
