package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"debt-planner/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleComparison() domain.ComparisonResult {
	return domain.ComparisonResult{
		Snowball:        domain.StrategyResult{TotalMonths: 30, TotalInterest: dec("9000"), PayoffOrder: []string{"car", "card"}},
		Avalanche:       domain.StrategyResult{TotalMonths: 29, TotalInterest: dec("7500"), PayoffOrder: []string{"card", "car"}},
		InterestSaved:   dec("1500"),
		TimeSavedMonths: 1,
		Recommendation:  "Avalanche method recommended.",
	}
}

func newTestNarrator(t *testing.T, handler http.HandlerFunc) *OpenAINarrator {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	narrator := NewOpenAINarrator("test-key", "test-model", "$")
	narrator.apiURL = server.URL
	return narrator
}

func TestOpenAINarrator_Success(t *testing.T) {
	var got OpenAIRequest
	narrator := newTestNarrator(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  Pick avalanche.  "}}]}`))
	})

	text, err := narrator.NarrateComparison(context.Background(), sampleComparison())

	require.NoError(t, err)
	assert.Equal(t, "Pick avalanche.", text)
	assert.Equal(t, "test-model", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Contains(t, got.Messages[1].Content, "$9,000.00")
	assert.Contains(t, got.Messages[1].Content, "card, car")
	assert.Contains(t, got.Messages[1].Content, "Avalanche method recommended.")
}

func TestOpenAINarrator_DefaultModel(t *testing.T) {
	assert.Equal(t, "gpt-4o-mini", NewOpenAINarrator("key", "", "$").model)
}

func TestOpenAINarrator_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		errText string
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "upstream down", http.StatusInternalServerError)
			},
			errText: "status 500",
		},
		{
			name: "no choices",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"choices":[]}`))
			},
			errText: "no response",
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`not json`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			narrator := newTestNarrator(t, tt.handler)

			_, err := narrator.NarrateComparison(context.Background(), sampleComparison())

			require.Error(t, err)
			if tt.errText != "" {
				assert.Contains(t, err.Error(), tt.errText)
			}
		})
	}
}

func TestOpenAINarrator_MissingKey(t *testing.T) {
	called := false
	narrator := newTestNarrator(t, func(w http.ResponseWriter, _ *http.Request) {
		called = true
	})
	narrator.apiKey = ""

	_, err := narrator.NarrateComparison(context.Background(), sampleComparison())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no API key")
	assert.False(t, called)
}

func TestDebtStrategyService_OpenAIFailureFallsBack(t *testing.T) {
	narrator := newTestNarrator(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream down", http.StatusInternalServerError)
	})

	result, err := newTestService(nil, narrator).Compare(context.Background(), portfolio())

	require.NoError(t, err)
	expected, _ := FallbackNarrator{CurrencySymbol: "₹"}.NarrateComparison(context.Background(), result.Comparison)
	assert.Equal(t, expected, result.Explanation)
}
