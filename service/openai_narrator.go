package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"debt-planner/domain"
	"debt-planner/payoff"
)

const defaultOpenAIURL = "https://api.openai.com/v1/chat/completions"

type OpenAIRequest struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens,omitempty"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type OpenAIResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// OpenAINarrator explains comparisons through the chat completions API.
type OpenAINarrator struct {
	apiKey         string
	apiURL         string
	model          string
	currencySymbol string
	httpClient     *http.Client
}

func NewOpenAINarrator(apiKey, model, currencySymbol string) *OpenAINarrator {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAINarrator{
		apiKey:         apiKey,
		apiURL:         defaultOpenAIURL,
		model:          model,
		currencySymbol: currencySymbol,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (n *OpenAINarrator) NarrateComparison(ctx context.Context, c domain.ComparisonResult) (string, error) {
	if n.apiKey == "" {
		return "", fmt.Errorf("openai narrator: no API key configured")
	}
	return n.callLLM(ctx, n.comparisonPrompt(c))
}

func (n *OpenAINarrator) comparisonPrompt(c domain.ComparisonResult) string {
	return fmt.Sprintf(`Explain this debt payoff comparison clearly and encouragingly.

SNOWBALL (smallest balance first):
- Months to debt-free: %d
- Total interest: %s
- Payoff order: %s

AVALANCHE (highest interest rate first):
- Months to debt-free: %d
- Total interest: %s
- Payoff order: %s

Interest saved by avalanche: %s
Months saved by avalanche: %d
Recommendation: %s

Write 3-4 sentences that explain which method fits the borrower and why, quoting the numbers above.`,
		c.Snowball.TotalMonths, payoff.FormatMoney(n.currencySymbol, c.Snowball.TotalInterest), strings.Join(c.Snowball.PayoffOrder, ", "),
		c.Avalanche.TotalMonths, payoff.FormatMoney(n.currencySymbol, c.Avalanche.TotalInterest), strings.Join(c.Avalanche.PayoffOrder, ", "),
		payoff.FormatMoney(n.currencySymbol, c.InterestSaved), c.TimeSavedMonths, c.Recommendation)
}

func (n *OpenAINarrator) callLLM(ctx context.Context, prompt string) (string, error) {
	reqBody := OpenAIRequest{
		Model: n.model,
		Messages: []Message{
			{
				Role:    "system",
				Content: "You are a personal finance advisor. You explain debt repayment plans in plain, motivating language and never invent numbers.",
			},
			{
				Role:    "user",
				Content: prompt,
			},
		},
		MaxTokens: 300,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+n.apiKey)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var openAIResp OpenAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&openAIResp); err != nil {
		return "", err
	}

	if len(openAIResp.Choices) == 0 {
		return "", fmt.Errorf("no response from AI")
	}

	return strings.TrimSpace(openAIResp.Choices[0].Message.Content), nil
}
