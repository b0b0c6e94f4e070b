package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/resilia-ai/backend/internal/config"
	"github.com/resilia-ai/backend/internal/domain"
)

// AIClient talks to the two external AI capabilities: the emotion classifier
// sidecar and the generative text service. Each call is attempted once; every
// failure wraps domain.ErrUpstreamUnavailable so callers can apply their own
// fallback per stage.
type AIClient struct {
	emotionServiceURL string
	generateURL       string
	apiKey            string
	httpClient        *http.Client
}

func NewAIClient(emotionServiceURL, generateURL, apiKey string) *AIClient {
	return &AIClient{
		emotionServiceURL: emotionServiceURL,
		generateURL:       generateURL,
		apiKey:            apiKey,
		httpClient:        &http.Client{Timeout: config.AIRequestTimeout},
	}
}

type analyzeRequest struct {
	Message string `json:"message"`
}

type analyzeResponse struct {
	Emotion string `json:"emotion"`
}

// AnalyzeEmotion asks the classifier for the dominant emotion of text.
// The returned label is normalized to upper case.
func (c *AIClient) AnalyzeEmotion(ctx context.Context, text string) (string, error) {
	payload, err := json.Marshal(analyzeRequest{Message: text})
	if err != nil {
		return "", fmt.Errorf("encode analyze request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.emotionServiceURL+"/analyze", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create analyze request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call emotion service: %w: %w", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("emotion service status %d: %w", resp.StatusCode, domain.ErrUpstreamUnavailable)
	}

	var result analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode analyze response: %w: %w", domain.ErrUpstreamUnavailable, err)
	}
	if result.Emotion == "" {
		return "", fmt.Errorf("emotion service returned no label: %w", domain.ErrUpstreamUnavailable)
	}

	return strings.ToUpper(result.Emotion), nil
}

type generatePart struct {
	Text string `json:"text"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generateRequest struct {
	Contents []generateContent `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []generatePart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateReply asks the generative service for a companion reply tuned to
// the detected emotion. A success response without the expected nested fields
// yields an empty reply and nil error; the caller decides what to do with it.
func (c *AIClient) GenerateReply(ctx context.Context, emotion, priorContext, text string) (string, error) {
	prompt := buildCompanionPrompt(emotion, priorContext, text)
	payload, err := json.Marshal(generateRequest{
		Contents: []generateContent{{Parts: []generatePart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("encode generate request: %w", err)
	}

	url := c.generateURL + "?key=" + strings.TrimSpace(c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call generative service: %w: %w", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("generative service status %d (%s): %w", resp.StatusCode, strings.TrimSpace(string(body)), domain.ErrUpstreamUnavailable)
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode generate response: %w: %w", domain.ErrUpstreamUnavailable, err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return strings.TrimSpace(result.Candidates[0].Content.Parts[0].Text), nil
}

func buildCompanionPrompt(emotion, priorContext, text string) string {
	var sb strings.Builder
	sb.WriteString("System: You are Resilia Ai, a compassionate mental health companion. ")
	sb.WriteString("The user is feeling: " + emotion + ". ")
	sb.WriteString("Adjust your tone to match this emotion. ")
	sb.WriteString("Keep your answer short (max 3 sentences). Always answer in English.")
	if priorContext != "" {
		sb.WriteString("\n\nContext: " + priorContext)
	}
	sb.WriteString("\n\nUser: " + text)
	return sb.String()
}
