// Package ai talks to an OpenAI-compatible chat completions API to
// generate structured career analyses.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"aurex/internal/config"
	"aurex/internal/observability"
)

// Generator produces a career analysis from a profile. Implemented by
// Client and by test stubs.
type Generator interface {
	GenerateAnalysis(ctx context.Context, req AnalysisRequest) (*Analysis, error)
}

// AnalysisRequest carries the user profile the model reasons over.
type AnalysisRequest struct {
	Name           string
	EducationLevel string
	EducationField string
	CareerGoals    string
	TimelineMonths *int
	ExistingSkills []string
}

// Recommendation is a single suggested career direction.
type Recommendation struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	MatchScore  int    `json:"matchScore,omitempty"`
}

// ProgressionStep is one stage of the suggested career path.
type ProgressionStep struct {
	Role            string `json:"role"`
	TimeframeMonths int    `json:"timeframeMonths"`
	Description     string `json:"description"`
}

// SkillGap names a skill the user should acquire.
type SkillGap struct {
	Skill      string   `json:"skill"`
	Type       string   `json:"type"`
	Importance string   `json:"importance"`
	Resources  []string `json:"resources,omitempty"`
}

// Analysis is the structured result stored on a career plan. Field names
// match the persisted JSON document, so they stay camelCase.
type Analysis struct {
	CareerRecommendations []Recommendation  `json:"careerRecommendations"`
	CareerProgression     []ProgressionStep `json:"careerProgression"`
	SkillGaps             []SkillGap        `json:"skillGaps"`
	TimelineMonths        int               `json:"timelineMonths"`
	Summary               string            `json:"summary"`
}

// DefaultAnalysis is the fallback used when generation fails. Plan
// creation never fails on AI errors.
func DefaultAnalysis() *Analysis {
	return &Analysis{
		CareerRecommendations: []Recommendation{},
		CareerProgression:     []ProgressionStep{},
		SkillGaps:             []SkillGap{},
		TimelineMonths:        24,
		Summary:               "Career analysis generated",
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	MaxTokens      int           `json:"max_tokens,omitempty"`
	ResponseFormat *respFormat   `json:"response_format,omitempty"`
}

type respFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Client calls a chat completions endpoint over HTTP.
type Client struct {
	endpoint   string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient builds a Client from application config.
func NewClient(cfg *config.Config) *Client {
	timeout := time.Duration(cfg.AITimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		endpoint:   cfg.AIEndpoint,
		apiKey:     cfg.AIAPIKey,
		model:      cfg.AIModel,
		httpClient: &http.Client{Timeout: timeout},
	}
}

const systemPrompt = "You are a career strategy assistant. Respond with a single JSON object " +
	"containing careerRecommendations, careerProgression, skillGaps, timelineMonths, and summary."

func buildPrompt(req AnalysisRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", req.Name)
	fmt.Fprintf(&b, "Education: %s in %s\n", req.EducationLevel, req.EducationField)
	fmt.Fprintf(&b, "Career goals: %s\n", req.CareerGoals)
	if req.TimelineMonths != nil {
		fmt.Fprintf(&b, "Desired timeline: %d months\n", *req.TimelineMonths)
	}
	if len(req.ExistingSkills) > 0 {
		fmt.Fprintf(&b, "Existing skills: %s\n", strings.Join(req.ExistingSkills, ", "))
	}
	b.WriteString("Produce a career analysis with recommendations, a progression path, and skill gaps.")
	return b.String()
}

// GenerateAnalysis sends the profile to the model and decodes the
// structured analysis it returns.
func (c *Client) GenerateAnalysis(ctx context.Context, req AnalysisRequest) (*Analysis, error) {
	start := time.Now()
	defer func() {
		observability.AnalysisLatency.Observe(time.Since(start).Seconds())
	}()

	body := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(req)},
		},
		ResponseFormat: &respFormat{Type: "json_object"},
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var completion chatResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return nil, fmt.Errorf("failed to decode API response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("no completion returned by the API")
	}

	var analysis Analysis
	if err := json.Unmarshal([]byte(completion.Choices[0].Message.Content), &analysis); err != nil {
		return nil, fmt.Errorf("failed to parse analysis JSON: %w", err)
	}
	if analysis.TimelineMonths <= 0 {
		analysis.TimelineMonths = 24
	}
	return &analysis, nil
}
