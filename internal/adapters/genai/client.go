// Package genai calls the deployed question-generator and explanation
// endpoints. Both are plain JSON-over-HTTP callables; the model and
// prompt live behind them, not here.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"quizroom/internal/domain"
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type generateRequest struct {
	Topic   string `json:"topic"`
	Subject string `json:"subject,omitempty"`
	Grade   string `json:"grade,omitempty"`
	Count   int    `json:"count"`
}

type generatedQuestion struct {
	Text         string   `json:"text"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Marks        int      `json:"marks"`
	TimeLimitSec int      `json:"timeLimit"`
	Explanation  string   `json:"explanation,omitempty"`
}

type generateResponse struct {
	Questions []generatedQuestion `json:"questions"`
}

// GenerateQuestions asks the callable for count questions on a topic and
// maps them into domain questions with fresh ids. Generator output that
// does not survive validation is rejected here, not downstream.
func (c *Client) GenerateQuestions(ctx context.Context, topic, subject, grade string, count int) ([]domain.Question, error) {
	var resp generateResponse
	err := c.post(ctx, "/v1/questions/generate", generateRequest{
		Topic:   topic,
		Subject: subject,
		Grade:   grade,
		Count:   count,
	}, &resp)
	if err != nil {
		return nil, err
	}

	questions := make([]domain.Question, 0, len(resp.Questions))
	for i, gq := range resp.Questions {
		q := domain.Question{
			ID:           uuid.NewString(),
			Text:         gq.Text,
			Marks:        gq.Marks,
			TimeLimitSec: gq.TimeLimitSec,
			Explanation:  gq.Explanation,
		}
		if q.Marks <= 0 {
			q.Marks = 1
		}
		if q.TimeLimitSec <= 0 {
			q.TimeLimitSec = 30
		}
		for _, text := range gq.Options {
			q.Options = append(q.Options, domain.Option{ID: uuid.NewString(), Text: text})
		}
		if gq.CorrectIndex < 0 || gq.CorrectIndex >= len(q.Options) {
			return nil, fmt.Errorf("generated question %d: correct index %d out of range", i, gq.CorrectIndex)
		}
		q.CorrectOption = q.Options[gq.CorrectIndex].ID
		if err := domain.ValidateQuestion(&q); err != nil {
			return nil, fmt.Errorf("generated question %d: %w", i, err)
		}
		questions = append(questions, q)
	}
	return questions, nil
}

type explainRequest struct {
	Question       string   `json:"question"`
	Options        []string `json:"options"`
	CorrectOption  string   `json:"correctOption"`
	SelectedOption string   `json:"selectedOption,omitempty"`
}

type explainResponse struct {
	Explanation string `json:"explanation"`
}

// Explain produces freeform explanation text for a question and the
// option the player picked.
func (c *Client) Explain(ctx context.Context, q domain.Question, selectedOption string) (string, error) {
	req := explainRequest{Question: q.Text}
	for _, opt := range q.Options {
		req.Options = append(req.Options, opt.Text)
		if opt.ID == q.CorrectOption {
			req.CorrectOption = opt.Text
		}
		if opt.ID == selectedOption {
			req.SelectedOption = opt.Text
		}
	}
	var resp explainResponse
	if err := c.post(ctx, "/v1/questions/explain", req, &resp); err != nil {
		return "", err
	}
	return resp.Explanation, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("call %s: unexpected status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
