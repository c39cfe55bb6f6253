package openai

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joseph-ayodele/decisions-extractor/internal/common"
	"github.com/joseph-ayodele/decisions-extractor/internal/llm"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Temperature    float32         `json:"temperature"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete implements llm.Completer with a single chat/completions request.
// Every failure is logged here and reported as ("", false).
func (c *Client) Complete(ctx context.Context, prompt string) (string, bool) {
	rid := uuid.New().String()
	start := time.Now()
	log := c.logger.With("req_id", rid)
	if runID := common.RunIDFromContext(ctx); runID != "" {
		log = log.With("run_id", runID)
	}

	log.Info("llm.complete.start",
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"prompt_len", len(prompt),
	)

	body := chatRequest{
		Model:       c.cfg.Model,
		Temperature: c.cfg.Temperature,
		Messages: []chatMessage{
			{Role: "system", Content: llm.SystemPrompt},
			{Role: "user", Content: prompt},
		},
	}
	if c.cfg.JSONMode {
		body.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	headers := map[string]string{}
	if c.cfg.APIKey != "" {
		headers["Authorization"] = "Bearer " + c.cfg.APIKey
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	raw, err := llm.SendJSON(ctx, c.http, endpoint, body, headers, rid, log)
	if err != nil {
		var statusErr *llm.StatusError
		if errors.As(err, &statusErr) {
			log.Error("llm.complete.status_error",
				"status", statusErr.Code,
				"body", truncate(string(statusErr.Body), 512),
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
		} else {
			log.Error("llm.complete.http_error",
				"error", err,
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
		}
		return "", false
	}

	var cc chatResponse
	if err := json.Unmarshal(raw, &cc); err != nil {
		log.Error("llm.complete.decode_error",
			"error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", false
	}
	if len(cc.Choices) == 0 {
		log.Error("llm.complete.no_choices",
			"raw", truncate(string(raw), 512),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", false
	}

	content := strings.TrimSpace(cc.Choices[0].Message.Content)
	log.Info("llm.complete.ok",
		"reply_len", len(content),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return content, true
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
