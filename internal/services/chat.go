package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const chatSystemPrompt = `You are "Namaste, Naagrik!", the official AI assistant for CivicPulse, a platform dedicated to building a cleaner, smarter city together. Your personality is helpful, polite, and encouraging.

Your main goals are:
1. Help citizens report issues like potholes, garbage, water leaks, or broken streetlights.
2. Guide users on how to use the CivicPulse platform (tracking complaints, checking the leaderboard, registering for events).
3. Promote awareness about cleanliness, waste segregation, and sustainable practices.

If a user asks something unrelated to civic issues, smart cities, cleanliness, or the CivicPulse platform, politely steer the conversation back to how you can help them make their city better. Keep your responses concise and friendly.`

// ChatService proxies assistant conversations to an external generative
// language API. It holds no conversation state; callers resend history.
type ChatService struct {
	apiURL     string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewChatService(apiURL, apiKey, model string) *ChatService {
	if apiURL == "" {
		apiURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	return &ChatService{
		apiURL:     apiURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type ChatTurn struct {
	Role string `json:"role" validate:"required,oneof=user model"`
	Text string `json:"text" validate:"required"`
}

type ChatRequest struct {
	Message string     `json:"message" validate:"required,max=2000"`
	History []ChatTurn `json:"history" validate:"omitempty,max=20,dive"`
}

type chatPart struct {
	Text string `json:"text"`
}

type chatContent struct {
	Role  string     `json:"role,omitempty"`
	Parts []chatPart `json:"parts"`
}

type generateContentRequest struct {
	SystemInstruction *chatContent  `json:"system_instruction,omitempty"`
	Contents          []chatContent `json:"contents"`
	GenerationConfig  struct {
		Temperature float64 `json:"temperature"`
	} `json:"generationConfig"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content chatContent `json:"content"`
	} `json:"candidates"`
}

// Reply sends the user's message plus prior turns to the model and returns
// the assistant text.
func (s *ChatService) Reply(ctx context.Context, req *ChatRequest) (string, error) {
	if s.apiKey == "" {
		return "", errors.New("chat assistant is not configured")
	}

	payload := generateContentRequest{
		SystemInstruction: &chatContent{Parts: []chatPart{{Text: chatSystemPrompt}}},
	}
	payload.GenerationConfig.Temperature = 0.7

	for _, turn := range req.History {
		role := "model"
		if turn.Role == "user" {
			role = "user"
		}
		payload.Contents = append(payload.Contents, chatContent{
			Role:  role,
			Parts: []chatPart{{Text: turn.Text}},
		})
	}
	payload.Contents = append(payload.Contents, chatContent{
		Role:  "user",
		Parts: []chatPart{{Text: req.Message}},
	})

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode chat request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", s.apiURL, s.model, s.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("chat upstream unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("chat upstream returned %d: %s", resp.StatusCode, string(detail))
	}

	var parsed generateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode chat response: %w", err)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("chat upstream returned no content")
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
