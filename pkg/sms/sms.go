package sms

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SMSService sends text messages through an HTTP SMS gateway.
type SMSService struct {
	apiKey     string
	apiHost    string
	apiURL     string
	senderName string
	httpClient *http.Client
}

func NewSMSService(apiKey, apiHost, apiURL, senderName string) *SMSService {
	if senderName == "" {
		senderName = "CivicPulse"
	}
	return &SMSService{
		apiKey:     apiKey,
		apiHost:    apiHost,
		apiURL:     apiURL,
		senderName: senderName,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Enabled reports whether the gateway is configured. Without an API key
// SMS delivery is silently skipped.
func (s *SMSService) Enabled() bool {
	return s.apiKey != "" && s.apiURL != ""
}

// SendSMS delivers a message to the given phone number.
func (s *SMSService) SendSMS(ctx context.Context, phone, message string) error {
	if !s.Enabled() {
		log.Printf("SMS gateway not configured, skipping message to %s", phone)
		return nil
	}

	form := url.Values{}
	form.Set("content", message)
	form.Set("from", s.senderName)
	form.Set("to", phone)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build SMS request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-RapidAPI-Key", s.apiKey)
	if s.apiHost != "" {
		req.Header.Set("X-RapidAPI-Host", s.apiHost)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("SMS gateway returned %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
