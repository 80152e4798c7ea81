// Package ocr wraps the external text-recognition service and the best-effort
// field parsers that turn recognized text into structured candidates.
package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const defaultTimeout = 30 * time.Second

// Config captures the settings for the Google Vision REST endpoint.
type Config struct {
	APIKey  string
	BaseURL string // defaults to the public Vision endpoint
	Timeout time.Duration
}

// Client calls the Vision images:annotate endpoint. Any transport or service
// failure degrades to empty text: OCR is never fatal to a caller, which must
// treat "" as "image accepted, text unavailable".
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

func NewClient(cfg Config, logger zerolog.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://vision.googleapis.com/v1/images:annotate"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type annotateImage struct {
	Content string `json:"content"`
}

type annotateFeature struct {
	Type string `json:"type"`
}

type annotateItem struct {
	Image    annotateImage     `json:"image"`
	Features []annotateFeature `json:"features"`
}

type annotateRequest struct {
	Requests []annotateItem `json:"requests"`
}

type textAnnotation struct {
	Description string `json:"description"`
}

type annotateResult struct {
	TextAnnotations []textAnnotation `json:"textAnnotations"`
	Error           *struct {
		Message string `json:"message"`
	} `json:"error"`
}

type annotateResponse struct {
	Responses []annotateResult `json:"responses"`
}

// ExtractText sends the image for text detection and returns the recognized
// text, or "" on any failure.
func (c *Client) ExtractText(ctx context.Context, image []byte) string {
	if c.apiKey == "" {
		c.logger.Warn().Msg("ocr: api key not configured, skipping extraction")
		return ""
	}

	req := annotateRequest{Requests: []annotateItem{{
		Image:    annotateImage{Content: base64.StdEncoding.EncodeToString(image)},
		Features: []annotateFeature{{Type: "TEXT_DETECTION"}},
	}}}

	body, err := json.Marshal(req)
	if err != nil {
		c.logger.Error().Err(err).Msg("ocr: marshal request")
		return ""
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"?key="+c.apiKey, bytes.NewReader(body))
	if err != nil {
		c.logger.Error().Err(err).Msg("ocr: build request")
		return ""
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.logger.Warn().Err(err).Msg("ocr: request failed")
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn().Int("status", resp.StatusCode).Msg("ocr: non-200 response")
		return ""
	}

	var result annotateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		c.logger.Warn().Err(err).Msg("ocr: decode response")
		return ""
	}

	if len(result.Responses) == 0 {
		return ""
	}
	r := result.Responses[0]
	if r.Error != nil {
		c.logger.Warn().Str("message", r.Error.Message).Msg("ocr: service error")
		return ""
	}
	if len(r.TextAnnotations) == 0 {
		c.logger.Debug().Msg("ocr: no text found in image")
		return ""
	}

	text := r.TextAnnotations[0].Description
	c.logger.Debug().Int("chars", len(text)).Msg("ocr: text extracted")
	return text
}
