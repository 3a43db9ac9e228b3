package branding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/iammorganparry/logoflow/internal/logo"
)

const logoPrompt = `
Logo for "%s". %s.
Style: Minimalist, vector, flat, gradient, modern, tech, white background.
High quality, 4k.
`

// LogoPainter generates logo images through the Hugging Face inference API.
type LogoPainter struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewLogoPainter(baseURL, token string) *LogoPainter {
	return &LogoPainter{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 120 * time.Second, // text-to-image on the free tier can queue
		},
	}
}

type textToImageRequest struct {
	Inputs string `json:"inputs"`
}

type inferenceError struct {
	Error string `json:"error"`
}

// Paint renders a logo for name and returns it as a data URI.
func (p *LogoPainter) Paint(ctx context.Context, name, description, model string) (string, error) {
	data, err := json.Marshal(textToImageRequest{
		Inputs: fmt.Sprintf(logoPrompt, name, description),
	})
	if err != nil {
		return "", fmt.Errorf("marshal inference request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/models/"+model, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("create inference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "image/png")
	req.Header.Set("Authorization", "Bearer "+p.token)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("hugging face inference: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read inference response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var infErr inferenceError
		if json.Unmarshal(body, &infErr) == nil && infErr.Error != "" {
			return "", fmt.Errorf("hugging face inference: status %d: %s", resp.StatusCode, infErr.Error)
		}
		return "", fmt.Errorf("hugging face inference: status %d: %s", resp.StatusCode, string(body))
	}

	if len(body) == 0 {
		return "", fmt.Errorf("hugging face returned an empty image")
	}

	return logo.EncodeDataURI(imageType(resp.Header.Get("Content-Type"), body), body), nil
}

// imageType prefers the declared image media type and falls back to
// sniffing the bytes.
func imageType(header string, body []byte) string {
	if mt, _, err := mime.ParseMediaType(header); err == nil && strings.HasPrefix(mt, "image/") {
		return mt
	}
	return http.DetectContentType(body)
}
