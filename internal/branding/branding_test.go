package branding

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTextModel struct {
	out    string
	err    error
	model  string
	prompt string
}

func (s *stubTextModel) Generate(ctx context.Context, model, prompt string) (string, error) {
	s.model = model
	s.prompt = prompt
	return s.out, s.err
}

func TestParseNames(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"three names", "BeanLoop, DripCycle, RoastRoute", []string{"BeanLoop", "DripCycle", "RoastRoute"}},
		{"more than three", "A, B, C, D, E", []string{"A", "B", "C"}},
		{"surrounding whitespace", "\n  Nova ,Echo\n", []string{"Nova", "Echo"}},
		{"empty entries", "A,, ,B", []string{"A", "B"}},
		{"single", "Solo", []string{"Solo"}},
		{"nothing", "  ", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseNames(tt.in))
		})
	}
}

func TestNameGeneratorGenerate(t *testing.T) {
	stub := &stubTextModel{out: "BeanLoop, DripCycle, RoastRoute, Extra"}
	g := NewNameGenerator(stub)

	names, err := g.Generate(context.Background(), "A coffee subscription app", "gemini-2.5-flash")
	require.NoError(t, err)

	assert.Equal(t, []string{"BeanLoop", "DripCycle", "RoastRoute"}, names)
	assert.Equal(t, "gemini-2.5-flash", stub.model)
	assert.Contains(t, stub.prompt, "Project: A coffee subscription app")
	assert.Contains(t, stub.prompt, "separated by commas")
}

func TestNameGeneratorError(t *testing.T) {
	g := NewNameGenerator(&stubTextModel{err: errors.New("404 model not found")})

	_, err := g.Generate(context.Background(), "x", "missing")
	assert.EqualError(t, err, "404 model not found")
}

func TestNewGeminiModelRequiresKey(t *testing.T) {
	_, err := NewGeminiModel(context.Background(), "")
	assert.Error(t, err)
}

// fakeInferenceServer mimics the Hugging Face text-to-image endpoint.
func fakeInferenceServer(t *testing.T, status int, contentType string, body []byte) (*httptest.Server, *textToImageRequest, *http.Header) {
	t.Helper()
	var got textToImageRequest
	var headers http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/black-forest-labs/FLUX.1-schnell", r.URL.Path)
		headers = r.Header.Clone()
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(status)
		w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv, &got, &headers
}

func TestLogoPainterPaint(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\nrest")
	srv, got, headers := fakeInferenceServer(t, http.StatusOK, "image/png", png)

	p := NewLogoPainter(srv.URL+"/", "hf_token")
	uri, err := p.Paint(context.Background(), "DripCycle", "A coffee subscription app", "black-forest-labs/FLUX.1-schnell")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"), uri)
	assert.Equal(t, "Bearer hf_token", headers.Get("Authorization"))
	assert.Contains(t, got.Inputs, `Logo for "DripCycle". A coffee subscription app.`)
	assert.Contains(t, got.Inputs, "white background")
}

func TestLogoPainterSniffsType(t *testing.T) {
	jpeg := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0x10, 'J', 'F', 'I', 'F', 0}
	srv, _, _ := fakeInferenceServer(t, http.StatusOK, "application/octet-stream", jpeg)

	uri, err := NewLogoPainter(srv.URL, "t").Paint(context.Background(), "x", "y", "black-forest-labs/FLUX.1-schnell")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/jpeg;base64,"), uri)
}

func TestLogoPainterError(t *testing.T) {
	srv, _, _ := fakeInferenceServer(t, http.StatusServiceUnavailable, "application/json", []byte(`{"error":"Model is loading"}`))

	_, err := NewLogoPainter(srv.URL, "t").Paint(context.Background(), "x", "y", "black-forest-labs/FLUX.1-schnell")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503: Model is loading")
}
