package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"atelier-backend/pkg/logger"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-1.5-flash"
)

// Static fallbacks. The assistant is decorative: it degrades to these
// instead of surfacing errors to the author.
const summarizeFallback = "Para resumos automáticos, configure sua API Key do Gemini no arquivo .env.local."

var inspireFallback = []string{
	"O silêncio como forma de protesto.",
	"A geometria das sombras na arquitetura urbana.",
	"A memória dos objetos inanimados.",
}

// Service generates literary summaries and writing prompts. Methods never
// fail; without a key or on any upstream error they return the static
// fallbacks.
type Service interface {
	Summarize(ctx context.Context, title, content string) string
	Inspire(ctx context.Context, topic string) []string
}

type geminiService struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// NewGeminiService builds the Gemini-backed assistant. baseURL and model
// fall back to production defaults when empty.
func NewGeminiService(apiKey, baseURL, model string, timeout time.Duration) Service {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = defaultModel
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &geminiService{
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

func (s *geminiService) Summarize(ctx context.Context, title, content string) string {
	prompt := fmt.Sprintf("Resuma o seguinte ensaio literário intitulado %q em três parágrafos profundos e poéticos:\n\n%s", title, content)
	text, err := s.generate(ctx, generateRequest{
		SystemInstruction: &contentPart{Parts: []textPart{{Text: "Você é um crítico literário erudito e sofisticado."}}},
		Contents:          []chatContent{{Role: "user", Parts: []textPart{{Text: prompt}}}},
		GenerationConfig:  &generationConfig{Temperature: 0.7},
	})
	if err != nil {
		logger.Warn("summarize fell back", map[string]interface{}{"error": err.Error()})
		return summarizeFallback
	}
	if strings.TrimSpace(text) == "" {
		return "Não foi possível gerar um resumo."
	}
	return text
}

func (s *geminiService) Inspire(ctx context.Context, topic string) []string {
	prompt := fmt.Sprintf("Gere 3 prompts de escrita profunda e filosófica baseados no tema: %s. Retorne apenas um array JSON de strings.", topic)
	text, err := s.generate(ctx, generateRequest{
		SystemInstruction: &contentPart{Parts: []textPart{{Text: "Você é um mentor de escrita criativa focado em filosofia e literatura."}}},
		Contents:          []chatContent{{Role: "user", Parts: []textPart{{Text: prompt}}}},
		GenerationConfig:  &generationConfig{ResponseMimeType: "application/json"},
	})
	if err != nil {
		logger.Warn("inspire fell back", map[string]interface{}{"error": err.Error()})
		return inspireFallback
	}

	var prompts []string
	if err := json.Unmarshal([]byte(text), &prompts); err != nil || len(prompts) == 0 {
		return inspireFallback
	}
	return prompts
}

func (s *geminiService) generate(ctx context.Context, req generateRequest) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("api key not configured")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", s.baseURL, s.model, s.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upstream status %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", err
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response")
	}

	var sb strings.Builder
	for _, part := range out.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String(), nil
}

type generateRequest struct {
	SystemInstruction *contentPart     `json:"system_instruction,omitempty"`
	Contents          []chatContent        `json:"contents"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type contentPart struct {
	Parts []textPart `json:"parts"`
}

type chatContent struct {
	Role  string     `json:"role"`
	Parts []textPart `json:"parts"`
}

type textPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature      float64 `json:"temperature,omitempty"`
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []textPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}
