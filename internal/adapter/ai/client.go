package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/jyutcollab/internal/editor"
	"github.com/eslsoft/jyutcollab/internal/infrastructure/config"
	"github.com/eslsoft/jyutcollab/internal/taxonomy"
)

// Client implements editor.SuggestionService against an OpenAI-compatible
// chat completion endpoint. The model is asked for strict JSON; anything
// that does not parse is treated as an upstream error.
type Client struct {
	http  *resty.Client
	model string
	tax   *taxonomy.Taxonomy
	log   logrus.FieldLogger

	definitionTimeout time.Duration
	categorizeTimeout time.Duration
	examplesTimeout   time.Duration
}

func NewClient(cfg *config.Config, tax *taxonomy.Taxonomy, log logrus.FieldLogger) *Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.AI.BaseURL, "/")).
		SetHeader("Content-Type", "application/json")
	if cfg.AI.APIKey != "" {
		httpClient.SetAuthToken(cfg.AI.APIKey)
	}
	return &Client{
		http:              httpClient,
		model:             cfg.AI.Model,
		tax:               tax,
		log:               log,
		definitionTimeout: cfg.AI.DefinitionTimeout,
		categorizeTimeout: cfg.AI.CategorizeTimeout,
		examplesTimeout:   cfg.AI.ExamplesTimeout,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat *struct {
		Type string `json:"type"`
	} `json:"response_format,omitempty"`
	Temperature float64 `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

const definitionSystemPrompt = `你是粵語詞典編輯助手。用戶會提供一個粵語詞條，請用繁體中文書面語解釋它的意思。
只輸出 JSON，格式為：
{"definition": "釋義", "usageNotes": "用法說明（可選）", "formalityLevel": "formal|neutral|informal|slang|vulgar"}`

const categorizeSystemPrompt = `你是粵語詞典編輯助手。根據詞條的意思，從下面的分類表中選出最合適的一個分類。
只輸出 JSON，格式為：
{"themeId": 分類編號, "confidence": 0到1之間的小數, "explanation": "選擇理由"}
分類表（編號: 分類路徑）：
`

const examplesSystemPrompt = `你是粵語詞典編輯助手。請為用戶提供的粵語詞條寫三個自然、地道的例句，用繁體中文。
只輸出 JSON，格式為：
{"examples": [{"text": "例句", "translation": "普通話對照", "scenario": "使用場景"}]}`

func (c *Client) SuggestDefinition(ctx context.Context, req editor.SuggestionRequest) (*editor.DefinitionSuggestion, error) {
	ctx, cancel := context.WithTimeout(ctx, c.definitionTimeout)
	defer cancel()

	var out editor.DefinitionSuggestion
	if err := c.chat(ctx, definitionSystemPrompt, userPrompt(req), &out); err != nil {
		return nil, err
	}
	if strings.TrimSpace(out.Definition) == "" {
		return nil, fmt.Errorf("suggestion backend returned no definition")
	}
	return &out, nil
}

func (c *Client) Categorize(ctx context.Context, req editor.SuggestionRequest) (*editor.Categorization, error) {
	ctx, cancel := context.WithTimeout(ctx, c.categorizeTimeout)
	defer cancel()

	var out editor.Categorization
	if err := c.chat(ctx, categorizeSystemPrompt+c.themeTable(), userPrompt(req), &out); err != nil {
		return nil, err
	}
	if _, ok := c.tax.ByID(out.ThemeID); !ok {
		return nil, fmt.Errorf("suggestion backend returned unknown theme id %d", out.ThemeID)
	}
	return &out, nil
}

func (c *Client) SuggestExamples(ctx context.Context, req editor.SuggestionRequest) ([]editor.ExampleSuggestion, error) {
	ctx, cancel := context.WithTimeout(ctx, c.examplesTimeout)
	defer cancel()

	var out struct {
		Examples []editor.ExampleSuggestion `json:"examples"`
	}
	if err := c.chat(ctx, examplesSystemPrompt, userPrompt(req), &out); err != nil {
		return nil, err
	}
	if len(out.Examples) == 0 {
		return nil, fmt.Errorf("suggestion backend returned no examples")
	}
	return out.Examples, nil
}

func (c *Client) chat(ctx context.Context, system, user string, out any) error {
	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0.2,
	}
	payload.ResponseFormat = &struct {
		Type string `json:"type"`
	}{Type: "json_object"}

	var parsed chatResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&parsed).
		SetError(&parsed).
		Post("/chat/completions")
	if err != nil {
		// 保留取消语义,Coordinator 靠它区分放弃与失败。
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("call suggestion backend: %w", err)
	}
	if resp.IsError() {
		if parsed.Error != nil && parsed.Error.Message != "" {
			return fmt.Errorf("suggestion backend: %s (status %d)", parsed.Error.Message, resp.StatusCode())
		}
		return fmt.Errorf("suggestion backend: status %d", resp.StatusCode())
	}
	if len(parsed.Choices) == 0 {
		return fmt.Errorf("suggestion backend returned no choices")
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	content = stripCodeFence(content)
	if err := json.Unmarshal([]byte(content), out); err != nil {
		c.log.WithField("content", truncate(content, 200)).Warn("unparseable suggestion payload")
		return fmt.Errorf("parse suggestion payload: %w", err)
	}
	return nil
}

func (c *Client) themeTable() string {
	options := c.tax.Options()
	var b strings.Builder
	for _, opt := range options {
		fmt.Fprintf(&b, "%d: %s\n", opt.Value, opt.Label)
	}
	return b.String()
}

func userPrompt(req editor.SuggestionRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "詞條：%s", req.Expression)
	if req.Context != "" {
		fmt.Fprintf(&b, "\n已有釋義：%s", req.Context)
	}
	if req.Region != "" {
		fmt.Fprintf(&b, "\n地區：%s", req.Region)
	}
	return b.String()
}

// 有些模型无视 response_format,仍包一层 ```json 围栏。
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
