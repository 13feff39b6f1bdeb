package apiclient

import (
	"context"

	"github.com/go-resty/resty/v2"

	"github.com/eslsoft/jyutcollab/internal/editor"
)

// SuggestionService implements editor.SuggestionService over the REST API,
// so the editor never talks to the AI backend directly.
type SuggestionService struct {
	client *Client
}

var _ editor.SuggestionService = (*SuggestionService)(nil)

func NewSuggestionService(client *Client) *SuggestionService {
	return &SuggestionService{client: client}
}

func (s *SuggestionService) SuggestDefinition(ctx context.Context, req editor.SuggestionRequest) (*editor.DefinitionSuggestion, error) {
	var out editor.DefinitionSuggestion
	_, err := s.client.do(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.SetBody(req).SetResult(&out).Post("/api/ai/definitions")
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *SuggestionService) Categorize(ctx context.Context, req editor.SuggestionRequest) (*editor.Categorization, error) {
	var out editor.Categorization
	_, err := s.client.do(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.SetBody(req).SetResult(&out).Post("/api/ai/categorize")
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *SuggestionService) SuggestExamples(ctx context.Context, req editor.SuggestionRequest) ([]editor.ExampleSuggestion, error) {
	var out struct {
		Examples []editor.ExampleSuggestion `json:"examples"`
	}
	_, err := s.client.do(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.SetBody(req).SetResult(&out).Post("/api/ai/examples")
	})
	if err != nil {
		return nil, err
	}
	return out.Examples, nil
}
