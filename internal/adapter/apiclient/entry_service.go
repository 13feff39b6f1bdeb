package apiclient

import (
	"context"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/eslsoft/jyutcollab/internal/editor"
	"github.com/eslsoft/jyutcollab/internal/entity"
)

// EntryService implements editor.EntryService over the REST API.
type EntryService struct {
	client *Client
}

var _ editor.EntryService = (*EntryService)(nil)

func NewEntryService(client *Client) *EntryService {
	return &EntryService{client: client}
}

func (s *EntryService) Fetch(ctx context.Context, filter entity.EntryFilter) (*entity.EntryPage, error) {
	params := map[string]string{
		"page":     strconv.Itoa(filter.Page),
		"per_page": strconv.Itoa(filter.PerPage),
	}
	if filter.Query != "" {
		params["q"] = filter.Query
	}
	if filter.Dialect != "" {
		params["dialect"] = filter.Dialect
	}
	if filter.Status != "" {
		params["status"] = string(filter.Status)
	}
	if filter.ThemeL3ID != 0 {
		params["theme"] = strconv.Itoa(filter.ThemeL3ID)
	}
	if filter.CreatedBy != "" {
		params["created_by"] = filter.CreatedBy
	}
	if filter.GroupBy != entity.GroupByNone {
		params["group_by"] = string(filter.GroupBy)
	}

	var page entity.EntryPage
	_, err := s.client.do(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.SetQueryParams(params).SetResult(&page).Get("/api/entries")
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *EntryService) Create(ctx context.Context, entry *entity.Entry) (*entity.Entry, error) {
	var created entity.Entry
	_, err := s.client.do(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.SetBody(entry).SetResult(&created).Post("/api/entries")
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *EntryService) Update(ctx context.Context, id string, patch *entity.EntryPatch) (*entity.Entry, error) {
	var updated entity.Entry
	_, err := s.client.do(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.SetBody(patch).SetResult(&updated).Patch("/api/entries/" + id)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *EntryService) Delete(ctx context.Context, id string) error {
	_, err := s.client.do(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.Delete("/api/entries/" + id)
	})
	return err
}

func (s *EntryService) CheckDuplicate(ctx context.Context, headword, dialect string) ([]*entity.Entry, error) {
	var result struct {
		Matches []*entity.Entry `json:"matches"`
	}
	_, err := s.client.do(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.
			SetQueryParam("headword", headword).
			SetQueryParam("dialect", dialect).
			SetResult(&result).
			Get("/api/entries/check-duplicate")
	})
	if err != nil {
		return nil, err
	}
	return result.Matches, nil
}
