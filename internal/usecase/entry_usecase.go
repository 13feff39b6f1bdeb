package usecase

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/eslsoft/jyutcollab/internal/entity"
	"github.com/eslsoft/jyutcollab/internal/repository"
	"github.com/sirupsen/logrus"
)

// EntryUsecase defines business logic for dictionary entries.
type EntryUsecase interface {
	Create(ctx context.Context, actor *entity.User, entry *entity.Entry) (*entity.Entry, error)
	Update(ctx context.Context, actor *entity.User, id string, patch *entity.EntryPatch) (*entity.Entry, error)
	Get(ctx context.Context, id string) (*entity.Entry, error)
	List(ctx context.Context, query *repository.ListEntryQuery) (*entity.EntryPage, error)
	Delete(ctx context.Context, actor *entity.User, id string) error
	Submit(ctx context.Context, actor *entity.User, id string) (*entity.Entry, error)
	CheckDuplicate(ctx context.Context, headword, dialect string) ([]*entity.Entry, error)
}

const (
	_defaultPageSize = int32(20)
	_maxPageSize     = int32(100)
)

type entryUsecase struct {
	repo      repository.EntryRepository
	histories repository.HistoryRepository
	converter TextConverter
	log       logrus.FieldLogger
}

func NewEntryUsecase(repo repository.EntryRepository, histories repository.HistoryRepository, converter TextConverter, log logrus.FieldLogger) EntryUsecase {
	if converter == nil {
		converter = PassthroughConverter{}
	}
	return &entryUsecase{repo: repo, histories: histories, converter: converter, log: log}
}

func (u *entryUsecase) Create(ctx context.Context, actor *entity.User, entry *entity.Entry) (*entity.Entry, error) {
	norm, err := u.normalizeForUpsert(entry)
	if err != nil {
		return nil, err
	}
	if !actor.CanContributeToDialect(norm.Dialect.Name) {
		return nil, entity.ErrDialectNotGranted
	}
	norm.ID = ""
	norm.TempID = ""
	norm.IsNew = false
	norm.IsDirty = false
	if norm.Status == "" {
		norm.Status = entity.StatusDraft
	}
	norm.CreatedBy = actor.ID
	norm.UpdatedBy = actor.ID

	created, err := u.repo.Create(ctx, norm)
	if err != nil {
		return nil, err
	}
	u.record(ctx, actor, entity.HistoryCreate, created.ID, nil, created, nil)
	return created, nil
}

func (u *entryUsecase) Update(ctx context.Context, actor *entity.User, id string, patch *entity.EntryPatch) (*entity.Entry, error) {
	if strings.TrimSpace(id) == "" {
		return nil, entity.ErrInvalidEntryID
	}
	if patch == nil {
		return nil, entity.ErrEntryNotFound
	}
	existing, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.CreatedBy != actor.ID && !actor.CanReview() {
		return nil, entity.ErrPermissionDenied
	}

	before := *existing
	next := *existing
	changed, err := u.applyPatch(&next, patch, actor)
	if err != nil {
		return nil, err
	}
	if len(changed) == 0 {
		return existing, nil
	}
	next.UpdatedBy = actor.ID

	updated, err := u.repo.Update(ctx, &next)
	if err != nil {
		return nil, err
	}
	u.record(ctx, actor, entity.HistoryUpdate, updated.ID, &before, updated, changed)
	return updated, nil
}

func (u *entryUsecase) Get(ctx context.Context, id string) (*entity.Entry, error) {
	if strings.TrimSpace(id) == "" {
		return nil, entity.ErrInvalidEntryID
	}
	return u.repo.GetByID(ctx, id)
}

func (u *entryUsecase) List(ctx context.Context, query *repository.ListEntryQuery) (*entity.EntryPage, error) {
	if query.PageNo <= 0 {
		query.PageNo = 1
	}
	if query.PageSize <= 0 {
		query.PageSize = _defaultPageSize
	}
	if query.PageSize > _maxPageSize {
		query.PageSize = _maxPageSize
	}

	items, total, err := u.repo.List(ctx, query)
	if err != nil {
		return nil, err
	}

	page := &entity.EntryPage{
		Total:   total,
		Page:    int(query.PageNo),
		PerPage: int(query.PageSize),
	}
	if page.PerPage > 0 {
		page.TotalPages = int((total + int64(page.PerPage) - 1) / int64(page.PerPage))
	}

	if query.GroupBy == entity.GroupByNone {
		page.Items = items
		return page, nil
	}
	page.Grouped = true
	page.Groups = groupEntries(items, query.GroupBy)
	return page, nil
}

func (u *entryUsecase) Delete(ctx context.Context, actor *entity.User, id string) error {
	if strings.TrimSpace(id) == "" {
		return entity.ErrInvalidEntryID
	}
	existing, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.CreatedBy != actor.ID && actor.Role != entity.RoleAdmin {
		return entity.ErrPermissionDenied
	}
	if err := u.repo.Delete(ctx, id); err != nil {
		return err
	}
	u.record(ctx, actor, entity.HistoryDelete, id, existing, nil, nil)
	return nil
}

// Submit moves a contributor's entry into the review queue.
func (u *entryUsecase) Submit(ctx context.Context, actor *entity.User, id string) (*entity.Entry, error) {
	if strings.TrimSpace(id) == "" {
		return nil, entity.ErrInvalidEntryID
	}
	existing, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.CreatedBy != actor.ID && !actor.CanReview() {
		return nil, entity.ErrPermissionDenied
	}

	before := *existing
	next := *existing
	next.Status = entity.StatusPendingReview
	next.UpdatedBy = actor.ID

	updated, err := u.repo.Update(ctx, &next)
	if err != nil {
		return nil, err
	}
	u.record(ctx, actor, entity.HistoryUpdate, updated.ID, &before, updated, []string{"status"})
	return updated, nil
}

func (u *entryUsecase) CheckDuplicate(ctx context.Context, headword, dialect string) ([]*entity.Entry, error) {
	headword = strings.TrimSpace(headword)
	if headword == "" {
		return nil, entity.ErrEmptyHeadword
	}
	return u.repo.FindByHeadword(ctx, u.converter.Convert(headword), strings.TrimSpace(dialect))
}

// applyPatch copies the provided sections onto the entry. Absent sections
// stay untouched; a senses section whose every definition is blank is
// treated as absent rather than wiping the stored senses.
func (u *entryUsecase) applyPatch(e *entity.Entry, patch *entity.EntryPatch, actor *entity.User) ([]string, error) {
	var changed []string

	if patch.Headword != nil {
		display := strings.TrimSpace(patch.Headword.Display)
		if display == "" {
			return nil, entity.ErrEmptyHeadword
		}
		display = u.converter.Convert(display)
		hw := *patch.Headword
		hw.Display = display
		hw.Normalized = display
		hw.IsPlaceholder = strings.Contains(display, entity.PlaceholderGlyph)
		hw.Variants = u.convertAll(entity.NormalizeStringSlice(hw.Variants))
		e.Headword = hw
		changed = append(changed, "headword")
	}
	if patch.Dialect != nil {
		name := strings.TrimSpace(patch.Dialect.Name)
		if !strings.EqualFold(name, e.Dialect.Name) && !actor.CanContributeToDialect(name) {
			return nil, entity.ErrDialectNotGranted
		}
		e.Dialect = entity.Dialect{Name: name, RegionCode: strings.TrimSpace(patch.Dialect.RegionCode)}
		changed = append(changed, "dialect")
	}
	if patch.Phonetic != nil {
		p := *patch.Phonetic
		p.Jyutping = normalizeReadings(p.Jyutping)
		e.Phonetic = p
		e.PhoneticNotation = strings.Join(p.Jyutping, "; ")
		changed = append(changed, "phonetic")
	}
	if patch.EntryType != nil {
		e.EntryType = entity.ParseEntryType(string(*patch.EntryType))
		changed = append(changed, "entryType")
	}
	if patch.Senses != nil {
		valid := filterSenses(*patch.Senses)
		if len(valid) > 0 {
			e.Senses = valid
			changed = append(changed, "senses")
		}
	}
	if patch.Theme != nil {
		e.Theme = *patch.Theme
		changed = append(changed, "theme")
	}
	if patch.Meta != nil {
		e.Meta = *patch.Meta
		changed = append(changed, "meta")
	}
	if patch.Status != nil {
		status, ok := entity.ParseStatus(string(*patch.Status))
		if !ok {
			status = entity.StatusDraft
		}
		if (status == entity.StatusApproved || status == entity.StatusRejected) && !actor.CanReview() {
			return nil, entity.ErrPermissionDenied
		}
		e.Status = status
		changed = append(changed, "status")
	}
	if patch.LexemeID != nil {
		e.LexemeID = strings.TrimSpace(*patch.LexemeID)
		changed = append(changed, "lexemeId")
	}
	if patch.MorphemeRefs != nil {
		e.MorphemeRefs = *patch.MorphemeRefs
		changed = append(changed, "morphemeRefs")
	}
	return changed, nil
}

func (u *entryUsecase) normalizeForUpsert(in *entity.Entry) (*entity.Entry, error) {
	if in == nil {
		return nil, entity.ErrEmptyHeadword
	}
	display := strings.TrimSpace(in.Headword.Display)
	if display == "" {
		return nil, entity.ErrEmptyHeadword
	}
	display = u.converter.Convert(display)

	out := *in
	out.Headword.Display = display
	out.Headword.Normalized = display
	out.Headword.IsPlaceholder = strings.Contains(display, entity.PlaceholderGlyph)
	out.Headword.Variants = u.convertAll(entity.NormalizeStringSlice(out.Headword.Variants))
	out.Dialect.Name = strings.TrimSpace(out.Dialect.Name)
	out.Phonetic.Jyutping = normalizeReadings(out.Phonetic.Jyutping)
	out.PhoneticNotation = strings.Join(out.Phonetic.Jyutping, "; ")
	if out.EntryType == "" {
		out.EntryType = entity.EntryTypeWord
	}
	out.Senses = filterSenses(out.Senses)
	out.EnsureSenses()
	return &out, nil
}

func (u *entryUsecase) convertAll(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = u.converter.Convert(s)
	}
	return out
}

// record writes an audit history row; audit failures never fail the
// mutation that produced them.
func (u *entryUsecase) record(ctx context.Context, actor *entity.User, action entity.HistoryAction, entryID string, before, after *entity.Entry, changed []string) {
	h := &entity.EditHistory{
		EntryID:       entryID,
		EditorID:      actor.ID,
		Action:        action,
		ChangedFields: changed,
	}
	if before != nil {
		if data, err := json.Marshal(before); err == nil {
			h.Before = data
		}
	}
	if after != nil {
		if data, err := json.Marshal(after); err == nil {
			h.After = data
		}
	}
	if _, err := u.histories.Record(ctx, h); err != nil {
		u.log.WithError(err).WithField("entry_id", entryID).Warn("record edit history")
	}
}

// filterSenses keeps senses that carry a definition; examples with blank
// text are dropped within each kept sense.
func filterSenses(in []entity.Sense) []entity.Sense {
	out := make([]entity.Sense, 0, len(in))
	for _, s := range in {
		if strings.TrimSpace(s.Definition) == "" {
			continue
		}
		s.Definition = strings.TrimSpace(s.Definition)
		s.Examples = filterExamples(s.Examples)
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func filterExamples(in []entity.Example) []entity.Example {
	if len(in) == 0 {
		return nil
	}
	out := make([]entity.Example, 0, len(in))
	for _, ex := range in {
		if strings.TrimSpace(ex.Text) == "" {
			continue
		}
		out = append(out, ex)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func normalizeReadings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, r := range in {
		if v := strings.TrimSpace(r); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func groupEntries(items []*entity.Entry, mode entity.GroupBy) []*entity.EntryGroup {
	var groups []*entity.EntryGroup
	index := make(map[string]*entity.EntryGroup)
	for _, e := range items {
		key := e.Headword.Normalized
		if mode == entity.GroupByLexeme && e.LexemeID != "" {
			key = e.LexemeID
		}
		g, ok := index[key]
		if !ok {
			g = &entity.EntryGroup{
				HeadwordDisplay:    e.Headword.Display,
				HeadwordNormalized: e.Headword.Normalized,
			}
			index[key] = g
			groups = append(groups, g)
		}
		g.Entries = append(g.Entries, e)
	}
	return groups
}
