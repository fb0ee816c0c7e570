package lifecycle_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"confportal-backend/internal/lifecycle"
	"confportal-backend/internal/models"
)

// memStore is an in-memory lifecycle.Store that reproduces the conditional
// update semantics of the Postgres implementation: every bulk method is a
// predicate over current state, and review uniqueness is enforced on the
// (paper, reviewer) pair. failWith simulates a storage outage.
type memStore struct {
	conferences map[uuid.UUID]*models.Conference
	papers      map[uuid.UUID]*models.Paper
	reviews     map[uuid.UUID]*models.Review

	failWith       error
	failStatusOnly bool
}

func newMemStore() *memStore {
	return &memStore{
		conferences: make(map[uuid.UUID]*models.Conference),
		papers:      make(map[uuid.UUID]*models.Paper),
		reviews:     make(map[uuid.UUID]*models.Review),
	}
}

func (m *memStore) addConference(c models.Conference) uuid.UUID {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	m.conferences[c.ID] = &c
	return c.ID
}

func (m *memStore) addPaper(p models.Paper) uuid.UUID {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	m.papers[p.ID] = &p
	return p.ID
}

func (m *memStore) fail() error {
	if m.failWith != nil && !m.failStatusOnly {
		return m.failWith
	}
	return nil
}

func (m *memStore) GetConference(ctx context.Context, id uuid.UUID) (*models.Conference, error) {
	if err := m.fail(); err != nil {
		return nil, err
	}
	conf, ok := m.conferences[id]
	if !ok {
		return nil, lifecycle.ErrNotFound
	}
	copied := *conf
	return &copied, nil
}

func (m *memStore) MarkConferencesOngoing(ctx context.Context, now time.Time) (int64, error) {
	if err := m.fail(); err != nil {
		return 0, err
	}
	var changed int64
	for _, conf := range m.conferences {
		inWindow := !now.Before(conf.StartDate) && !now.After(conf.EndDate)
		if inWindow && conf.Status != models.ConferenceOngoing && conf.Status != models.ConferenceCanceled {
			conf.Status = models.ConferenceOngoing
			changed++
		}
	}
	return changed, nil
}

func (m *memStore) MarkConferencesCompleted(ctx context.Context, now time.Time) (int64, error) {
	if err := m.fail(); err != nil {
		return 0, err
	}
	var changed int64
	for _, conf := range m.conferences {
		if conf.EndDate.Before(now) && conf.Status != models.ConferenceCompleted && conf.Status != models.ConferenceCanceled {
			conf.Status = models.ConferenceCompleted
			changed++
		}
	}
	return changed, nil
}

func (m *memStore) CreatePaper(ctx context.Context, p *models.Paper) error {
	if err := m.fail(); err != nil {
		return err
	}
	copied := *p
	m.papers[p.ID] = &copied
	return nil
}

var editableColumns = map[string]bool{
	"title":         true,
	"abstract":      true,
	"keywords":      true,
	"authors":       true,
	"category_id":   true,
	"file_url":      true,
	"final_version": true,
}

func (m *memStore) UpdatePaperFields(ctx context.Context, paperID, authorID uuid.UUID, fields map[string]interface{}) (*models.Paper, error) {
	if err := m.fail(); err != nil {
		return nil, err
	}
	paper, ok := m.papers[paperID]
	if !ok || paper.UserID != authorID {
		return nil, lifecycle.ErrNotFound
	}
	for field, value := range fields {
		if !editableColumns[field] {
			continue
		}
		switch field {
		case "title":
			paper.Title = value.(string)
		case "abstract":
			paper.Abstract = value.(string)
		case "keywords":
			paper.Keywords = toStrings(value)
		case "authors":
			paper.Authors = toStrings(value)
		case "file_url":
			paper.FileURL = value.(string)
		case "final_version":
			paper.FinalVersion = value.(bool)
		}
	}
	copied := *paper
	return &copied, nil
}

func (m *memStore) SetPaperStatus(ctx context.Context, paperID uuid.UUID, status string) error {
	if m.failWith != nil {
		return m.failWith
	}
	paper, ok := m.papers[paperID]
	if !ok {
		return lifecycle.ErrNotFound
	}
	paper.Status = status
	return nil
}

func (m *memStore) ForceSubmitDrafts(ctx context.Context, now time.Time) (int64, error) {
	if err := m.fail(); err != nil {
		return 0, err
	}
	var changed int64
	for _, paper := range m.papers {
		conf, ok := m.conferences[paper.ConferenceID]
		if !ok || conf.Status != models.ConferenceOngoing {
			continue
		}
		if paper.Status == models.PaperDraft && conf.SubmissionDeadline.Before(now) {
			paper.Status = models.PaperSubmitted
			changed++
		}
	}
	return changed, nil
}

func (m *memStore) EnableResubmissions(ctx context.Context) (int64, error) {
	if err := m.fail(); err != nil {
		return 0, err
	}
	var changed int64
	for _, paper := range m.papers {
		if paper.Status == models.PaperAcceptedWithChanges && !paper.ResubmissionAllowed {
			paper.ResubmissionAllowed = true
			changed++
		}
	}
	return changed, nil
}

func (m *memStore) CreateReview(ctx context.Context, r *models.Review) error {
	if err := m.fail(); err != nil {
		return err
	}
	if _, ok := m.papers[r.PaperID]; !ok {
		return lifecycle.ErrNotFound
	}
	for _, existing := range m.reviews {
		if existing.PaperID == r.PaperID && existing.ReviewerID == r.ReviewerID {
			return lifecycle.ErrDuplicateReview
		}
	}
	copied := *r
	m.reviews[r.ID] = &copied
	return nil
}

func (m *memStore) UpdateReview(ctx context.Context, reviewID uuid.UUID, upd lifecycle.ReviewUpdate) (*models.Review, error) {
	if err := m.fail(); err != nil {
		return nil, err
	}
	review, ok := m.reviews[reviewID]
	if !ok {
		return nil, lifecycle.ErrNotFound
	}
	if upd.Responses != nil {
		review.Responses = upd.Responses
	}
	if upd.Comments != nil {
		review.Comments = *upd.Comments
	}
	if upd.Recommendation != nil {
		review.Recommendation = *upd.Recommendation
	}
	copied := *review
	return &copied, nil
}

func toStrings(value interface{}) []string {
	switch v := value.(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, item.(string))
		}
		return out
	}
	return nil
}
