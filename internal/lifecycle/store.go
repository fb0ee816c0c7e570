package lifecycle

import (
	"context"
	"time"

	"github.com/google/uuid"

	"confportal-backend/internal/models"
)

// Store is the persistence seam for the lifecycle engine. The bulk methods
// must be implemented as conditional updates keyed on the current stored
// value ("set ongoing where not already ongoing and not canceled"), so that
// overlapping sweeps and request-driven operations converge without any
// application-level locking.
//
// Implementations return ErrNotFound and ErrDuplicateReview for the domain
// conditions and wrap everything else in *PersistenceError.
type Store interface {
	// GetConference loads a conference by id.
	GetConference(ctx context.Context, id uuid.UUID) (*models.Conference, error)

	// MarkConferencesOngoing sets status to ongoing for every conference
	// with start_date <= now <= end_date whose status is neither ongoing
	// nor canceled. Returns the number of rows changed.
	MarkConferencesOngoing(ctx context.Context, now time.Time) (int64, error)

	// MarkConferencesCompleted sets status to completed for every conference
	// with end_date < now whose status is neither completed nor canceled.
	MarkConferencesCompleted(ctx context.Context, now time.Time) (int64, error)

	// CreatePaper inserts a new paper.
	CreatePaper(ctx context.Context, p *models.Paper) error

	// UpdatePaperFields applies the given column updates to the paper
	// matching (paperID, authorID). No matching row is ErrNotFound,
	// covering both a missing paper and one owned by someone else.
	UpdatePaperFields(ctx context.Context, paperID, authorID uuid.UUID, fields map[string]interface{}) (*models.Paper, error)

	// SetPaperStatus unconditionally sets a paper's status. Missing paper
	// is ErrNotFound.
	SetPaperStatus(ctx context.Context, paperID uuid.UUID, status string) error

	// ForceSubmitDrafts moves every draft paper belonging to an ongoing
	// conference whose submission deadline precedes now to submitted.
	ForceSubmitDrafts(ctx context.Context, now time.Time) (int64, error)

	// EnableResubmissions sets resubmission_allowed on every
	// accepted_with_changes paper where it is not set yet.
	EnableResubmissions(ctx context.Context) (int64, error)

	// CreateReview inserts a review. A second review for the same
	// (paper, reviewer) pair is ErrDuplicateReview; the unique index on
	// that pair is the sole safeguard against concurrent double-submission.
	CreateReview(ctx context.Context, r *models.Review) error

	// UpdateReview applies the non-nil parts of upd to an existing review.
	UpdateReview(ctx context.Context, reviewID uuid.UUID, upd ReviewUpdate) (*models.Review, error)
}

// ReviewUpdate carries the updatable review fields; nil means "leave as is".
type ReviewUpdate struct {
	Responses      []models.QuestionResponse
	Comments       *string
	Recommendation *string
}

func (u ReviewUpdate) Empty() bool {
	return u.Responses == nil && u.Comments == nil && u.Recommendation == nil
}
