// Package store implements the lifecycle persistence seam on Postgres. All
// sweep queries are single conditional UPDATE statements keyed on the
// current stored status, which is what makes overlapping sweeps safe.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"confportal-backend/internal/database"
	"confportal-backend/internal/lifecycle"
	"confportal-backend/internal/models"
)

type Postgres struct {
	db *database.Database
}

func NewPostgres(db *database.Database) *Postgres {
	return &Postgres{db: db}
}

func persistErr(op string, err error) error {
	return &lifecycle.PersistenceError{Op: op, Err: err}
}

func (s *Postgres) GetConference(ctx context.Context, id uuid.UUID) (*models.Conference, error) {
	query := `
		SELECT id, year, location, university, start_date, end_date,
		       submission_deadline, review_deadline, status, created_by,
		       created_at, updated_at
		FROM conferences
		WHERE id = $1
	`

	var conf models.Conference
	err := s.db.Pool.QueryRow(ctx, query, id).Scan(
		&conf.ID, &conf.Year, &conf.Location, &conf.University, &conf.StartDate, &conf.EndDate,
		&conf.SubmissionDeadline, &conf.ReviewDeadline, &conf.Status, &conf.CreatedBy,
		&conf.CreatedAt, &conf.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, lifecycle.ErrNotFound
	}
	if err != nil {
		return nil, persistErr("get conference", err)
	}
	return &conf, nil
}

func (s *Postgres) MarkConferencesOngoing(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE conferences
		SET status = $1, updated_at = NOW()
		WHERE start_date <= $2 AND end_date >= $2
		  AND status NOT IN ($1, $3)
	`

	tag, err := s.db.Pool.Exec(ctx, query, models.ConferenceOngoing, now, models.ConferenceCanceled)
	if err != nil {
		return 0, persistErr("mark conferences ongoing", err)
	}
	return tag.RowsAffected(), nil
}

func (s *Postgres) MarkConferencesCompleted(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE conferences
		SET status = $1, updated_at = NOW()
		WHERE end_date < $2
		  AND status NOT IN ($1, $3)
	`

	tag, err := s.db.Pool.Exec(ctx, query, models.ConferenceCompleted, now, models.ConferenceCanceled)
	if err != nil {
		return 0, persistErr("mark conferences completed", err)
	}
	return tag.RowsAffected(), nil
}

func (s *Postgres) CreatePaper(ctx context.Context, p *models.Paper) error {
	query := `
		INSERT INTO papers (id, title, abstract, keywords, authors, category_id,
		                    conference_id, user_id, file_url, status, final_version, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at
	`

	err := s.db.Pool.QueryRow(ctx, query,
		p.ID, p.Title, p.Abstract, p.Keywords, p.Authors, p.CategoryID,
		p.ConferenceID, p.UserID, p.FileURL, p.Status, p.FinalVersion, p.SubmittedAt,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return lifecycle.ErrNotFound
		}
		return persistErr("create paper", err)
	}
	return nil
}

// paperColumns maps the editable update fields to their columns. Anything
// not listed here is silently dropped from an edit payload.
var paperColumns = map[string]string{
	"title":         "title",
	"abstract":      "abstract",
	"keywords":      "keywords",
	"authors":       "authors",
	"category_id":   "category_id",
	"file_url":      "file_url",
	"final_version": "final_version",
}

func (s *Postgres) UpdatePaperFields(ctx context.Context, paperID, authorID uuid.UUID, fields map[string]interface{}) (*models.Paper, error) {
	setClauses := make([]string, 0, len(fields)+1)
	args := make([]interface{}, 0, len(fields)+2)
	for field, value := range fields {
		column, ok := paperColumns[field]
		if !ok {
			continue
		}
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if len(setClauses) == 0 {
		return nil, fmt.Errorf("%w: no editable fields in update", lifecycle.ErrValidation)
	}
	setClauses = append(setClauses, "updated_at = NOW()")

	args = append(args, paperID)
	paperArg := len(args)
	args = append(args, authorID)
	authorArg := len(args)

	query := fmt.Sprintf(`
		UPDATE papers
		SET %s
		WHERE id = $%d AND user_id = $%d
		RETURNING id, title, abstract, keywords, authors, category_id, conference_id,
		          user_id, reviewer_id, file_url, status, final_version,
		          resubmission_allowed, submitted_at, created_at, updated_at
	`, strings.Join(setClauses, ", "), paperArg, authorArg)

	paper, err := scanPaper(s.db.Pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, lifecycle.ErrNotFound
	}
	if err != nil {
		return nil, persistErr("update paper", err)
	}
	return paper, nil
}

func (s *Postgres) SetPaperStatus(ctx context.Context, paperID uuid.UUID, status string) error {
	query := `UPDATE papers SET status = $1, updated_at = NOW() WHERE id = $2`

	tag, err := s.db.Pool.Exec(ctx, query, status, paperID)
	if err != nil {
		return persistErr("set paper status", err)
	}
	if tag.RowsAffected() == 0 {
		return lifecycle.ErrNotFound
	}
	return nil
}

func (s *Postgres) ForceSubmitDrafts(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE papers
		SET status = $1, updated_at = NOW()
		WHERE status = $2
		  AND conference_id IN (
			SELECT id FROM conferences
			WHERE status = $3 AND submission_deadline < $4
		  )
	`

	tag, err := s.db.Pool.Exec(ctx, query,
		models.PaperSubmitted, models.PaperDraft, models.ConferenceOngoing, now)
	if err != nil {
		return 0, persistErr("force submit drafts", err)
	}
	return tag.RowsAffected(), nil
}

func (s *Postgres) EnableResubmissions(ctx context.Context) (int64, error) {
	query := `
		UPDATE papers
		SET resubmission_allowed = TRUE, updated_at = NOW()
		WHERE status = $1 AND resubmission_allowed = FALSE
	`

	tag, err := s.db.Pool.Exec(ctx, query, models.PaperAcceptedWithChanges)
	if err != nil {
		return 0, persistErr("enable resubmissions", err)
	}
	return tag.RowsAffected(), nil
}

func (s *Postgres) CreateReview(ctx context.Context, r *models.Review) error {
	query := `
		INSERT INTO reviews (id, paper_id, reviewer_id, responses, comments, recommendation)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err := s.db.Pool.QueryRow(ctx, query,
		r.ID, r.PaperID, r.ReviewerID, r.Responses, r.Comments, r.Recommendation,
	).Scan(&r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.UniqueViolation:
				return lifecycle.ErrDuplicateReview
			case pgerrcode.ForeignKeyViolation:
				return lifecycle.ErrNotFound
			}
		}
		return persistErr("create review", err)
	}
	return nil
}

func (s *Postgres) UpdateReview(ctx context.Context, reviewID uuid.UUID, upd lifecycle.ReviewUpdate) (*models.Review, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	if upd.Responses != nil {
		args = append(args, upd.Responses)
		setClauses = append(setClauses, fmt.Sprintf("responses = $%d", len(args)))
	}
	if upd.Comments != nil {
		args = append(args, *upd.Comments)
		setClauses = append(setClauses, fmt.Sprintf("comments = $%d", len(args)))
	}
	if upd.Recommendation != nil {
		args = append(args, *upd.Recommendation)
		setClauses = append(setClauses, fmt.Sprintf("recommendation = $%d", len(args)))
	}

	args = append(args, reviewID)
	query := fmt.Sprintf(`
		UPDATE reviews
		SET %s
		WHERE id = $%d
		RETURNING id, paper_id, reviewer_id, responses, comments, recommendation, created_at, updated_at
	`, strings.Join(setClauses, ", "), len(args))

	var review models.Review
	err := s.db.Pool.QueryRow(ctx, query, args...).Scan(
		&review.ID, &review.PaperID, &review.ReviewerID, &review.Responses,
		&review.Comments, &review.Recommendation, &review.CreatedAt, &review.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, lifecycle.ErrNotFound
	}
	if err != nil {
		return nil, persistErr("update review", err)
	}
	return &review, nil
}

func scanPaper(row pgx.Row) (*models.Paper, error) {
	var p models.Paper
	err := row.Scan(
		&p.ID, &p.Title, &p.Abstract, &p.Keywords, &p.Authors, &p.CategoryID, &p.ConferenceID,
		&p.UserID, &p.ReviewerID, &p.FileURL, &p.Status, &p.FinalVersion,
		&p.ResubmissionAllowed, &p.SubmittedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
