package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/league-engine/internal/domain/jobscheduler"
	qb "github.com/riskibarqy/league-engine/internal/platform/querybuilder"
)

type jobDispatchInsertModel struct {
	DispatchID  string     `db:"dispatch_id"`
	JobName     string     `db:"job_name"`
	JobPath     string     `db:"job_path"`
	SeasonID    string     `db:"season_public_id"`
	Payload     string     `db:"payload"`
	Status      string     `db:"status"`
	SentAt      *time.Time `db:"sent_at"`
	CompletedAt *time.Time `db:"completed_at"`
	FailedAt    *time.Time `db:"failed_at"`
	LastError   *string    `db:"last_error"`
	TraceID     *string    `db:"trace_id"`
	SpanID      *string    `db:"span_id"`
}

// upsertDispatchSuffix keeps the first sent/completed/failed timestamps per
// status and lets a later completion clear an earlier failure.
const upsertDispatchSuffix = `ON CONFLICT (dispatch_id) WHERE deleted_at IS NULL
DO UPDATE SET
    job_name = EXCLUDED.job_name,
    job_path = EXCLUDED.job_path,
    season_public_id = EXCLUDED.season_public_id,
    payload = EXCLUDED.payload,
    status = EXCLUDED.status,
    sent_at = COALESCE(job_dispatches.sent_at, EXCLUDED.sent_at),
    completed_at = COALESCE(EXCLUDED.completed_at, job_dispatches.completed_at),
    failed_at = CASE
        WHEN EXCLUDED.status = 'completed' THEN NULL
        ELSE COALESCE(EXCLUDED.failed_at, job_dispatches.failed_at)
    END,
    last_error = CASE
        WHEN EXCLUDED.status = 'failed' THEN EXCLUDED.last_error
        ELSE NULL
    END,
    trace_id = COALESCE(EXCLUDED.trace_id, job_dispatches.trace_id),
    span_id = COALESCE(EXCLUDED.span_id, job_dispatches.span_id),
    updated_at = NOW(),
    deleted_at = NULL`

type JobDispatchRepository struct {
	db *sqlx.DB
}

func NewJobDispatchRepository(db *sqlx.DB) *JobDispatchRepository {
	return &JobDispatchRepository{db: db}
}

func (r *JobDispatchRepository) UpsertEvent(ctx context.Context, event jobscheduler.DispatchEvent) error {
	model, err := dispatchModelFromEvent(event)
	if err != nil {
		return err
	}

	query, args, err := qb.InsertModel("job_dispatches", model, upsertDispatchSuffix)
	if err != nil {
		return fmt.Errorf("build upsert job dispatch query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert job dispatch dispatch_id=%s status=%s: %w", model.DispatchID, event.Status, err)
	}
	return nil
}

func dispatchModelFromEvent(event jobscheduler.DispatchEvent) (jobDispatchInsertModel, error) {
	if err := event.Validate(); err != nil {
		return jobDispatchInsertModel{}, err
	}
	dispatchID := strings.TrimSpace(event.DispatchID)

	payload, err := marshalPayload(event.Payload)
	if err != nil {
		return jobDispatchInsertModel{}, fmt.Errorf("marshal job dispatch payload: %w", err)
	}

	occurredAt := event.OccurredAt.UTC()
	if event.OccurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	model := jobDispatchInsertModel{
		DispatchID: dispatchID,
		JobName:    valueOr(event.JobName, "unknown"),
		JobPath:    valueOr(event.JobPath, "/unknown"),
		SeasonID:   valueOr(event.SeasonID, "unknown"),
		Payload:    payload,
		Status:     string(event.Status),
		TraceID:    optionalString(event.TraceID),
		SpanID:     optionalString(event.SpanID),
	}
	switch event.Status {
	case jobscheduler.StatusSent:
		model.SentAt = &occurredAt
	case jobscheduler.StatusCompleted:
		model.CompletedAt = &occurredAt
	case jobscheduler.StatusFailed:
		model.FailedAt = &occurredAt
		model.LastError = optionalString(event.ErrorMessage)
	}
	return model, nil
}

func marshalPayload(payload map[string]any) (string, error) {
	if len(payload) == 0 {
		return "{}", nil
	}
	raw, err := sonic.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func valueOr(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	return value
}
