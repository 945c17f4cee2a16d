// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mixlist/mixlist/internal/platform/metrics"
	"github.com/mixlist/mixlist/pkg/pagination"
)

// exportLimit caps the PDF export to the most recent entries.
const exportLimit = 500

// Recorder is the write-side contract the other domains depend on.
//
// # Contract
//
// Record is called AFTER the primary write has committed. It never returns an
// error: a failed audit write is logged and counted, but the user-facing
// operation has already succeeded and must not be rolled back or failed
// retroactively.
type Recorder interface {
	Record(context context.Context, action Action, actorID *int64, targetID *int64)
}

// Service implements both the [Recorder] write side and the administrator
// read side of the audit trail.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// # Recording

/*
Record appends an entry to the audit trail.

Parameters:
  - context: context.Context
  - action: Action (must be one of the closed action set)
  - actorID: *int64 (nil for system-initiated events)
  - targetID: *int64 (nil when the action has no specific entity)
*/
func (service *Service) Record(ctx context.Context, action Action, actorID *int64, targetID *int64) {
	if !action.Valid() {
		service.logger.WarnContext(ctx, "audit_unknown_action", slog.String("action", string(action)))
		return
	}

	entry := &Entry{
		ActorID:    actorID,
		Action:     action,
		EntityType: action.EntityType(),
		TargetID:   targetID,
		Details:    action.Message(),
	}

	if err := service.repo.Insert(ctx, entry); err != nil {
		// The primary operation already committed. Log and count, never propagate.
		metrics.AuditRecordFailuresTotal.Inc()
		service.logger.ErrorContext(ctx, "audit_record_failed",
			slog.String("action", string(action)),
			slog.Any("error", err),
		)
		return
	}

	metrics.AuditRecordsTotal.WithLabelValues(string(action)).Inc()
}

// # Administrator Reads

/*
List returns one page of the audit trail, newest first.

Parameters:
  - context: context.Context
  - filter: Filter (optional action / actor narrowing)
  - params: pagination.Params (already clamped by the caller)

Returns:
  - []*EntryWithActor: Enriched page of entries
  - pagination.Meta: Page metadata
  - error: Database retrieval failures
*/
func (service *Service) List(ctx context.Context, filter Filter, params pagination.Params) ([]*EntryWithActor, pagination.Meta, error) {
	entries, total, err := service.repo.List(ctx, filter, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return entries, pagination.NewMeta(params.Page, params.Limit, total), nil
}

/*
Get returns a single audit entry by ID.

Returns:
  - *EntryWithActor: Hydrated entity
  - error: apperr.NotFound if the entry does not exist
*/
func (service *Service) Get(ctx context.Context, id int64) (*EntryWithActor, error) {
	return service.repo.FindByID(ctx, id)
}

/*
ActionSummary returns per-action totals, most frequent first.
*/
func (service *Service) ActionSummary(ctx context.Context) ([]*ActionCount, error) {
	return service.repo.CountByAction(ctx)
}

/*
ExportPDF renders the most recent entries into a PDF report.

Returns:
  - []byte: The rendered document
  - string: Suggested attachment filename (date-stamped)
  - error: Retrieval or rendering failures
*/
func (service *Service) ExportPDF(ctx context.Context) ([]byte, string, error) {
	entries, err := service.repo.ListRecent(ctx, exportLimit)
	if err != nil {
		return nil, "", err
	}

	document, err := renderReport(entries, time.Now())
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("audit-log-%s.pdf", time.Now().Format("2006-01-02"))
	return document, filename, nil
}
