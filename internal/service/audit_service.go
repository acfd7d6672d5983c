package service

import (
	"time"

	"course_admin_gateway/internal/model"
	"course_admin_gateway/internal/repository"
	"course_admin_gateway/internal/view"
	"course_admin_gateway/pkg/logger"

	"go.uber.org/zap"
)

// auditFetchLimit caps how much of the trail one listing pulls before the
// view filter runs.
const auditFetchLimit = 1000

type AuditService struct {
	Repo *repository.AuditRepository
}

func NewAuditService(repo *repository.AuditRepository) *AuditService {
	return &AuditService{Repo: repo}
}

// Record appends a trail entry asynchronously; the mutation it describes
// never waits on the audit write.
func (s *AuditService) Record(actor, action, entityType, entityID, summary string) {
	if s == nil || s.Repo == nil {
		return
	}
	rec := &model.AuditRecord{
		Actor:      actor,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Summary:    summary,
	}
	go func() {
		if err := s.Repo.Create(rec); err != nil {
			logger.Log.Error("failed to write audit record",
				zap.String("action", action),
				zap.String("entity", entityType),
				zap.Error(err))
		}
	}()
}

// List returns the visible page of the audit trail under the given view
// parameters.
func (s *AuditService) List(p view.Params) (view.Result[model.AuditRecord], error) {
	records, err := s.Repo.ListRecent(auditFetchLimit)
	if err != nil {
		return view.Result[model.AuditRecord]{}, err
	}
	return view.Apply(records, p), nil
}

// PurgeOlderThan trims the trail; called from the retention sweeper.
func (s *AuditService) PurgeOlderThan(age time.Duration) (int64, error) {
	return s.Repo.PurgeOlderThan(time.Now().Add(-age))
}
