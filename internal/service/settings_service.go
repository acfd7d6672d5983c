package service

import (
	"context"

	"course_admin_gateway/internal/model"
	"course_admin_gateway/internal/upstream"
	"course_admin_gateway/internal/util"
)

// SettingsService fronts the upstream key/value store. Values are strings
// end to end; booleans travel as "true"/"false".
type SettingsService struct {
	Upstream *upstream.Client
	Audit    *AuditService
}

func NewSettingsService(client *upstream.Client, audit *AuditService) *SettingsService {
	return &SettingsService{Upstream: client, Audit: audit}
}

func (s *SettingsService) All(ctx context.Context) ([]model.Setting, error) {
	return s.Upstream.GetAllSettings(ctx)
}

func (s *SettingsService) Contact(ctx context.Context) (model.ContactSettings, error) {
	return s.Upstream.GetContactSettings(ctx)
}

func (s *SettingsService) Update(ctx context.Context, actor, key, value string) error {
	if key == "" {
		return util.ErrKeyRequired
	}
	if err := s.Upstream.UpdateSetting(ctx, key, value); err != nil {
		return err
	}
	s.Audit.Record(actor, model.ActionUpdate, "setting", key, value)
	return nil
}

func (s *SettingsService) Add(ctx context.Context, actor, key, value string) (model.Setting, error) {
	if key == "" {
		return model.Setting{}, util.ErrKeyRequired
	}
	created, err := s.Upstream.AddSetting(ctx, key, value)
	if err != nil {
		return model.Setting{}, err
	}
	s.Audit.Record(actor, model.ActionCreate, "setting", key, value)
	return created, nil
}

func (s *SettingsService) UpdateAll(ctx context.Context, actor string, values map[string]string) error {
	for key := range values {
		if key == "" {
			return util.ErrKeyRequired
		}
	}
	if err := s.Upstream.UpdateAllSettings(ctx, values); err != nil {
		return err
	}
	s.Audit.Record(actor, model.ActionUpdate, "setting", "*", "bulk update")
	return nil
}
