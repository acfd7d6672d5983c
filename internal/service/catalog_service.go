package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"course_admin_gateway/internal/config"
	"course_admin_gateway/internal/model"
	"course_admin_gateway/internal/upstream"
	"course_admin_gateway/internal/util"
	"course_admin_gateway/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	keySpecializations = "catalog:specializations"
	keyCoursesPrefix   = "catalog:courses:"
	keyInstructorsPref = "catalog:instructors:"
	keyLevelsPrefix    = "catalog:levels:"
)

// CatalogService fronts the four catalog collections. Lists are cached in
// Redis with a short TTL and invalidated on mutation; a Redis outage degrades
// to a direct upstream fetch, never to a failed request.
type CatalogService struct {
	Upstream *upstream.Client
	Redis    *redis.Client
	Link     *LinkService
	Audit    *AuditService

	ttl       time.Duration
	assetBase string
}

func NewCatalogService(client *upstream.Client, rdb *redis.Client, link *LinkService, audit *AuditService, cfg *config.Config) *CatalogService {
	ttl := cfg.Redis.CatalogTTL
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &CatalogService{
		Upstream:  client,
		Redis:     rdb,
		Link:      link,
		Audit:     audit,
		ttl:       ttl,
		assetBase: cfg.Upstream.AssetBaseURL,
	}
}

func (s *CatalogService) cacheGet(ctx context.Context, key string, out interface{}) bool {
	if s.Redis == nil {
		return false
	}
	val, err := s.Redis.Get(ctx, key).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		logger.Log.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if err := json.Unmarshal([]byte(val), out); err != nil {
		return false
	}
	return true
}

func (s *CatalogService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.Redis == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.Redis.Set(ctx, key, data, s.ttl).Err(); err != nil {
		logger.Log.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *CatalogService) invalidate(ctx context.Context, keys ...string) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, keys...).Err(); err != nil {
		logger.Log.Warn("catalog cache invalidation failed", zap.Error(err))
	}
}

func (s *CatalogService) Specializations(ctx context.Context) ([]model.Specialization, error) {
	var cached []model.Specialization
	if s.cacheGet(ctx, keySpecializations, &cached) {
		return cached, nil
	}
	list, err := s.Upstream.ListSpecializations(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i].ImageURL = util.ResolveAssetURL(s.assetBase, list[i].ImageURL)
	}
	s.cacheSet(ctx, keySpecializations, list)
	return list, nil
}

func (s *CatalogService) Courses(ctx context.Context, specializationID string) ([]model.Course, error) {
	key := keyCoursesPrefix + specializationID
	var cached []model.Course
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}
	list, err := s.Upstream.ListCourses(ctx, specializationID)
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i].ImageURL = util.ResolveAssetURL(s.assetBase, list[i].ImageURL)
	}
	s.cacheSet(ctx, key, list)
	return list, nil
}

func (s *CatalogService) Instructors(ctx context.Context, courseID string) ([]model.Instructor, error) {
	key := keyInstructorsPref + courseID
	var cached []model.Instructor
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}
	list, err := s.Upstream.ListInstructors(ctx, courseID)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, list)
	return list, nil
}

// Levels lists a course's levels without the instructor restriction; the
// selection pipeline applies the instructor's levelIds on top.
func (s *CatalogService) Levels(ctx context.Context, courseID string) ([]model.CourseLevel, error) {
	key := keyLevelsPrefix + courseID
	var cached []model.CourseLevel
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}
	list, err := s.Upstream.ListLevels(ctx, courseID)
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i].ImageURL = util.ResolveAssetURL(s.assetBase, list[i].ImageURL)
		list[i].DownloadURL = util.ResolveAssetURL(s.assetBase, list[i].DownloadURL)
	}
	s.cacheSet(ctx, key, list)
	return list, nil
}

type SpecializationRequest struct {
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}

func (s *CatalogService) CreateSpecialization(ctx context.Context, actor string, req SpecializationRequest, image *upstream.FilePart) (model.Specialization, error) {
	if req.Name == "" {
		return model.Specialization{}, util.ErrNameRequired
	}
	created, err := s.Upstream.CreateSpecialization(ctx, req, image)
	if err != nil {
		return model.Specialization{}, err
	}
	s.invalidate(ctx, keySpecializations)
	s.Audit.Record(actor, model.ActionCreate, "specialization", created.ID, created.Name)
	return created, nil
}

func (s *CatalogService) UpdateSpecialization(ctx context.Context, actor, id string, req SpecializationRequest, image *upstream.FilePart) error {
	if req.Name == "" {
		return util.ErrNameRequired
	}
	if err := s.Upstream.UpdateSpecialization(ctx, id, req, image); err != nil {
		return err
	}
	s.invalidate(ctx, keySpecializations)
	s.Audit.Record(actor, model.ActionUpdate, "specialization", id, req.Name)
	return nil
}

func (s *CatalogService) DeleteSpecialization(ctx context.Context, actor, id string) error {
	if err := s.Upstream.DeleteSpecialization(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, keySpecializations)
	s.Audit.Record(actor, model.ActionDelete, "specialization", id, "")
	return nil
}

func (s *CatalogService) SetSpecializationActive(ctx context.Context, actor, id string, active bool) error {
	if err := s.Upstream.SetSpecializationActive(ctx, id, active); err != nil {
		return err
	}
	s.invalidate(ctx, keySpecializations)
	s.Audit.Record(actor, model.ActionToggleActive, "specialization", id, fmt.Sprintf("active=%t", active))
	return nil
}

type CourseRequest struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	SpecializationID string `json:"specializationId"`
	IsActive         bool   `json:"isActive"`
}

func (s *CatalogService) CreateCourse(ctx context.Context, actor string, req CourseRequest, image *upstream.FilePart) (model.Course, error) {
	if req.Title == "" {
		return model.Course{}, util.ErrTitleRequired
	}
	if req.SpecializationID == "" {
		return model.Course{}, util.ErrSelectionOrder
	}
	created, err := s.Upstream.CreateCourse(ctx, req, image)
	if err != nil {
		return model.Course{}, err
	}
	s.invalidate(ctx, keyCoursesPrefix+req.SpecializationID)
	s.Audit.Record(actor, model.ActionCreate, "course", created.ID, created.Title)
	return created, nil
}

func (s *CatalogService) UpdateCourse(ctx context.Context, actor, id string, req CourseRequest, image *upstream.FilePart) error {
	if req.Title == "" {
		return util.ErrTitleRequired
	}
	if err := s.Upstream.UpdateCourse(ctx, id, req, image); err != nil {
		return err
	}
	s.invalidate(ctx, keyCoursesPrefix+req.SpecializationID)
	s.Audit.Record(actor, model.ActionUpdate, "course", id, req.Title)
	return nil
}

func (s *CatalogService) DeleteCourse(ctx context.Context, actor, id, specializationID string) error {
	if err := s.Upstream.DeleteCourse(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, keyCoursesPrefix+specializationID)
	s.Audit.Record(actor, model.ActionDelete, "course", id, "")
	return nil
}

func (s *CatalogService) SetCourseActive(ctx context.Context, actor, id, specializationID string, active bool) error {
	if err := s.Upstream.SetCourseActive(ctx, id, active); err != nil {
		return err
	}
	s.invalidate(ctx, keyCoursesPrefix+specializationID)
	s.Audit.Record(actor, model.ActionToggleActive, "course", id, fmt.Sprintf("active=%t", active))
	return nil
}

type LevelRequest struct {
	Name         string  `json:"name"`
	Order        int     `json:"order"`
	PriceUSD     float64 `json:"priceUSD"`
	PriceSAR     float64 `json:"priceSAR"`
	IsFree       bool    `json:"isFree"`
	PreviewURL   string  `json:"previewUrl"`
	DownloadURL  string  `json:"downloadUrl"`
	InstructorID string  `json:"instructorId"`
	CourseID     string  `json:"courseId"`
	IsActive     bool    `json:"isActive"`
}

func (s *CatalogService) validateLevel(ctx context.Context, req LevelRequest) error {
	if req.Name == "" {
		return util.ErrNameRequired
	}
	if req.PreviewURL != "" {
		if _, ok := s.Link.GateForSave(ctx, req.PreviewURL); !ok {
			return util.ErrPreviewURLRequired
		}
	}
	return nil
}

func (s *CatalogService) CreateLevel(ctx context.Context, actor string, req LevelRequest, image *upstream.FilePart) (model.CourseLevel, error) {
	if err := s.validateLevel(ctx, req); err != nil {
		return model.CourseLevel{}, err
	}
	created, err := s.Upstream.CreateLevel(ctx, req, image)
	if err != nil {
		return model.CourseLevel{}, err
	}
	s.invalidate(ctx, keyLevelsPrefix+req.CourseID)
	s.Audit.Record(actor, model.ActionCreate, "course_level", created.ID, created.Name)
	return created, nil
}

func (s *CatalogService) UpdateLevel(ctx context.Context, actor, id string, req LevelRequest, image *upstream.FilePart) error {
	if err := s.validateLevel(ctx, req); err != nil {
		return err
	}
	if err := s.Upstream.UpdateLevel(ctx, id, req, image); err != nil {
		return err
	}
	s.invalidate(ctx, keyLevelsPrefix+req.CourseID)
	s.Audit.Record(actor, model.ActionUpdate, "course_level", id, req.Name)
	return nil
}

func (s *CatalogService) DeleteLevel(ctx context.Context, actor, id, courseID string) error {
	if err := s.Upstream.DeleteLevel(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, keyLevelsPrefix+courseID)
	s.Audit.Record(actor, model.ActionDelete, "course_level", id, "")
	return nil
}

func (s *CatalogService) SetLevelActive(ctx context.Context, actor, id, courseID string, active bool) error {
	if err := s.Upstream.SetLevelActive(ctx, id, active); err != nil {
		return err
	}
	s.invalidate(ctx, keyLevelsPrefix+courseID)
	s.Audit.Record(actor, model.ActionToggleActive, "course_level", id, fmt.Sprintf("active=%t", active))
	return nil
}
