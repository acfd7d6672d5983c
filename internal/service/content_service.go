package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"course_admin_gateway/internal/model"
	"course_admin_gateway/internal/upstream"
	"course_admin_gateway/internal/util"
	"course_admin_gateway/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FileView decorates an attachment with the display fields the file table
// shows.
type FileView struct {
	model.File
	DisplaySize string `json:"displaySize"`
	Kind        string `json:"kind"`
}

// BundleErrors carries per-collection failure messages. A collection that
// failed is present as an empty list alongside its message; the other two are
// untouched.
type BundleErrors struct {
	Lessons   string `json:"lessons,omitempty"`
	Files     string `json:"files,omitempty"`
	Questions string `json:"questions,omitempty"`
}

func (e BundleErrors) Any() bool {
	return e.Lessons != "" || e.Files != "" || e.Questions != ""
}

// ContentBundle is everything a resolved course level contains.
type ContentBundle struct {
	LevelID   string               `json:"levelId"`
	Lessons   []model.Lesson       `json:"lessons"`
	Files     []FileView           `json:"files"`
	Questions []model.QuizQuestion `json:"questions"`
	Errors    BundleErrors         `json:"errors"`
}

// ContentService loads and mutates a level's three content collections.
type ContentService struct {
	Upstream *upstream.Client
	Link     *LinkService
	Storage  *StorageService
	Audit    *AuditService
}

func NewContentService(client *upstream.Client, link *LinkService, storage *StorageService, audit *AuditService) *ContentService {
	return &ContentService{Upstream: client, Link: link, Storage: storage, Audit: audit}
}

// LoadBundle fetches lessons, files and quiz questions concurrently. The
// three fetches are independent: one failing leaves the other two alone, and
// the failed collection comes back empty with its own error message.
func (s *ContentService) LoadBundle(ctx context.Context, levelID string) ContentBundle {
	bundle := ContentBundle{
		LevelID:   levelID,
		Lessons:   []model.Lesson{},
		Files:     []FileView{},
		Questions: []model.QuizQuestion{},
	}

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		lessons, err := s.Upstream.ListLessons(ctx, levelID)
		if err != nil {
			bundle.Errors.Lessons = err.Error()
			return
		}
		if lessons != nil {
			bundle.Lessons = lessons
		}
	}()

	go func() {
		defer wg.Done()
		files, err := s.Upstream.ListFiles(ctx, levelID)
		if err != nil {
			bundle.Errors.Files = err.Error()
			return
		}
		// The upstream has been observed returning files beyond the
		// requested level; keep only the ones that belong here.
		for _, f := range files {
			if f.CourseLevelID != levelID {
				continue
			}
			f.URL = util.ResolveAssetURL(s.Upstream.AssetBase(), f.URL)
			bundle.Files = append(bundle.Files, FileView{
				File:        f,
				DisplaySize: util.FormatSize(f.Size),
				Kind:        util.ClassifyKind(f.Type),
			})
		}
	}()

	go func() {
		defer wg.Done()
		questions, err := s.Upstream.ListQuizQuestions(ctx, levelID)
		if err != nil {
			bundle.Errors.Questions = err.Error()
			return
		}
		if questions != nil {
			bundle.Questions = questions
		}
	}()

	wg.Wait()

	if bundle.Errors.Any() {
		logger.Log.Warn("content bundle loaded with failures",
			zap.String("level", levelID),
			zap.String("lessons", bundle.Errors.Lessons),
			zap.String("files", bundle.Errors.Files),
			zap.String("questions", bundle.Errors.Questions))
	}

	return bundle
}

type LessonRequest struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	YoutubeURL     string `json:"youtubeUrl"`
	YoutubeID      string `json:"youtubeId"`
	GoogleDriveURL string `json:"googleDriveUrl"`
	DurationSec    int    `json:"durationSec"`
	OrderIndex     int    `json:"orderIndex"`
	IsFreePreview  bool   `json:"isFreePreview"`
	IsActive       bool   `json:"isActive"`
	CourseLevelID  string `json:"courseLevelId"`
}

// validateLesson gates the save: title present, and the YouTube link both
// well-formed and pointing at a video that exists. The derived 11-character
// id is filled in from the validated URL.
func (s *ContentService) validateLesson(ctx context.Context, req *LessonRequest) error {
	if req.Title == "" {
		return util.ErrTitleRequired
	}
	verdict, ok := s.Link.GateForSave(ctx, req.YoutubeURL)
	if !ok {
		return util.ErrPreviewURLRequired
	}
	req.YoutubeID = verdict.VideoID
	return nil
}

func (s *ContentService) CreateLesson(ctx context.Context, actor string, req LessonRequest) (model.Lesson, error) {
	if err := s.validateLesson(ctx, &req); err != nil {
		return model.Lesson{}, err
	}
	created, err := s.Upstream.CreateLesson(ctx, req)
	if err != nil {
		return model.Lesson{}, err
	}
	s.Audit.Record(actor, model.ActionCreate, "lesson", created.ID, created.Title)
	return created, nil
}

func (s *ContentService) UpdateLesson(ctx context.Context, actor, id string, req LessonRequest) error {
	if err := s.validateLesson(ctx, &req); err != nil {
		return err
	}
	if err := s.Upstream.UpdateLesson(ctx, id, req); err != nil {
		return err
	}
	s.Audit.Record(actor, model.ActionUpdate, "lesson", id, req.Title)
	return nil
}

func (s *ContentService) DeleteLesson(ctx context.Context, actor, id string) error {
	if err := s.Upstream.DeleteLesson(ctx, id); err != nil {
		return err
	}
	s.Audit.Record(actor, model.ActionDelete, "lesson", id, "")
	return nil
}

func (s *ContentService) SetLessonActive(ctx context.Context, actor, id string, active bool) error {
	if err := s.Upstream.SetLessonActive(ctx, id, active); err != nil {
		return err
	}
	s.Audit.Record(actor, model.ActionToggleActive, "lesson", id, fmt.Sprintf("active=%t", active))
	return nil
}

type QuizQuestionRequest struct {
	Text          string             `json:"text"`
	Order         int                `json:"order"`
	Options       []model.QuizOption `json:"options"`
	CourseLevelID string             `json:"courseLevelId"`
}

// ValidateQuizQuestion enforces the local invariant before any network call:
// at least two options, exactly one marked correct. The upstream does not
// verify this, so the gateway is the sole guard.
func ValidateQuizQuestion(req QuizQuestionRequest) error {
	if len(req.Options) < 2 {
		return util.ErrTooFewOptions
	}
	correct := 0
	for _, opt := range req.Options {
		if opt.IsCorrect {
			correct++
		}
	}
	if correct != 1 {
		return util.ErrNoCorrectOption
	}
	return nil
}

func (s *ContentService) CreateQuizQuestion(ctx context.Context, actor string, req QuizQuestionRequest) (model.QuizQuestion, error) {
	if err := ValidateQuizQuestion(req); err != nil {
		return model.QuizQuestion{}, err
	}
	created, err := s.Upstream.CreateQuizQuestion(ctx, req)
	if err != nil {
		return model.QuizQuestion{}, err
	}
	s.Audit.Record(actor, model.ActionCreate, "quiz_question", created.ID, created.Text)
	return created, nil
}

func (s *ContentService) UpdateQuizQuestion(ctx context.Context, actor, id string, req QuizQuestionRequest) error {
	if err := ValidateQuizQuestion(req); err != nil {
		return err
	}
	if err := s.Upstream.UpdateQuizQuestion(ctx, id, req); err != nil {
		return err
	}
	s.Audit.Record(actor, model.ActionUpdate, "quiz_question", id, req.Text)
	return nil
}

func (s *ContentService) DeleteQuizQuestion(ctx context.Context, actor, id string) error {
	if err := s.Upstream.DeleteQuizQuestion(ctx, id); err != nil {
		return err
	}
	s.Audit.Record(actor, model.ActionDelete, "quiz_question", id, "")
	return nil
}

// allowedUploadTypes are the sniffed content types the gateway forwards.
// text/html is deliberately absent so mislabeled pages and scripts are
// rejected; opaque binaries (office documents) sniff as octet-stream.
var allowedUploadTypes = []string{
	"application/pdf",
	"image/", "video/", "audio/",
	"text/plain",
	"application/zip", "application/x-rar-compressed",
	"application/octet-stream",
}

// UploadFile forwards a staff upload to the upstream, then mirrors a copy to
// the archive in the background. The declared content type is not trusted;
// the file's leading bytes decide whether it is accepted.
func (s *ContentService) UploadFile(ctx context.Context, actor, levelID, filename, contentType string, reader io.Reader) (FileView, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return FileView{}, err
	}

	sniffed, err := util.ValidateMimeType(bytes.NewReader(data), allowedUploadTypes)
	if err != nil {
		return FileView{}, err
	}

	part := &upstream.FilePart{
		Field:       "file",
		Filename:    filename,
		ContentType: contentType,
		Reader:      bytes.NewReader(data),
	}
	created, err := s.Upstream.UploadFile(ctx, levelID, filename, part)
	if err != nil {
		return FileView{}, err
	}
	created.URL = util.ResolveAssetURL(s.Upstream.AssetBase(), created.URL)

	// Archive under a generated name so repeated uploads of the same
	// filename never overwrite each other.
	archiveName := levelID + "/" + uuid.New().String() + filepath.Ext(filename)
	go s.Storage.Archive(archiveName, data, sniffed)

	s.Audit.Record(actor, model.ActionUpload, "file", created.ID, fmt.Sprintf("%s (%s)", filename, util.FormatSize(created.Size)))

	return FileView{
		File:        created,
		DisplaySize: util.FormatSize(created.Size),
		Kind:        util.ClassifyKind(created.Type),
	}, nil
}

func (s *ContentService) DeleteFile(ctx context.Context, actor, id string) error {
	if err := s.Upstream.DeleteFile(ctx, id); err != nil {
		return err
	}
	s.Audit.Record(actor, model.ActionDelete, "file", id, "")
	return nil
}
