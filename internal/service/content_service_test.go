package service

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"course_admin_gateway/internal/model"
	"course_admin_gateway/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contentHandler() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/lessons", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":[
			{"id":"les-1","title":"Intro","youtubeId":"dQw4w9WgXcQ","orderIndex":1},
			{"id":"les-2","title":"Basics","youtubeId":"aaaaaaaaaaa","orderIndex":2}
		]}`))
	})
	mux.HandleFunc("/files", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"items":[
			{"id":"f-1","name":"notes.pdf","type":"application/pdf","size":2097152,"url":"/uploads/notes.pdf","courseLevelId":"lvl-1"},
			{"id":"f-2","name":"other.pdf","type":"application/pdf","size":1024,"url":"/uploads/other.pdf","courseLevelId":"lvl-9"}
		]}}`))
	})
	mux.HandleFunc("/quiz/questions", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":[
			{"id":"q-1","text":"What is anatomy?","order":1,"options":[
				{"id":"o-1","text":"A","isCorrect":true},
				{"id":"o-2","text":"B","isCorrect":false}
			]}
		]}`))
	})
	return mux
}

func newTestContent(t *testing.T, handler http.Handler) *ContentService {
	t.Helper()
	client := newTestUpstream(t, handler)
	link := newTestLinkService(t, existingVideoHandler)
	return NewContentService(client, link, &StorageService{}, nil)
}

func TestLoadBundleAllCollections(t *testing.T) {
	svc := newTestContent(t, contentHandler())

	bundle := svc.LoadBundle(context.Background(), "lvl-1")

	assert.False(t, bundle.Errors.Any())
	assert.Len(t, bundle.Lessons, 2)
	assert.Len(t, bundle.Questions, 1)

	// The stray lvl-9 file is dropped; the survivor carries display fields.
	require.Len(t, bundle.Files, 1)
	f := bundle.Files[0]
	assert.Equal(t, "f-1", f.ID)
	assert.Equal(t, "2.00 MB", f.DisplaySize)
	assert.Equal(t, "PDF", f.Kind)
}

func TestLoadBundlePartialFailureIsIsolated(t *testing.T) {
	failing := http.NewServeMux()
	failing.HandleFunc("/lessons", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"success":false,"message":"lessons store offline"}`))
	})
	failing.HandleFunc("/", contentHandler().ServeHTTP)

	svc := newTestContent(t, failing)
	bundle := svc.LoadBundle(context.Background(), "lvl-1")

	assert.Equal(t, "lessons store offline", bundle.Errors.Lessons)
	assert.Empty(t, bundle.Errors.Files)
	assert.Empty(t, bundle.Errors.Questions)
	assert.Empty(t, bundle.Lessons)
	assert.Len(t, bundle.Files, 1)
	assert.Len(t, bundle.Questions, 1)
}

func TestLoadBundleQuizSentinelMeansEmpty(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/quiz/questions", func(w http.ResponseWriter, r *http.Request) {
		// The upstream reports "no questions" as an error-shaped response
		// with a fixed message; it must normalize to an empty success.
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"message":"لا توجد أسئلة لهذا المستوى"}`))
	})
	mux.HandleFunc("/", contentHandler().ServeHTTP)

	svc := newTestContent(t, mux)
	bundle := svc.LoadBundle(context.Background(), "lvl-1")

	assert.Empty(t, bundle.Errors.Questions)
	assert.Empty(t, bundle.Questions)
}

func TestCreateLessonRejectsBadLink(t *testing.T) {
	upstreamCalled := false
	mux := http.NewServeMux()
	mux.HandleFunc("/lessons", func(w http.ResponseWriter, r *http.Request) {
		upstreamCalled = true
	})
	svc := newTestContent(t, mux)

	_, err := svc.CreateLesson(context.Background(), "admin", LessonRequest{
		Title:      "Intro",
		YoutubeURL: "https://vimeo.com/123",
	})

	assert.ErrorIs(t, err, util.ErrPreviewURLRequired)
	assert.False(t, upstreamCalled)
}

func TestCreateLessonRequiresTitle(t *testing.T) {
	svc := newTestContent(t, http.NewServeMux())

	_, err := svc.CreateLesson(context.Background(), "admin", LessonRequest{
		YoutubeURL: "https://youtu.be/dQw4w9WgXcQ",
	})

	assert.ErrorIs(t, err, util.ErrTitleRequired)
}

func TestCreateLessonFillsVideoID(t *testing.T) {
	var gotBody string
	mux := http.NewServeMux()
	mux.HandleFunc("/lessons", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Write([]byte(`{"success":true,"data":{"id":"les-9","title":"Intro"}}`))
	})
	svc := newTestContent(t, mux)

	created, err := svc.CreateLesson(context.Background(), "admin", LessonRequest{
		Title:      "Intro",
		YoutubeURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
	})

	require.NoError(t, err)
	assert.Equal(t, "les-9", created.ID)
	assert.Contains(t, gotBody, `"youtubeId":"dQw4w9WgXcQ"`)
}

func TestValidateQuizQuestion(t *testing.T) {
	correct := model.QuizOption{Text: "A", IsCorrect: true}
	wrong := model.QuizOption{Text: "B"}

	err := ValidateQuizQuestion(QuizQuestionRequest{Options: []model.QuizOption{correct}})
	assert.ErrorIs(t, err, util.ErrTooFewOptions)

	err = ValidateQuizQuestion(QuizQuestionRequest{Options: []model.QuizOption{wrong, wrong}})
	assert.ErrorIs(t, err, util.ErrNoCorrectOption)

	err = ValidateQuizQuestion(QuizQuestionRequest{Options: []model.QuizOption{correct, correct}})
	assert.ErrorIs(t, err, util.ErrNoCorrectOption)

	err = ValidateQuizQuestion(QuizQuestionRequest{Options: []model.QuizOption{correct, wrong}})
	assert.NoError(t, err)
}

func TestUploadFileForwardsMultipart(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/files/upload", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "lvl-1", r.FormValue("courseLevelId"))
		assert.Equal(t, "notes.pdf", r.FormValue("originalFileName"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "notes.pdf", header.Filename)

		w.Write([]byte(`{"success":true,"data":{"data":
			{"id":"f-9","name":"notes.pdf","type":"application/pdf","size":2097152,"url":"/uploads/notes.pdf","courseLevelId":"lvl-1"}
		}}`))
	})
	svc := newTestContent(t, mux)

	view, err := svc.UploadFile(context.Background(), "admin", "lvl-1", "notes.pdf", "application/pdf", strings.NewReader("%PDF-1.4 fake"))

	require.NoError(t, err)
	assert.Equal(t, "f-9", view.ID)
	assert.Equal(t, "2.00 MB", view.DisplaySize)
	assert.Equal(t, "PDF", view.Kind)
}

func TestUploadFileRejectsMismatchedContent(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/files/upload", func(w http.ResponseWriter, r *http.Request) {
		t.Error("a rejected upload must not reach the upstream")
	})
	svc := newTestContent(t, mux)

	_, err := svc.UploadFile(context.Background(), "admin", "lvl-1", "notes.pdf", "application/pdf",
		strings.NewReader("<!DOCTYPE html><html><body>not a pdf</body></html>"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid file type")
}
