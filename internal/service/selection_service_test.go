package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"course_admin_gateway/internal/config"
	"course_admin_gateway/internal/upstream"
	"course_admin_gateway/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUpstream(t *testing.T, handler http.Handler) *upstream.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return upstream.NewClient(&config.UpstreamConfig{
		BaseURL:           srv.URL,
		Timeout:           5 * time.Second,
		QuizEmptySentinel: "لا توجد أسئلة",
	})
}

func newTestCatalog(client *upstream.Client) *CatalogService {
	return NewCatalogService(client, nil, NewLinkService(&config.ProbeConfig{}), nil, &config.Config{})
}

// catalogHandler serves the three list endpoints with the nesting shapes the
// upstream has been seen using, one shape per collection.
func catalogHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/courses", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"items":[
			{"id":"course-1","title":"Anatomy","specializationId":"spec-1"},
			{"id":"course-2","title":"Physiology","specializationId":"spec-1"}
		]}}`))
	})
	mux.HandleFunc("/instructors", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"data":[
			{"id":"inst-1","name":"Dr. Salem","levelIds":["lvl-1"]},
			{"id":"inst-2","name":"Dr. Huda","levelIds":["lvl-1","lvl-2"]}
		]}}`))
	})
	mux.HandleFunc("/course-levels", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":[
			{"id":"lvl-1","name":"Level One","order":1},
			{"id":"lvl-2","name":"Level Two","order":2}
		]}`))
	})
	return mux
}

func newTestSelection(t *testing.T) *SelectionService {
	client := newTestUpstream(t, catalogHandler())
	return NewSelectionService(newTestCatalog(client))
}

func TestSelectionFullDrillDown(t *testing.T) {
	svc := newTestSelection(t)
	ctx := context.Background()

	sel, err := svc.ChooseSpecialization(ctx, "sess", "spec-1")
	require.NoError(t, err)
	assert.Equal(t, StateSpecializationChosen, sel.State)
	assert.Len(t, sel.Courses, 2)

	sel, err = svc.ChooseCourse(ctx, "sess", "course-1")
	require.NoError(t, err)
	assert.Equal(t, StateCourseChosen, sel.State)
	assert.Len(t, sel.Instructors, 2)

	sel, err = svc.ChooseInstructor(ctx, "sess", "inst-1")
	require.NoError(t, err)
	assert.Equal(t, StateInstructorChosen, sel.State)

	sel, err = svc.ChooseLevel("sess", "lvl-1")
	require.NoError(t, err)
	assert.Equal(t, StateLevelChosen, sel.State)
	assert.Equal(t, "lvl-1", sel.LevelID)
}

func TestSelectionInstructorNarrowsLevels(t *testing.T) {
	svc := newTestSelection(t)
	ctx := context.Background()

	_, err := svc.ChooseSpecialization(ctx, "sess", "spec-1")
	require.NoError(t, err)
	_, err = svc.ChooseCourse(ctx, "sess", "course-1")
	require.NoError(t, err)

	// inst-1 teaches only lvl-1; lvl-2 must not be offered.
	sel, err := svc.ChooseInstructor(ctx, "sess", "inst-1")
	require.NoError(t, err)
	require.Len(t, sel.Levels, 1)
	assert.Equal(t, "lvl-1", sel.Levels[0].ID)

	_, err = svc.ChooseLevel("sess", "lvl-2")
	assert.ErrorIs(t, err, util.ErrSelectionMismatch)
}

func TestSelectionOrderEnforced(t *testing.T) {
	svc := newTestSelection(t)
	ctx := context.Background()

	_, err := svc.ChooseCourse(ctx, "sess", "course-1")
	assert.ErrorIs(t, err, util.ErrSelectionOrder)

	_, err = svc.ChooseInstructor(ctx, "sess", "inst-1")
	assert.ErrorIs(t, err, util.ErrSelectionOrder)

	_, err = svc.ChooseLevel("sess", "lvl-1")
	assert.ErrorIs(t, err, util.ErrSelectionOrder)
}

func TestSelectionMembershipEnforced(t *testing.T) {
	svc := newTestSelection(t)
	ctx := context.Background()

	_, err := svc.ChooseSpecialization(ctx, "sess", "spec-1")
	require.NoError(t, err)

	_, err = svc.ChooseCourse(ctx, "sess", "course-99")
	assert.ErrorIs(t, err, util.ErrSelectionMismatch)
}

func TestSelectionReSelectingHigherLevelClearsLower(t *testing.T) {
	svc := newTestSelection(t)
	ctx := context.Background()

	_, err := svc.ChooseSpecialization(ctx, "sess", "spec-1")
	require.NoError(t, err)
	_, err = svc.ChooseCourse(ctx, "sess", "course-1")
	require.NoError(t, err)
	_, err = svc.ChooseInstructor(ctx, "sess", "inst-2")
	require.NoError(t, err)
	_, err = svc.ChooseLevel("sess", "lvl-2")
	require.NoError(t, err)

	sel, err := svc.ChooseSpecialization(ctx, "sess", "spec-1")
	require.NoError(t, err)
	assert.Equal(t, StateSpecializationChosen, sel.State)
	assert.Empty(t, sel.CourseID)
	assert.Empty(t, sel.InstructorID)
	assert.Empty(t, sel.LevelID)
	assert.Empty(t, sel.Instructors)
	assert.Empty(t, sel.Levels)
}

func TestSelectionResetAll(t *testing.T) {
	svc := newTestSelection(t)
	ctx := context.Background()

	_, err := svc.ChooseSpecialization(ctx, "sess", "spec-1")
	require.NoError(t, err)

	sel := svc.ResetAll("sess")

	assert.Equal(t, StateEmpty, sel.State)
	assert.Empty(t, sel.SpecializationID)
	assert.Empty(t, sel.Courses)
}

func TestSelectionFetchFailureKeepsChoice(t *testing.T) {
	client := newTestUpstream(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"message":"upstream exploded"}`))
	}))
	svc := NewSelectionService(newTestCatalog(client))

	sel, err := svc.ChooseSpecialization(context.Background(), "sess", "spec-1")

	require.Error(t, err)
	// The choice survives with an empty course list; no automatic retry.
	assert.Equal(t, StateSpecializationChosen, sel.State)
	assert.Equal(t, "spec-1", sel.SpecializationID)
	assert.Empty(t, sel.Courses)
	assert.Equal(t, sel, svc.Get("sess"))
}

func TestSelectionStaleFetchDiscarded(t *testing.T) {
	arrived := make(chan struct{})
	release := make(chan struct{})
	mux := http.NewServeMux()
	mux.HandleFunc("/courses", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("specializationId") == "slow" {
			close(arrived)
			<-release
		}
		w.Write([]byte(`{"success":true,"data":[{"id":"course-1","title":"Anatomy"}]}`))
	})
	client := newTestUpstream(t, mux)
	svc := NewSelectionService(newTestCatalog(client))

	done := make(chan error, 1)
	go func() {
		_, err := svc.ChooseSpecialization(context.Background(), "sess", "slow")
		done <- err
	}()

	<-arrived
	// A newer transition lands while the first fetch is in flight.
	sel, err := svc.ChooseSpecialization(context.Background(), "sess", "fast")
	require.NoError(t, err)
	require.Len(t, sel.Courses, 1)

	close(release)
	assert.ErrorIs(t, <-done, util.ErrSelectionSuperseded)

	// The superseded fetch must not have overwritten the newer selection.
	current := svc.Get("sess")
	assert.Equal(t, "fast", current.SpecializationID)
	assert.Len(t, current.Courses, 1)
}

func TestSelectionCurrentTracksSequence(t *testing.T) {
	svc := newTestSelection(t)
	ctx := context.Background()

	sel, err := svc.ChooseSpecialization(ctx, "sess", "spec-1")
	require.NoError(t, err)
	assert.True(t, svc.Current("sess", sel.Seq))

	_, err = svc.ChooseCourse(ctx, "sess", "course-1")
	require.NoError(t, err)
	assert.False(t, svc.Current("sess", sel.Seq))
}

func TestSelectionSessionsAreIsolated(t *testing.T) {
	svc := newTestSelection(t)
	ctx := context.Background()

	_, err := svc.ChooseSpecialization(ctx, "alice", "spec-1")
	require.NoError(t, err)

	assert.Equal(t, StateEmpty, svc.Get("bob").State)
}
