package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"course_admin_gateway/internal/model"
	"course_admin_gateway/internal/util"
	"course_admin_gateway/pkg/logger"
	"course_admin_gateway/pkg/monitoring"

	"go.uber.org/zap"
)

// SelectionState is the position in the four-level drill-down.
type SelectionState int

const (
	StateEmpty SelectionState = iota
	StateSpecializationChosen
	StateCourseChosen
	StateInstructorChosen
	StateLevelChosen
)

var stateNames = map[SelectionState]string{
	StateEmpty:                "empty",
	StateSpecializationChosen: "specialization_chosen",
	StateCourseChosen:         "course_chosen",
	StateInstructorChosen:     "instructor_chosen",
	StateLevelChosen:          "level_chosen",
}

func (s SelectionState) String() string { return stateNames[s] }

func (s SelectionState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Selection is one staff session's drill-down: the chosen ids plus the option
// lists fetched for the next level. The invariant here is strict: a lower id
// is set only while every higher id is set and consistent with it.
type Selection struct {
	State SelectionState `json:"state"`

	SpecializationID string `json:"specializationId,omitempty"`
	CourseID         string `json:"courseId,omitempty"`
	InstructorID     string `json:"instructorId,omitempty"`
	LevelID          string `json:"levelId,omitempty"`

	Courses     []model.Course      `json:"courses,omitempty"`
	Instructors []model.Instructor  `json:"instructors,omitempty"`
	Levels      []model.CourseLevel `json:"levels,omitempty"`

	// Seq tags content loads so stale results can be discarded.
	Seq uint64 `json:"seq"`
}

type sessionState struct {
	sel      Selection
	seq      uint64
	lastSeen time.Time
}

// SelectionService keeps per-session selection state. Every transition bumps
// the session's sequence number; a fetch that completes after a newer
// transition is discarded rather than installed (the stale-response guard).
type SelectionService struct {
	Catalog *CatalogService

	mu       sync.Mutex
	sessions map[string]*sessionState
}

func NewSelectionService(catalog *CatalogService) *SelectionService {
	return &SelectionService{
		Catalog:  catalog,
		sessions: make(map[string]*sessionState),
	}
}

func (s *SelectionService) session(key string) *sessionState {
	st, ok := s.sessions[key]
	if !ok {
		st = &sessionState{}
		s.sessions[key] = st
	}
	st.lastSeen = time.Now()
	return st
}

// Get returns the session's current selection.
func (s *SelectionService) Get(key string) Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session(key).sel
}

// ResetAll clears the whole drill-down.
func (s *SelectionService) ResetAll(key string) Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.session(key)
	st.seq++
	st.sel = Selection{Seq: st.seq}
	return st.sel
}

// ChooseSpecialization selects the top level. Everything below is cleared
// before the course list for the new specialization is fetched. On fetch
// failure the specialization stays selected with an empty course list and no
// automatic retry.
func (s *SelectionService) ChooseSpecialization(ctx context.Context, key, id string) (Selection, error) {
	s.mu.Lock()
	st := s.session(key)
	st.seq++
	seq := st.seq
	st.sel = Selection{
		State:            StateSpecializationChosen,
		SpecializationID: id,
		Seq:              seq,
	}
	s.mu.Unlock()

	courses, err := s.Catalog.Courses(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if st.seq != seq {
		monitoring.StaleDiscards.Inc()
		return st.sel, util.ErrSelectionSuperseded
	}
	if err != nil {
		logger.Log.Error("course list fetch failed", zap.String("specialization", id), zap.Error(err))
		return st.sel, err
	}
	st.sel.Courses = courses
	return st.sel, nil
}

func (s *SelectionService) ChooseCourse(ctx context.Context, key, id string) (Selection, error) {
	s.mu.Lock()
	st := s.session(key)
	if st.sel.State < StateSpecializationChosen {
		s.mu.Unlock()
		return st.sel, util.ErrSelectionOrder
	}
	if !courseListed(st.sel.Courses, id) {
		s.mu.Unlock()
		return st.sel, util.ErrSelectionMismatch
	}
	st.seq++
	seq := st.seq
	st.sel.State = StateCourseChosen
	st.sel.CourseID = id
	st.sel.InstructorID = ""
	st.sel.LevelID = ""
	st.sel.Instructors = nil
	st.sel.Levels = nil
	st.sel.Seq = seq
	s.mu.Unlock()

	instructors, err := s.Catalog.Instructors(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if st.seq != seq {
		monitoring.StaleDiscards.Inc()
		return st.sel, util.ErrSelectionSuperseded
	}
	if err != nil {
		logger.Log.Error("instructor list fetch failed", zap.String("course", id), zap.Error(err))
		return st.sel, err
	}
	st.sel.Instructors = instructors
	return st.sel, nil
}

// ChooseInstructor narrows the level list to the levels of the already-chosen
// course that the instructor actually teaches (their levelIds membership).
func (s *SelectionService) ChooseInstructor(ctx context.Context, key, id string) (Selection, error) {
	s.mu.Lock()
	st := s.session(key)
	if st.sel.State < StateCourseChosen {
		s.mu.Unlock()
		return st.sel, util.ErrSelectionOrder
	}
	found := findInstructor(st.sel.Instructors, id)
	if found == nil {
		s.mu.Unlock()
		return st.sel, util.ErrSelectionMismatch
	}
	instructor := *found
	st.seq++
	seq := st.seq
	courseID := st.sel.CourseID
	st.sel.State = StateInstructorChosen
	st.sel.InstructorID = id
	st.sel.LevelID = ""
	st.sel.Levels = nil
	st.sel.Seq = seq
	s.mu.Unlock()

	levels, err := s.Catalog.Levels(ctx, courseID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if st.seq != seq {
		monitoring.StaleDiscards.Inc()
		return st.sel, util.ErrSelectionSuperseded
	}
	if err != nil {
		logger.Log.Error("level list fetch failed", zap.String("course", courseID), zap.Error(err))
		return st.sel, err
	}

	taught := make([]model.CourseLevel, 0, len(levels))
	for _, level := range levels {
		if instructor.TeachesLevel(level.ID) {
			taught = append(taught, level)
		}
	}
	st.sel.Levels = taught
	return st.sel, nil
}

// ChooseLevel completes the drill-down; content loading is triggered by the
// caller using the returned selection's level id and sequence.
func (s *SelectionService) ChooseLevel(key, id string) (Selection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.session(key)
	if st.sel.State < StateInstructorChosen {
		return st.sel, util.ErrSelectionOrder
	}
	if !levelListed(st.sel.Levels, id) {
		return st.sel, util.ErrSelectionMismatch
	}
	st.seq++
	st.sel.State = StateLevelChosen
	st.sel.LevelID = id
	st.sel.Seq = st.seq
	return st.sel, nil
}

// Current reports whether the given sequence still matches the session, i.e.
// no transition has superseded the fetch that carries it.
func (s *SelectionService) Current(key string, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.sessions[key]
	return ok && st.seq == seq
}

// StartSweeper drops sessions idle longer than maxIdle.
func (s *SelectionService) StartSweeper(interval, maxIdle time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			s.mu.Lock()
			for key, st := range s.sessions {
				if time.Since(st.lastSeen) > maxIdle {
					delete(s.sessions, key)
				}
			}
			s.mu.Unlock()
		}
	}()
}

func courseListed(courses []model.Course, id string) bool {
	for _, c := range courses {
		if c.ID == id {
			return true
		}
	}
	return false
}

func findInstructor(instructors []model.Instructor, id string) *model.Instructor {
	for i := range instructors {
		if instructors[i].ID == id {
			return &instructors[i]
		}
	}
	return nil
}

func levelListed(levels []model.CourseLevel, id string) bool {
	for _, l := range levels {
		if l.ID == id {
			return true
		}
	}
	return false
}
