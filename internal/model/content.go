package model

import (
	"strconv"
	"time"

	"course_admin_gateway/internal/view"
)

type Lesson struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	YoutubeURL     string `json:"youtubeUrl"`
	YoutubeID      string `json:"youtubeId"`
	GoogleDriveURL string `json:"googleDriveUrl"`
	DurationSec    int    `json:"durationSec"`
	OrderIndex     int    `json:"orderIndex"`
	IsFreePreview  bool   `json:"isFreePreview"`
	IsActive       bool   `json:"isActive"`
}

func (l Lesson) SearchText() []string { return []string{l.Title, l.Description} }

func (l Lesson) FieldValue(key string) string {
	switch key {
	case "isActive":
		return strconv.FormatBool(l.IsActive)
	case "isFreePreview":
		return strconv.FormatBool(l.IsFreePreview)
	}
	return ""
}

func (l Lesson) SortValue(key string) view.Value {
	switch key {
	case "orderIndex":
		return view.Number(float64(l.OrderIndex))
	case "durationSec":
		return view.Number(float64(l.DurationSec))
	}
	return view.String(l.Title)
}

// File is a level attachment stored upstream.
type File struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	Size          int64     `json:"size"`
	URL           string    `json:"url"`
	CourseLevelID string    `json:"courseLevelId"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (f File) SearchText() []string { return []string{f.Name} }

func (f File) FieldValue(key string) string {
	switch key {
	case "type":
		return f.Type
	case "courseLevelId":
		return f.CourseLevelID
	}
	return ""
}

func (f File) SortValue(key string) view.Value {
	switch key {
	case "size":
		return view.Number(float64(f.Size))
	case "createdAt":
		return view.Time(f.CreatedAt)
	}
	return view.String(f.Name)
}

type QuizOption struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

type QuizQuestion struct {
	ID      string       `json:"id"`
	Text    string       `json:"text"`
	Order   int          `json:"order"`
	Options []QuizOption `json:"options"`
}

func (q QuizQuestion) SearchText() []string { return []string{q.Text} }

func (q QuizQuestion) FieldValue(key string) string { return "" }

func (q QuizQuestion) SortValue(key string) view.Value {
	if key == "order" {
		return view.Number(float64(q.Order))
	}
	return view.String(q.Text)
}
