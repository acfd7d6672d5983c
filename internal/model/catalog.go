package model

import (
	"strconv"

	"course_admin_gateway/internal/view"
)

// Catalog records are snapshots of upstream state. The gateway never mutates
// them locally; every change is a round trip followed by a refetch.

type Specialization struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
	IsActive bool   `json:"isActive"`
}

func (s Specialization) SearchText() []string { return []string{s.Name} }

func (s Specialization) FieldValue(key string) string {
	switch key {
	case "isActive":
		return strconv.FormatBool(s.IsActive)
	}
	return ""
}

func (s Specialization) SortValue(key string) view.Value {
	return view.String(s.Name)
}

type Course struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	SpecializationID string `json:"specializationId"`
	ImageURL         string `json:"imageUrl"`
	IsActive         bool   `json:"isActive"`
}

func (c Course) SearchText() []string { return []string{c.Title, c.Description} }

func (c Course) FieldValue(key string) string {
	switch key {
	case "isActive":
		return strconv.FormatBool(c.IsActive)
	case "specializationId":
		return c.SpecializationID
	}
	return ""
}

func (c Course) SortValue(key string) view.Value {
	return view.String(c.Title)
}

type Instructor struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	LevelIDs []string `json:"levelIds"`
}

// TeachesLevel reports whether the instructor is associated with the level.
func (i Instructor) TeachesLevel(levelID string) bool {
	for _, id := range i.LevelIDs {
		if id == levelID {
			return true
		}
	}
	return false
}

func (i Instructor) SearchText() []string { return []string{i.Name} }

func (i Instructor) FieldValue(key string) string { return "" }

func (i Instructor) SortValue(key string) view.Value {
	return view.String(i.Name)
}

type CourseLevel struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Order        int     `json:"order"`
	PriceUSD     float64 `json:"priceUSD"`
	PriceSAR     float64 `json:"priceSAR"`
	IsFree       bool    `json:"isFree"`
	PreviewURL   string  `json:"previewUrl"`
	DownloadURL  string  `json:"downloadUrl"`
	InstructorID string  `json:"instructorId"`
	ImageURL     string  `json:"imageUrl"`
	IsActive     bool    `json:"isActive"`
}

func (l CourseLevel) SearchText() []string { return []string{l.Name} }

func (l CourseLevel) FieldValue(key string) string {
	switch key {
	case "isActive":
		return strconv.FormatBool(l.IsActive)
	case "isFree":
		return strconv.FormatBool(l.IsFree)
	case "instructorId":
		return l.InstructorID
	}
	return ""
}

func (l CourseLevel) SortValue(key string) view.Value {
	switch key {
	case "order":
		return view.Number(float64(l.Order))
	case "priceUSD":
		return view.Number(l.PriceUSD)
	case "priceSAR":
		return view.Number(l.PriceSAR)
	}
	return view.String(l.Name)
}
