package model

import (
	"time"

	"course_admin_gateway/internal/view"
)

// Setting is one entry of the upstream key/value store. Values are always
// strings, booleans included ("true"/"false").
type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s Setting) SearchText() []string { return []string{s.Key, s.Value} }

func (s Setting) FieldValue(key string) string { return "" }

func (s Setting) SortValue(key string) view.Value {
	if key == "updatedAt" {
		return view.Time(s.UpdatedAt)
	}
	return view.String(s.Key)
}

// Well-known contact setting keys.
const (
	SettingWhatsapp = "whatsapp"
	SettingTelegram = "telegram"
)

type ContactSettings struct {
	Whatsapp string `json:"whatsapp"`
	Telegram string `json:"telegram"`
}
