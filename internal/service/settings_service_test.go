package service

import (
	"context"
	"io"
	"net/http"
	"testing"

	"course_admin_gateway/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsUpdateRequiresKey(t *testing.T) {
	svc := NewSettingsService(newTestUpstream(t, http.NewServeMux()), nil)

	err := svc.Update(context.Background(), "admin", "", "x")

	assert.ErrorIs(t, err, util.ErrKeyRequired)
}

func TestSettingsUpdateAllRejectsEmptyKey(t *testing.T) {
	svc := NewSettingsService(newTestUpstream(t, http.NewServeMux()), nil)

	err := svc.UpdateAll(context.Background(), "admin", map[string]string{"": "x"})

	assert.ErrorIs(t, err, util.ErrKeyRequired)
}

func TestSettingsUpdateSendsKeyAndValue(t *testing.T) {
	var gotPath, gotBody string
	mux := http.NewServeMux()
	mux.HandleFunc("/settings/", func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Write([]byte(`{"success":true}`))
	})
	svc := NewSettingsService(newTestUpstream(t, mux), nil)

	err := svc.Update(context.Background(), "admin", "whatsapp", "+9665xxxxxxx")

	require.NoError(t, err)
	assert.Equal(t, "/settings/whatsapp", gotPath)
	assert.Contains(t, gotBody, "+9665xxxxxxx")
}

func TestSettingsContact(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/settings/contact", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"whatsapp":"+9665","telegram":"@handle"}}`))
	})
	svc := NewSettingsService(newTestUpstream(t, mux), nil)

	contact, err := svc.Contact(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "+9665", contact.Whatsapp)
	assert.Equal(t, "@handle", contact.Telegram)
}
