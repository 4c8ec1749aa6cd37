// internal/api/handler/web/settings.go
package web

import (
	"errors"
	"net/http"

	"github.com/newthinker/metricboard/internal/core"
	"github.com/newthinker/metricboard/internal/session"
	"github.com/newthinker/metricboard/internal/settings"
)

// SettingsData holds data for the settings template
type SettingsData struct {
	Base
	Form              settings.Settings
	Themes            []string
	NotificationTypes []string
	MinFrequency      int
	MaxFrequency      int
	Error             string
}

func (h *Handler) settingsData(r *http.Request, sess *session.Session, form settings.Settings) SettingsData {
	return SettingsData{
		Base:              h.base(r, sess, "Settings ⚙️", "settings"),
		Form:              form,
		Themes:            settings.Themes,
		NotificationTypes: settings.NotificationTypes,
		MinFrequency:      settings.MinUpdateFrequency,
		MaxFrequency:      settings.MaxUpdateFrequency,
	}
}

// Settings renders the settings page
func (h *Handler) Settings(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(w, r)
	h.render(w, "settings.html", h.settingsData(r, sess, sess.Settings))
}

// SaveSettings validates the submitted form and stores it on the session.
// An invalid form is shown again with the submitted values.
func (h *Handler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(w, r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	form, err := settings.FromForm(r.PostForm)
	if h.metrics != nil {
		h.metrics.RecordSettingsSaved(err)
	}
	if err != nil {
		data := h.settingsData(r, sess, form)
		data.Error = errorMessage(err)
		h.renderStatus(w, http.StatusBadRequest, "settings.html", data)
		return
	}

	h.sessions.Update(sess.ID, func(s *session.Session) {
		s.Settings = form
		s.AddFlash(session.FlashSuccess, "Settings saved successfully!")
	})
	http.Redirect(w, r, "/settings", http.StatusSeeOther)
}

// errorMessage returns the cause of a coded error, which carries the detail
// a user can act on.
func errorMessage(err error) string {
	var coreErr *core.Error
	if errors.As(err, &coreErr) && coreErr.Cause != nil {
		return coreErr.Cause.Error()
	}
	return err.Error()
}
