// Package settings models the dashboard's display, data and notification
// preferences edited on the settings page.
package settings

import (
	"fmt"
	"net/mail"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/newthinker/metricboard/internal/core"
)

// Themes offered in the display settings.
const (
	ThemeLight = "Light"
	ThemeDark  = "Dark"
)

// Bounds for the data update frequency, in minutes.
const (
	MinUpdateFrequency     = 1
	MaxUpdateFrequency     = 60
	DefaultUpdateFrequency = 5
)

// Themes lists the selectable themes in display order.
var Themes = []string{ThemeLight, ThemeDark}

// NotificationTypes lists the selectable notification kinds.
var NotificationTypes = []string{"Daily Reports", "Anomaly Alerts", "System Updates"}

// Settings holds one session's preferences.
type Settings struct {
	Theme              string   `json:"theme"`
	UpdateFrequency    int      `json:"update_frequency"`
	EmailNotifications bool     `json:"email_notifications"`
	Email              string   `json:"email,omitempty"`
	NotificationTypes  []string `json:"notification_types,omitempty"`
}

// Defaults returns the settings a new session starts with.
func Defaults() Settings {
	return Settings{
		Theme:           ThemeLight,
		UpdateFrequency: DefaultUpdateFrequency,
	}
}

// FromForm reads settings from a submitted settings form. Fields missing from
// the form keep their default values.
func FromForm(form url.Values) (Settings, error) {
	s := Defaults()

	if v := form.Get("theme"); v != "" {
		s.Theme = v
	}
	if v := form.Get("update_frequency"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return s, core.WrapError(core.ErrSettingsInvalid,
				fmt.Errorf("update frequency must be a whole number of minutes, got %q", v))
		}
		s.UpdateFrequency = n
	}
	s.EmailNotifications = form.Get("email_notifications") != ""
	if s.EmailNotifications {
		s.Email = strings.TrimSpace(form.Get("email"))
		s.NotificationTypes = form["notification_types"]
	}

	return s, s.Validate()
}

// Validate checks every field against the options the form offers.
func (s Settings) Validate() error {
	if !slices.Contains(Themes, s.Theme) {
		return core.WrapError(core.ErrSettingsInvalid, fmt.Errorf("unknown theme %q", s.Theme))
	}
	if s.UpdateFrequency < MinUpdateFrequency || s.UpdateFrequency > MaxUpdateFrequency {
		return core.WrapError(core.ErrSettingsInvalid,
			fmt.Errorf("update frequency must be between %d and %d minutes, got %d",
				MinUpdateFrequency, MaxUpdateFrequency, s.UpdateFrequency))
	}
	if !s.EmailNotifications {
		return nil
	}

	if s.Email == "" {
		return core.WrapError(core.ErrSettingsInvalid, fmt.Errorf("email address required for notifications"))
	}
	if _, err := mail.ParseAddress(s.Email); err != nil {
		return core.WrapError(core.ErrSettingsInvalid, fmt.Errorf("invalid email address %q: %w", s.Email, err))
	}
	for _, t := range s.NotificationTypes {
		if !slices.Contains(NotificationTypes, t) {
			return core.WrapError(core.ErrSettingsInvalid, fmt.Errorf("unknown notification type %q", t))
		}
	}
	return nil
}

// Dark reports whether the dark theme is selected.
func (s Settings) Dark() bool {
	return s.Theme == ThemeDark
}

// RefreshSeconds converts the update frequency into a page refresh interval.
func (s Settings) RefreshSeconds() int {
	return s.UpdateFrequency * 60
}

// Notifies reports whether notification type t is selected.
func (s Settings) Notifies(t string) bool {
	return slices.Contains(s.NotificationTypes, t)
}
