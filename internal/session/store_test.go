package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newClockedStore(maxSize int, ttl time.Duration) (*Store, *clock) {
	c := &clock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	s := NewStore(maxSize, ttl)
	s.now = c.now
	return s, c
}

func TestStore_CreateGet(t *testing.T) {
	s := NewStore(10, time.Hour)

	sess := s.Create()
	require.NotEmpty(t, sess.ID)
	assert.Equal(t, "Light", sess.Settings.Theme)

	got, err := s.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)

	_, err = s.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_GetReturnsCopy(t *testing.T) {
	s := NewStore(10, time.Hour)
	sess := s.Create()

	got, _ := s.Get(sess.ID)
	got.Confirmations["page"] = true

	again, _ := s.Get(sess.ID)
	assert.False(t, again.Confirming("page"))
}

func TestStore_Update(t *testing.T) {
	s := NewStore(10, time.Hour)
	sess := s.Create()

	err := s.Update(sess.ID, func(sess *Session) {
		sess.Confirmations["1_📊_sales_analysis"] = true
	})
	require.NoError(t, err)

	got, _ := s.Get(sess.ID)
	assert.True(t, got.Confirming("1_📊_sales_analysis"))
	assert.False(t, got.Confirming("2_📊_sales_analysis"))

	assert.ErrorIs(t, s.Update("missing", func(*Session) {}), ErrNotFound)
}

func TestStore_TakeFlashes(t *testing.T) {
	s := NewStore(10, time.Hour)
	sess := s.Create()

	s.Update(sess.ID, func(sess *Session) {
		sess.AddFlash(FlashSuccess, "Deleted 1_📊_sales_analysis")
	})

	flashes := s.TakeFlashes(sess.ID)
	require.Len(t, flashes, 1)
	assert.Equal(t, FlashSuccess, flashes[0].Kind)
	assert.Empty(t, s.TakeFlashes(sess.ID))
}

func TestStore_Expiry(t *testing.T) {
	s, c := newClockedStore(10, 30*time.Minute)
	sess := s.Create()

	c.t = c.t.Add(20 * time.Minute)
	require.NoError(t, s.Update(sess.ID, func(*Session) {}))

	c.t = c.t.Add(20 * time.Minute)
	_, err := s.Get(sess.ID)
	require.NoError(t, err, "update should refresh expiry")

	c.t = c.t.Add(31 * time.Minute)
	_, err = s.Get(sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, s.Len())
}

func TestStore_EvictsOldest(t *testing.T) {
	s := NewStore(2, time.Hour)

	first := s.Create()
	second := s.Create()
	third := s.Create()

	_, err := s.Get(first.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Get(second.ID)
	assert.NoError(t, err)
	_, err = s.Get(third.ID)
	assert.NoError(t, err)
	assert.Equal(t, 2, s.Len())
}

func TestStore_Delete(t *testing.T) {
	s := NewStore(10, time.Hour)
	sess := s.Create()

	s.Delete(sess.ID)
	s.Delete(sess.ID)

	_, err := s.Get(sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_LoadSetsCookie(t *testing.T) {
	s := NewStore(10, time.Hour)

	w := httptest.NewRecorder()
	sess := s.Load(w, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Equal(t, sess.ID, cookies[0].Value)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	again := s.Load(w, req)

	assert.Equal(t, sess.ID, again.ID)
	assert.Empty(t, w.Result().Cookies(), "existing session should not reset the cookie")
}

func TestStore_LoadReplacesUnknownCookie(t *testing.T) {
	s := NewStore(10, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "stale"})
	w := httptest.NewRecorder()

	sess := s.Load(w, req)
	assert.NotEqual(t, "stale", sess.ID)
	assert.Len(t, w.Result().Cookies(), 1)
}
