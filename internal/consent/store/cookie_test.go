package store

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consentgate/internal/consent/models"
	"consentgate/internal/sentinel"
)

// replay copies Set-Cookie output from one exchange onto a fresh request,
// simulating the browser's next page view.
func replay(t *testing.T, rec *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range rec.Result().Cookies() {
		if cookie.MaxAge < 0 {
			continue
		}
		req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
	}
	return req
}

func TestCookieKVSameRequestReadObservesWrite(t *testing.T) {
	rec := httptest.NewRecorder()
	kv := NewCookieKV(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NoError(t, kv.Write("k", `{"v":1}`, 10))

	got, err := kv.Read("k")
	require.NoError(t, err)
	assert.Equal(t, `{"v":1}`, got)
}

func TestCookieKVRoundTripAcrossRequests(t *testing.T) {
	rec := httptest.NewRecorder()
	kv := NewCookieKV(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, kv.Write("k", "payload with spaces & symbols", 10))

	next := NewCookieKV(httptest.NewRecorder(), replay(t, rec))
	got, err := next.Read("k")
	require.NoError(t, err)
	assert.Equal(t, "payload with spaces & symbols", got)
}

func TestCookieKVReadAbsent(t *testing.T) {
	kv := NewCookieKV(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := kv.Read("missing")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestCookieKVEraseMasksRequestCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "k", Value: "aGVsbG8"})
	rec := httptest.NewRecorder()
	kv := NewCookieKV(rec, req)

	require.NoError(t, kv.Erase("k"))
	_, err := kv.Read("k")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	// The response must carry an expired cookie so the browser drops it too.
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "k", cookies[0].Name)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestCookieKVGarbledCookieValue(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "k", Value: "%%%not-base64%%%"})
	kv := NewCookieKV(httptest.NewRecorder(), req)

	_, err := kv.Read("k")
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel.ErrInvalidInput)
}

func TestConsentStoreOverCookies(t *testing.T) {
	ctx := context.Background()

	// First request: decline.
	rec := httptest.NewRecorder()
	s := New(NewCookieKV(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
	_, err := s.SetDecision(ctx, models.DecisionDeclined)
	require.NoError(t, err)
	assert.Equal(t, models.DecisionDeclined, s.Decision(ctx))

	// Next page view: the decision survives in the cookie.
	next := New(NewCookieKV(httptest.NewRecorder(), replay(t, rec)))
	assert.Equal(t, models.DecisionDeclined, next.Decision(ctx))
}

func TestConsentStoreFailsSoftOnGarbledCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: ConsentKey, Value: "!!!"})
	s := New(NewCookieKV(httptest.NewRecorder(), req))

	assert.Equal(t, models.DecisionUnset, s.Decision(context.Background()))
}

func TestCookieSessionLifecycle(t *testing.T) {
	rec := httptest.NewRecorder()
	sess := NewCookieSession(rec, httptest.NewRequest(http.MethodGet, "/", nil), SessionKey)
	assert.False(t, sess.Seen())

	sess.MarkSeen()
	assert.True(t, sess.Seen(), "same-request reads observe the mark")

	// The session cookie must have no Max-Age so it dies with the session.
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionKey, cookies[0].Name)
	assert.Zero(t, cookies[0].MaxAge)

	// Next page view in the same session.
	next := NewCookieSession(httptest.NewRecorder(), replay(t, rec), SessionKey)
	assert.True(t, next.Seen())

	next.Clear()
	assert.False(t, next.Seen())
}

func TestMemorySession(t *testing.T) {
	sess := NewMemorySession()
	assert.False(t, sess.Seen())
	sess.MarkSeen()
	assert.True(t, sess.Seen())
	sess.Clear()
	assert.False(t, sess.Seen())
}
