package session

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"orderform/cmd/orderform/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flashCookie(t *testing.T, res *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range res.Result().Cookies() {
		if c.Name == FlashCookieName {
			return c
		}
	}
	t.Fatalf("cookie %s not set", FlashCookieName)
	return nil
}

func Test_SetAndPopFlash(t *testing.T) {
	s, err := NewSessionService("test-secret", false)
	require.NoError(t, err)

	want := models.Flash{
		Errors: map[string][]string{"amount": {"The amount field must be at least 1."}},
		Old:    map[string]string{"customer_name": "  John   Smith ", "amount": "0.5"},
	}

	w := httptest.NewRecorder()
	require.NoError(t, s.SetFlash(w, want))
	cookie := flashCookie(t, w)
	assert.True(t, cookie.HttpOnly)
	assert.NotContains(t, cookie.Value, "John")

	req := httptest.NewRequest(http.MethodGet, "/order-form", nil)
	req.AddCookie(cookie)
	popRes := httptest.NewRecorder()

	got, err := s.PopFlash(popRes, req)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	cleared := flashCookie(t, popRes)
	assert.Equal(t, -1, cleared.MaxAge)
	assert.Empty(t, cleared.Value)
}

func Test_PopFlash_NoCookie(t *testing.T) {
	s, err := NewSessionService("test-secret", false)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	got, err := s.PopFlash(w, httptest.NewRequest(http.MethodGet, "/order-form", nil))

	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
	assert.Empty(t, w.Result().Cookies())
}

func Test_PopFlash_Tampered(t *testing.T) {
	s, err := NewSessionService("test-secret", false)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/order-form", nil)
	req.AddCookie(&http.Cookie{Name: FlashCookieName, Value: "not-a-valid-value"})
	w := httptest.NewRecorder()

	got, err := s.PopFlash(w, req)

	assert.Error(t, err)
	assert.True(t, got.IsEmpty())
	assert.Equal(t, -1, flashCookie(t, w).MaxAge)
}

func Test_SameSecretSharesKeys(t *testing.T) {
	a, err := NewSessionService("shared", false)
	require.NoError(t, err)
	b, err := NewSessionService("shared", false)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	require.NoError(t, a.SetFlash(w, models.Flash{Success: "Order Created & Webhook Sent!"}))

	req := httptest.NewRequest(http.MethodGet, "/order-form", nil)
	req.AddCookie(flashCookie(t, w))

	got, err := b.PopFlash(httptest.NewRecorder(), req)
	require.NoError(t, err)
	assert.Equal(t, "Order Created & Webhook Sent!", got.Success)
}

func Test_DifferentSecretRejects(t *testing.T) {
	a, err := NewSessionService("one", false)
	require.NoError(t, err)
	b, err := NewSessionService("two", false)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	require.NoError(t, a.SetFlash(w, models.Flash{Success: "ok"}))

	req := httptest.NewRequest(http.MethodGet, "/order-form", nil)
	req.AddCookie(flashCookie(t, w))

	_, err = b.PopFlash(httptest.NewRecorder(), req)
	assert.Error(t, err)
}

func Test_EmptySecretStillWorks(t *testing.T) {
	s, err := NewSessionService("", false)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	require.NoError(t, s.SetFlash(w, models.Flash{Success: "ok"}))

	req := httptest.NewRequest(http.MethodGet, "/order-form", nil)
	req.AddCookie(flashCookie(t, w))

	got, err := s.PopFlash(httptest.NewRecorder(), req)
	require.NoError(t, err)
	assert.Equal(t, "ok", got.Success)
}

func Test_SetFlash_CapsOldInput(t *testing.T) {
	tests := []struct {
		name    string
		oldName string
		wantLen int
		wantCut string
	}{
		{
			name:    "Plain Letters Cut At First Cap",
			oldName: strings.Repeat("a", 3000),
			wantLen: MaxOldValueLen,
			wantCut: "a",
		},
		{
			name:    "Escaped Markup Cut Until Cookie Fits",
			oldName: strings.Repeat("<", 600),
			wantCut: "<",
		},
		{
			name:    "Short Markup Kept Whole",
			oldName: "<b>Jane</b>",
			wantLen: len("<b>Jane</b>"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSessionService("test-secret", false)
			require.NoError(t, err)

			w := httptest.NewRecorder()
			require.NoError(t, s.SetFlash(w, models.Flash{
				Errors: map[string][]string{"customer_name": {"The customer name field must not be greater than 255 characters."}},
				Old:    map[string]string{"customer_name": tt.oldName, "amount": "12"},
			}))

			req := httptest.NewRequest(http.MethodGet, "/order-form", nil)
			req.AddCookie(flashCookie(t, w))

			got, err := s.PopFlash(httptest.NewRecorder(), req)
			require.NoError(t, err)
			assert.Equal(t, []string{"The customer name field must not be greater than 255 characters."}, got.Errors["customer_name"])
			assert.Equal(t, "12", got.Old["amount"])

			name := got.Old["customer_name"]
			assert.LessOrEqual(t, len(name), MaxOldValueLen)
			assert.True(t, strings.HasPrefix(tt.oldName, name))
			if tt.wantLen > 0 {
				assert.Len(t, name, tt.wantLen)
			}
			if tt.wantCut != "" {
				assert.NotEmpty(t, name)
				assert.Less(t, len(name), len(tt.oldName))
			}
		})
	}
}
