package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

// runClientSession sends one request through ClientSession and returns the
// client id the inner handler saw plus the recorded response.
func runClientSession(t *testing.T, cookie *http.Cookie) (string, *httptest.ResponseRecorder) {
	t.Helper()
	var seen string
	handler := ClientSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := GetClientID(r)
		if err != nil {
			t.Fatalf("GetClientID: %v", err)
		}
		seen = id
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		r.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	return seen, w
}

func TestClientSession_IssuesIDWithoutCookie(t *testing.T) {
	seen, w := runClientSession(t, nil)

	if _, err := uuid.Parse(seen); err != nil {
		t.Errorf("client id %q is not a uuid: %v", seen, err)
	}
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != clientCookie || cookies[0].Value != seen {
		t.Errorf("expected a %s cookie carrying %q, got %v", clientCookie, seen, cookies)
	}
}

func TestClientSession_KeepsValidCookie(t *testing.T) {
	id := uuid.NewString()
	seen, w := runClientSession(t, &http.Cookie{Name: clientCookie, Value: id})

	if seen != id {
		t.Errorf("client id = %q, expected the cookie value %q", seen, id)
	}
	if cookies := w.Result().Cookies(); len(cookies) != 0 {
		t.Errorf("valid cookie was reissued: %v", cookies)
	}
}

func TestClientSession_RejectsNonUUIDCookie(t *testing.T) {
	// the id keys file-backed storage, so a crafted value must never pass
	// through as-is
	for _, value := range []string{"x/../../escaped", "not-a-uuid", ".."} {
		seen, w := runClientSession(t, &http.Cookie{Name: clientCookie, Value: value})

		if seen == value {
			t.Errorf("cookie value %q was accepted verbatim", value)
		}
		if _, err := uuid.Parse(seen); err != nil {
			t.Errorf("replacement id %q is not a uuid: %v", seen, err)
		}
		cookies := w.Result().Cookies()
		if len(cookies) != 1 || cookies[0].Value != seen {
			t.Errorf("expected a fresh cookie carrying %q, got %v", seen, cookies)
		}
	}
}
