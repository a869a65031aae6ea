package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"firebase.google.com/go/v4/auth"
)

type stubVerifier struct {
	token   string
	uid     string
	err     error
	checked bool
}

func (s *stubVerifier) VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	s.checked = true
	s.token = idToken
	if s.err != nil {
		return nil, s.err
	}
	return &auth.Token{UID: s.uid}, nil
}

func TestFirebaseAuth(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		verifyErr  error
		wantStatus int
		wantUID    string
	}{
		{name: "missing header", wantStatus: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "bad token", header: "Bearer abc", verifyErr: errors.New("expired"), wantStatus: http.StatusUnauthorized},
		{name: "valid token", header: "bearer abc", wantStatus: http.StatusOK, wantUID: "uid-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := &stubVerifier{uid: "uid-1", err: tt.verifyErr}
			m := &Middleware{AuthClient: verifier}

			var gotUID string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUID = UID(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/chat", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()

			m.FirebaseAuth(next).ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rr.Code)
			}
			if gotUID != tt.wantUID {
				t.Fatalf("expected uid %q, got %q", tt.wantUID, gotUID)
			}
			if tt.wantUID != "" && verifier.token != "abc" {
				t.Fatalf("expected token abc to be verified, got %q", verifier.token)
			}
		})
	}
}
