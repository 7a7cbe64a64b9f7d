package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"prompt-app/internal/config"
	"prompt-app/internal/repository/store"
	"prompt-app/internal/testutil"

	"golang.org/x/crypto/bcrypt"
)

func testAuthConfig() *config.AuthConfig {
	return &config.AuthConfig{
		JWTSecret:       []byte("0123456789abcdef0123456789abcdef"),
		TokenExpiration: time.Hour,
	}
}

func hashedUser(t *testing.T, username, password string) *store.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt failed: %v", err)
	}
	return &store.User{Username: username, PasswordHash: string(hash)}
}

func TestTokenRoundTrip(t *testing.T) {
	a := NewAuth(&testutil.MockStore{}, testAuthConfig())

	token, err := a.GenerateToken("alice")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := a.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.Username != "alice" {
		t.Errorf("Expected username alice, got %s", claims.Username)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	issuer := NewAuth(&testutil.MockStore{}, testAuthConfig())
	verifier := NewAuth(&testutil.MockStore{}, &config.AuthConfig{
		JWTSecret:       []byte("ffffffffffffffffffffffffffffffff"),
		TokenExpiration: time.Hour,
	})

	token, err := issuer.GenerateToken("alice")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := verifier.ValidateToken(token); err == nil {
		t.Fatal("Expected validation to fail with a different secret")
	}
}

func TestLoginHandler_Success(t *testing.T) {
	loggedSession := ""
	mock := &testutil.MockStore{
		GetUserByUsernameFunc: func(username string) (*store.User, error) {
			return hashedUser(t, "alice", "secret123"), nil
		},
		LogLoginFunc: func(username, sessionID string) error {
			loggedSession = sessionID
			return nil
		},
	}
	a := NewAuth(mock, testAuthConfig())

	body, _ := json.Marshal(LoginRequest{Username: "alice", Password: "secret123"})
	req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	a.LoginHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid response body: %v", err)
	}
	if resp.Token == "" {
		t.Error("Expected a token in the response")
	}
	if len(resp.SessionID) != 8 || resp.SessionID != loggedSession {
		t.Errorf("Expected the 8-char session id to be logged, got %q / %q", resp.SessionID, loggedSession)
	}
}

func TestLoginHandler_InvalidPassword(t *testing.T) {
	mock := &testutil.MockStore{
		GetUserByUsernameFunc: func(username string) (*store.User, error) {
			return hashedUser(t, "alice", "secret123"), nil
		},
	}
	a := NewAuth(mock, testAuthConfig())

	body, _ := json.Marshal(LoginRequest{Username: "alice", Password: "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	a.LoginHandler(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401, got %d", rec.Code)
	}
}

func TestLoginHandler_ActivityLogFailureDoesNotBlockLogin(t *testing.T) {
	mock := &testutil.MockStore{
		GetUserByUsernameFunc: func(username string) (*store.User, error) {
			return hashedUser(t, "alice", "secret123"), nil
		},
		LogLoginFunc: func(username, sessionID string) error {
			return store.ErrUserNotFound // any error will do
		},
	}
	a := NewAuth(mock, testAuthConfig())

	body, _ := json.Marshal(LoginRequest{Username: "alice", Password: "secret123"})
	req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	a.LoginHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 despite activity log failure, got %d", rec.Code)
	}
}

func TestRegisterHandler_DuplicateUsername(t *testing.T) {
	mock := &testutil.MockStore{
		CreateUserFunc: func(username, email, password string) (*store.User, error) {
			return nil, store.ErrUserExists
		},
	}
	a := NewAuth(mock, testAuthConfig())

	body, _ := json.Marshal(RegisterRequest{Username: "alice", Password: "secret123"})
	req := httptest.NewRequest(http.MethodPost, "/api/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	a.RegisterHandler(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("Expected 409, got %d", rec.Code)
	}
}

func TestMiddleware(t *testing.T) {
	a := NewAuth(&testutil.MockStore{}, testAuthConfig())

	var gotUser string
	handler := a.Middleware(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = r.Context().Value(UserContextKey).(string)
		w.WriteHeader(http.StatusOK)
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
		rec := httptest.NewRecorder()
		handler(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", rec.Code)
		}
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
		req.Header.Set("Authorization", "Token abc")
		rec := httptest.NewRecorder()
		handler(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", rec.Code)
		}
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := a.GenerateToken("alice")
		if err != nil {
			t.Fatalf("GenerateToken failed: %v", err)
		}
		req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rec.Code)
		}
		if gotUser != "alice" {
			t.Errorf("Expected username alice in context, got %q", gotUser)
		}
	})
}
