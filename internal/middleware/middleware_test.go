// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/influencons/influencons-go/internal/model"
	"github.com/influencons/influencons-go/internal/testutil"
)

func TestAuthRedirectsAnonymous(t *testing.T) {
	sm := scs.New()

	called := false
	handler := sm.LoadAndSave(Auth(sm)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})))

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if called {
		t.Error("protected handler ran for anonymous request")
	}
	if rec.Code != http.StatusSeeOther {
		t.Errorf("got status %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != LoginPath {
		t.Errorf("got redirect to %q, want %q", loc, LoginPath)
	}
}

func TestRequireAdminWithoutUser(t *testing.T) {
	handler := RequireAdmin()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler ran without a user in context")
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("got status %d, want %d", rec.Code, http.StatusSeeOther)
	}
}

func TestLoadUserInjectsUser(t *testing.T) {
	db := testutil.TestMemoryDB(t)
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		is_admin BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		t.Fatalf("creating users table: %v", err)
	}
	if _, err := db.Exec(
		`INSERT INTO users (username, email, password_hash, is_admin) VALUES ('admin', 'admin@influencons.com', 'x', 1)`,
	); err != nil {
		t.Fatalf("inserting user: %v", err)
	}

	sm := scs.New()

	// First request establishes the session.
	seed := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sm.Put(r.Context(), SessionKeyUserID, int64(1))
	}))
	rec := httptest.NewRecorder()
	seed.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, LoginPath, nil))
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("no session cookie issued")
	}

	var gotUser *model.User
	var gotID int64
	handler := sm.LoadAndSave(LoadUser(sm, db)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = GetUser(r)
		gotID = GetUserID(r)
	})))

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if gotUser == nil {
		t.Fatal("no user loaded into context")
	}
	if gotUser.Email != "admin@influencons.com" || !gotUser.IsAdmin {
		t.Errorf("got user %+v", gotUser)
	}
	if gotID != 1 {
		t.Errorf("got user ID %d, want 1", gotID)
	}
}

func TestStripTrailingSlash(t *testing.T) {
	handler := StripTrailingSlash(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		path     string
		wantCode int
		wantLoc  string
	}{
		{"/articles/", http.StatusMovedPermanently, "/articles"},
		{"/articles", http.StatusOK, ""},
		{"/", http.StatusOK, ""},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != tt.wantCode {
			t.Errorf("%s: got status %d, want %d", tt.path, rec.Code, tt.wantCode)
		}
		if tt.wantLoc != "" {
			if loc := rec.Header().Get("Location"); loc != tt.wantLoc {
				t.Errorf("%s: got redirect to %q, want %q", tt.path, loc, tt.wantLoc)
			}
		}
	}
}

func TestLoginProtectionLockout(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{
		IPRateLimit:       100,
		IPBurst:           100,
		MaxFailedAttempts: 3,
		LockoutDuration:   time.Minute,
		AttemptWindow:     time.Minute,
	})

	email := "admin@influencons.com"

	if locked, _ := lp.IsAccountLocked(email); locked {
		t.Fatal("account locked before any attempts")
	}

	for i := 0; i < 2; i++ {
		if locked, _ := lp.RecordFailedAttempt(email); locked {
			t.Fatalf("account locked after %d attempts", i+1)
		}
	}
	locked, dur := lp.RecordFailedAttempt(email)
	if !locked {
		t.Fatal("expected account to lock on third failure")
	}
	if dur != time.Minute {
		t.Errorf("got lockout duration %v, want %v", dur, time.Minute)
	}

	if locked, _ := lp.IsAccountLocked(email); !locked {
		t.Error("expected IsAccountLocked to report the lock")
	}
}

func TestLoginProtectionSuccessResets(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{
		IPRateLimit:       100,
		IPBurst:           100,
		MaxFailedAttempts: 3,
		LockoutDuration:   time.Minute,
		AttemptWindow:     time.Minute,
	})

	email := "admin@influencons.com"

	lp.RecordFailedAttempt(email)
	lp.RecordFailedAttempt(email)
	lp.RecordSuccessfulLogin(email)

	// Counter restarts after a successful login.
	for i := 0; i < 2; i++ {
		if locked, _ := lp.RecordFailedAttempt(email); locked {
			t.Fatalf("account locked after %d post-reset attempts", i+1)
		}
	}
}

func TestLoginProtectionIPRateLimit(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{
		IPRateLimit:       0.001,
		IPBurst:           2,
		MaxFailedAttempts: 5,
	})

	ip := "203.0.113.7"
	if !lp.CheckIPRateLimit(ip) {
		t.Fatal("first request should be allowed")
	}
	if !lp.CheckIPRateLimit(ip) {
		t.Fatal("second request should be allowed within burst")
	}
	if lp.CheckIPRateLimit(ip) {
		t.Error("third request should exceed the burst")
	}
}
