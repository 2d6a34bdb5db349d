// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/influencons/influencons-go/internal/middleware"
	"github.com/influencons/influencons-go/internal/service"
	"github.com/influencons/influencons-go/internal/session"
	"github.com/influencons/influencons-go/internal/store"
	"github.com/influencons/influencons-go/internal/testutil"
)

const (
	testAdminEmail    = "admin@influencons.com"
	testAdminPassword = "changeme123"
	testMaxUpload     = 16 << 20
)

// newTestServer starts a server with the full route surface wired the
// same way as the main binary, seeded with the default admin account.
func newTestServer(t *testing.T) (*httptest.Server, *sql.DB) {
	t.Helper()

	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)

	if err := store.Seed(context.Background(), db, testAdminEmail, testAdminPassword); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	sm := session.New(db, true)
	images := service.NewImageService(t.TempDir())

	r := chi.NewRouter()
	r.Use(sm.LoadAndSave)

	front := NewFrontendHandler(db, sm)
	r.Get(RouteRoot, front.Home)
	r.Get(RouteArticles, front.Articles)
	r.Get(RouteArticleSlug, front.Article)
	r.Post(RouteNewsletter, front.Subscribe)

	authHandler := NewAuthHandler(db, sm, nil)
	articles := NewArticleHandler(db, sm, images, testMaxUpload)
	defis := NewDefiHandler(db, sm, images, testMaxUpload)
	solidarite := NewSolidariteHandler(db, sm, images, testMaxUpload)
	forum := NewForumHandler(db, sm)
	newsletter := NewNewsletterHandler(db, sm)
	admin := NewAdminHandler(db, sm)

	r.Route(redirectAdmin, func(r chi.Router) {
		r.Get(RouteLogin, authHandler.LoginForm)
		r.Post(RouteLogin, authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(sm), middleware.LoadUser(sm, db), middleware.RequireAdmin())

			r.Get(RouteLogout, authHandler.Logout)
			r.Get(RouteRoot, admin.Dashboard)
			r.Get(RouteDashboard, admin.Dashboard)

			r.Get(RouteArticles, articles.List)
			r.Get(RouteArticles+RouteSuffixNew, articles.NewForm)
			r.Post(RouteArticles, articles.Create)
			r.Get(RouteArticlesID+RouteSuffixEdit, articles.EditForm)
			r.Post(RouteArticlesID, articles.Update)
			r.Post(RouteArticlesID+RouteSuffixDelete, articles.Delete)

			r.Get(RouteDefis, defis.List)
			r.Get(RouteDefis+RouteSuffixNew, defis.NewForm)
			r.Post(RouteDefis, defis.Create)
			r.Get(RouteDefisID+RouteSuffixEdit, defis.EditForm)
			r.Post(RouteDefisID, defis.Update)
			r.Post(RouteDefisID+RouteSuffixDelete, defis.Delete)

			r.Get(RouteSolidarite, solidarite.List)
			r.Get(RouteSolidarite+RouteSuffixNew, solidarite.NewForm)
			r.Post(RouteSolidarite, solidarite.Create)
			r.Get(RouteSolidariteID+RouteSuffixEdit, solidarite.EditForm)
			r.Post(RouteSolidariteID, solidarite.Update)
			r.Post(RouteSolidariteID+RouteSuffixDelete, solidarite.Delete)

			r.Get(RouteForum, forum.List)
			r.Get(RouteForum+RouteSuffixNew, forum.NewForm)
			r.Post(RouteForum, forum.Create)
			r.Get(RouteForumID+RouteSuffixEdit, forum.EditForm)
			r.Post(RouteForumID, forum.Update)
			r.Post(RouteForumID+RouteSuffixDelete, forum.Delete)

			r.Get(RouteNewsletter, newsletter.List)
			r.Post(RouteNewsletterID+RouteSuffixToggle, newsletter.Toggle)
			r.Post(RouteNewsletterID+RouteSuffixDelete, newsletter.Delete)
		})
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, db
}

// testClient returns an HTTP client that keeps session cookies but does
// not follow redirects, so tests can assert on Location headers.
func testClient(t *testing.T) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// postForm submits an urlencoded form and returns the response.
func postForm(t *testing.T, client *http.Client, url string, form url.Values) *http.Response {
	t.Helper()

	resp, err := client.Post(url, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	resp.Body.Close()
	return resp
}

// loginAdmin signs the client in with the seeded admin credentials.
func loginAdmin(t *testing.T, client *http.Client, baseURL string) {
	t.Helper()

	resp := postForm(t, client, baseURL+redirectLogin, url.Values{
		"email":    {testAdminEmail},
		"password": {testAdminPassword},
	})
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("login: got status %d, want %d", resp.StatusCode, http.StatusSeeOther)
	}
	if loc := resp.Header.Get("Location"); loc != redirectDashboard {
		t.Fatalf("login: got redirect to %q, want %q", loc, redirectDashboard)
	}
}
