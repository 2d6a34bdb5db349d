// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
)

// testDB creates a temporary test database with migrations applied.
func testDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	f, err := os.CreateTemp("", "influencons-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	f.Close()

	db, err := NewDB(dbPath)
	if err != nil {
		os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}

	return db, cleanup
}

func TestCreateUser(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	user, err := q.CreateUser(ctx, CreateUserParams{
		Username:     "Evelyne",
		Email:        "test@influencons.com",
		PasswordHash: "hashed-password",
		IsAdmin:      true,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.ID == 0 {
		t.Error("expected non-zero user ID")
	}
	if !user.IsAdmin {
		t.Error("expected admin flag to round-trip")
	}
	if user.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}

	got, err := q.GetUserByEmail(ctx, "test@influencons.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("got user ID %d, want %d", got.ID, user.ID)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	params := CreateUserParams{
		Username:     "First",
		Email:        "dup@influencons.com",
		PasswordHash: "hash",
		IsAdmin:      false,
	}
	if _, err := q.CreateUser(ctx, params); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	params.Username = "Second"
	_, err := q.CreateUser(ctx, params)
	if err == nil {
		t.Fatal("expected error creating user with duplicate email")
	}
	if !IsUniqueViolation(err) {
		t.Errorf("expected unique violation, got: %v", err)
	}
}

func TestGetAdminByEmail(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	if _, err := q.CreateUser(ctx, CreateUserParams{
		Username:     "Reader",
		Email:        "reader@influencons.com",
		PasswordHash: "hash",
		IsAdmin:      false,
	}); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	_, err := q.GetAdminByEmail(ctx, "reader@influencons.com")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected ErrNoRows for non-admin account, got: %v", err)
	}
}

func TestArticleCRUD(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	article, err := q.CreateArticle(ctx, CreateArticleParams{
		Title:       "Hello World",
		Slug:        "hello-world",
		Tag:         "Climat",
		Excerpt:     "Short intro",
		Content:     "<p>Body</p>",
		IsPublished: true,
	})
	if err != nil {
		t.Fatalf("CreateArticle: %v", err)
	}
	if article.Slug != "hello-world" {
		t.Errorf("got slug %q, want %q", article.Slug, "hello-world")
	}

	got, err := q.GetPublishedArticleBySlug(ctx, "hello-world")
	if err != nil {
		t.Fatalf("GetPublishedArticleBySlug: %v", err)
	}
	if got.ID != article.ID {
		t.Errorf("got article ID %d, want %d", got.ID, article.ID)
	}

	err = q.UpdateArticle(ctx, UpdateArticleParams{
		ID:          article.ID,
		Title:       "Hello World, Updated",
		Tag:         article.Tag,
		Excerpt:     article.Excerpt,
		Content:     article.Content,
		ImageURL:    article.ImageURL,
		IsPublished: false,
	})
	if err != nil {
		t.Fatalf("UpdateArticle: %v", err)
	}

	// The slug survives edits, but unpublishing hides the article from
	// the public lookup.
	if _, err := q.GetPublishedArticleBySlug(ctx, "hello-world"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected ErrNoRows for unpublished article, got: %v", err)
	}

	updated, err := q.GetArticle(ctx, article.ID)
	if err != nil {
		t.Fatalf("GetArticle: %v", err)
	}
	if updated.Title != "Hello World, Updated" {
		t.Errorf("got title %q after update", updated.Title)
	}
	if updated.Slug != "hello-world" {
		t.Errorf("slug changed on update: %q", updated.Slug)
	}

	if err := q.DeleteArticle(ctx, article.ID); err != nil {
		t.Fatalf("DeleteArticle: %v", err)
	}
	if _, err := q.GetArticle(ctx, article.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected ErrNoRows after delete, got: %v", err)
	}
}

func TestArticleSlugUnique(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	params := CreateArticleParams{
		Title:       "Same",
		Slug:        "same",
		Content:     "body",
		IsPublished: true,
	}
	if _, err := q.CreateArticle(ctx, params); err != nil {
		t.Fatalf("CreateArticle: %v", err)
	}
	if _, err := q.CreateArticle(ctx, params); !IsUniqueViolation(err) {
		t.Errorf("expected unique violation for duplicate slug, got: %v", err)
	}

	exists, err := q.ArticleSlugExists(ctx, "same")
	if err != nil {
		t.Fatalf("ArticleSlugExists: %v", err)
	}
	if !exists {
		t.Error("expected slug to exist")
	}
	exists, err = q.ArticleSlugExists(ctx, "other")
	if err != nil {
		t.Fatalf("ArticleSlugExists: %v", err)
	}
	if exists {
		t.Error("expected slug to be free")
	}
}

func TestListPublishedArticles(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	for i, arg := range []CreateArticleParams{
		{Title: "Published A", Slug: "published-a", Tag: "Climat", Content: "a", IsPublished: true},
		{Title: "Published B", Slug: "published-b", Tag: "Solidarité", Content: "b", IsPublished: true},
		{Title: "Draft", Slug: "draft", Tag: "Climat", Content: "c", IsPublished: false},
	} {
		if _, err := q.CreateArticle(ctx, arg); err != nil {
			t.Fatalf("CreateArticle %d: %v", i, err)
		}
	}

	items, err := q.ListPublishedArticles(ctx, 10, 0)
	if err != nil {
		t.Fatalf("ListPublishedArticles: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d published articles, want 2", len(items))
	}
	for _, a := range items {
		if !a.IsPublished {
			t.Errorf("unpublished article %q in published listing", a.Slug)
		}
	}

	n, err := q.CountPublishedArticles(ctx)
	if err != nil {
		t.Fatalf("CountPublishedArticles: %v", err)
	}
	if n != 2 {
		t.Errorf("got count %d, want 2", n)
	}

	tagged, err := q.ListPublishedArticlesByTag(ctx, "climat", 10, 0)
	if err != nil {
		t.Fatalf("ListPublishedArticlesByTag: %v", err)
	}
	if len(tagged) != 1 || tagged[0].Slug != "published-a" {
		t.Errorf("tag filter returned %+v", tagged)
	}
	tn, err := q.CountPublishedArticlesByTag(ctx, "climat")
	if err != nil {
		t.Fatalf("CountPublishedArticlesByTag: %v", err)
	}
	if tn != 1 {
		t.Errorf("got tag count %d, want 1", tn)
	}
}

func TestGetCurrentDefi(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	if _, err := q.GetCurrentDefi(ctx); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected ErrNoRows with no défis, got: %v", err)
	}

	first, err := q.CreateDefi(ctx, CreateDefiParams{Title: "Premier défi", IsActive: true})
	if err != nil {
		t.Fatalf("CreateDefi: %v", err)
	}
	second, err := q.CreateDefi(ctx, CreateDefiParams{Title: "Deuxième défi", IsActive: true})
	if err != nil {
		t.Fatalf("CreateDefi: %v", err)
	}
	// Same-second inserts tie on created_at; make the newer one explicit.
	if _, err := db.ExecContext(ctx,
		`UPDATE defis SET created_at = datetime(created_at, '+1 hour') WHERE id = ?`, second.ID); err != nil {
		t.Fatalf("bumping created_at: %v", err)
	}
	inactive, err := q.CreateDefi(ctx, CreateDefiParams{Title: "Inactif", IsActive: false})
	if err != nil {
		t.Fatalf("CreateDefi: %v", err)
	}
	if _, err := db.ExecContext(ctx,
		`UPDATE defis SET created_at = datetime(created_at, '+2 hours') WHERE id = ?`, inactive.ID); err != nil {
		t.Fatalf("bumping created_at: %v", err)
	}

	current, err := q.GetCurrentDefi(ctx)
	if err != nil {
		t.Fatalf("GetCurrentDefi: %v", err)
	}
	if current.ID != second.ID {
		t.Errorf("got défi %d (%q), want %d", current.ID, current.Title, second.ID)
	}
	_ = first
}

func TestListActiveSolidariteActions(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	plain, err := q.CreateSolidariteAction(ctx, CreateSolidariteActionParams{
		Title: "Collecte", Progress: 40, IconType: "hands", IsActive: true,
	})
	if err != nil {
		t.Fatalf("CreateSolidariteAction: %v", err)
	}
	featured, err := q.CreateSolidariteAction(ctx, CreateSolidariteActionParams{
		Title: "Mise en avant", Progress: 75, IconType: "heart", IsFeatured: true, IsActive: true,
	})
	if err != nil {
		t.Fatalf("CreateSolidariteAction: %v", err)
	}
	if _, err := q.CreateSolidariteAction(ctx, CreateSolidariteActionParams{
		Title: "Archivée", IconType: "book", IsActive: false,
	}); err != nil {
		t.Fatalf("CreateSolidariteAction: %v", err)
	}

	items, err := q.ListActiveSolidariteActions(ctx, 10)
	if err != nil {
		t.Fatalf("ListActiveSolidariteActions: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d active actions, want 2", len(items))
	}
	if items[0].ID != featured.ID {
		t.Errorf("expected featured action first, got %q", items[0].Title)
	}
	if items[1].ID != plain.ID {
		t.Errorf("expected plain action second, got %q", items[1].Title)
	}
}

func TestListVisibleForumTopics(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	normal, err := q.CreateForumTopic(ctx, CreateForumTopicParams{
		Title: "Discussion", Category: "Général", AuthorName: "Marie", ReplyCount: 3, IsVisible: true,
	})
	if err != nil {
		t.Fatalf("CreateForumTopic: %v", err)
	}
	pinned, err := q.CreateForumTopic(ctx, CreateForumTopicParams{
		Title: "Annonce", Category: "Infos", AuthorName: "Evelyne", IsPinned: true, IsVisible: true,
	})
	if err != nil {
		t.Fatalf("CreateForumTopic: %v", err)
	}
	if _, err := q.CreateForumTopic(ctx, CreateForumTopicParams{
		Title: "Masqué", IsVisible: false,
	}); err != nil {
		t.Fatalf("CreateForumTopic: %v", err)
	}

	items, err := q.ListVisibleForumTopics(ctx, 10)
	if err != nil {
		t.Fatalf("ListVisibleForumTopics: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d visible topics, want 2", len(items))
	}
	if items[0].ID != pinned.ID {
		t.Errorf("expected pinned topic first, got %q", items[0].Title)
	}
	if items[1].ID != normal.ID {
		t.Errorf("expected normal topic second, got %q", items[1].Title)
	}
}

func TestNewsletterSubscribers(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	sub, err := q.CreateSubscriber(ctx, "marie@example.com")
	if err != nil {
		t.Fatalf("CreateSubscriber: %v", err)
	}
	if !sub.IsActive {
		t.Error("expected new subscriber to be active")
	}

	if _, err := q.CreateSubscriber(ctx, "marie@example.com"); !IsUniqueViolation(err) {
		t.Errorf("expected unique violation for duplicate email, got: %v", err)
	}

	if err := q.SetSubscriberActive(ctx, sub.ID, false); err != nil {
		t.Fatalf("SetSubscriberActive: %v", err)
	}
	got, err := q.GetSubscriberByEmail(ctx, "marie@example.com")
	if err != nil {
		t.Fatalf("GetSubscriberByEmail: %v", err)
	}
	if got.IsActive {
		t.Error("expected subscriber to be inactive")
	}

	if _, err := q.CreateSubscriber(ctx, "paul@example.com"); err != nil {
		t.Fatalf("CreateSubscriber: %v", err)
	}

	total, err := q.CountSubscribers(ctx)
	if err != nil {
		t.Fatalf("CountSubscribers: %v", err)
	}
	if total != 2 {
		t.Errorf("got %d subscribers, want 2", total)
	}
	active, err := q.CountActiveSubscribers(ctx)
	if err != nil {
		t.Fatalf("CountActiveSubscribers: %v", err)
	}
	if active != 1 {
		t.Errorf("got %d active subscribers, want 1", active)
	}
}

func TestSeed(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()

	if err := Seed(ctx, db, "admin@influencons.com", "changeme123"); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	q := New(db)
	admin, err := q.GetAdminByEmail(ctx, "admin@influencons.com")
	if err != nil {
		t.Fatalf("GetAdminByEmail: %v", err)
	}
	if admin.Username != DefaultAdminUsername {
		t.Errorf("got username %q, want %q", admin.Username, DefaultAdminUsername)
	}

	// Seeding again must not create a second account.
	if err := Seed(ctx, db, "admin@influencons.com", "changeme123"); err != nil {
		t.Fatalf("second Seed: %v", err)
	}
	var n int64
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		t.Fatalf("counting users: %v", err)
	}
	if n != 1 {
		t.Errorf("got %d users after reseeding, want 1", n)
	}
}

func TestCreateEvent(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	err := q.CreateEvent(ctx, CreateEventParams{
		Level:    "warning",
		Category: "auth",
		Message:  "failed login",
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	events, err := q.ListRecentEvents(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Level != "warning" || events[0].Category != "auth" {
		t.Errorf("unexpected event: %+v", events[0])
	}
	if events[0].UserID.Valid {
		t.Error("expected NULL user_id for anonymous event")
	}
	if events[0].Metadata != "{}" {
		t.Errorf("got metadata %q, want empty object", events[0].Metadata)
	}
}
