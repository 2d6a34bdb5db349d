// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"context"
	"log/slog"
	"testing"

	"github.com/influencons/influencons-go/internal/model"
	"github.com/influencons/influencons-go/internal/store"
	"github.com/influencons/influencons-go/internal/testutil"
)

func TestEventLogHandler(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	logger := slog.New(NewEventLogHandler(testutil.TestLogger().Handler(), db))

	logger.Info("routine startup message")
	logger.Warn("login failed", "category", model.EventCategoryAuth, "email", "x@example.com")
	logger.Error("article save failed", "id", 7)

	events, err := store.New(db).ListRecentEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	// INFO stays out of the event log.
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}

	byMessage := map[string]model.Event{}
	for _, e := range events {
		byMessage[e.Message] = e
	}

	warn, ok := byMessage["login failed"]
	if !ok {
		t.Fatal("missing warn event")
	}
	if warn.Level != model.EventLevelWarning {
		t.Errorf("got level %q, want warning", warn.Level)
	}
	if warn.Category != model.EventCategoryAuth {
		t.Errorf("got category %q, want auth", warn.Category)
	}
	if warn.Metadata != `{"email":"x@example.com"}` {
		t.Errorf("got metadata %q", warn.Metadata)
	}

	errEvent, ok := byMessage["article save failed"]
	if !ok {
		t.Fatal("missing error event")
	}
	if errEvent.Level != model.EventLevelError {
		t.Errorf("got level %q, want error", errEvent.Level)
	}
	if errEvent.Category != model.EventCategoryContent {
		t.Errorf("got category %q, want content", errEvent.Category)
	}
}
