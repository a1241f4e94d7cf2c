package localstore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestStorePutGet(t *testing.T) {
	dir := t.TempDir()
	store := Open(dir)

	type settings struct {
		PlanID int    `json:"planId"`
		Email  string `json:"userEmail"`
	}
	if err := store.Put(1, KeyReminderSettings, settings{PlanID: 3, Email: "me@example.com"}); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "u1", "reminderSettings.json")); err != nil {
		t.Fatalf("expected file on disk: %v", err)
	}

	var got settings
	if err := store.Get(1, KeyReminderSettings, &got); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.PlanID != 3 || got.Email != "me@example.com" {
		t.Fatalf("unexpected value: %+v", got)
	}

	if store.Has(2, KeyReminderSettings) {
		t.Fatal("entries must be scoped per user")
	}
}

func TestStoreGetMissing(t *testing.T) {
	store := Open(t.TempDir())
	var v map[string]any
	if err := store.Get(1, KeyUserPreferences, &v); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreOverwrite(t *testing.T) {
	store := Open(t.TempDir())
	if err := store.Put(1, KeyUserPreferences, map[string]string{"goal": "a"}); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	if err := store.Put(1, KeyUserPreferences, map[string]string{"goal": "b"}); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	var v map[string]string
	if err := store.Get(1, KeyUserPreferences, &v); err != nil || v["goal"] != "b" {
		t.Fatalf("expected overwritten value, got %v (%v)", v, err)
	}
}
