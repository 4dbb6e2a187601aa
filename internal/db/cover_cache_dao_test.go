package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCoverCacheLookupMiss(t *testing.T) {
	db := openTestDB(t)
	dao := &coverCacheDao{dbGetter: func() *sql.DB { return db }}

	_, found, err := dao.Lookup(context.Background(), "GB/Unknown")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	assert.False(t, found)
}

func TestCoverCacheUpsertAndLookup(t *testing.T) {
	db := openTestDB(t)
	dao := &coverCacheDao{dbGetter: func() *sql.DB { return db }}
	ctx := context.Background()

	entry := CoverCacheEntry{
		RomKey:    "GB/Super Mario Land",
		CoverName: "Super Mario Land (World).png",
		Outcome:   OutcomeStored,
		Score:     3,
	}
	if err := dao.Upsert(ctx, entry); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	got, found, err := dao.Lookup(ctx, entry.RomKey)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !found {
		t.Fatalf("entry not found after upsert")
	}
	assert.Equal(t, entry.CoverName, got.CoverName)
	assert.Equal(t, OutcomeStored, got.Outcome)
	assert.Equal(t, 3, got.Score)

	// second upsert on the same key must update, not duplicate
	entry.Outcome = OutcomeMissing
	entry.CoverName = ""
	entry.Score = 0
	if err := dao.Upsert(ctx, entry); err != nil {
		t.Fatalf("Upsert update: %v", err)
	}
	got, found, err = dao.Lookup(ctx, entry.RomKey)
	if err != nil || !found {
		t.Fatalf("Lookup after update: %v found=%v", err, found)
	}
	assert.Equal(t, OutcomeMissing, got.Outcome)
}

func TestCoverCacheDeleteByKeys(t *testing.T) {
	db := openTestDB(t)
	dao := &coverCacheDao{dbGetter: func() *sql.DB { return db }}
	ctx := context.Background()

	for _, key := range []string{"GB/A", "GB/B"} {
		if err := dao.Upsert(ctx, CoverCacheEntry{RomKey: key, Outcome: OutcomeMissing}); err != nil {
			t.Fatalf("Upsert %s: %v", key, err)
		}
	}
	if err := dao.DeleteByKeys(ctx, []string{"GB/A"}); err != nil {
		t.Fatalf("DeleteByKeys: %v", err)
	}

	_, found, err := dao.Lookup(ctx, "GB/A")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	assert.False(t, found)
	_, found, _ = dao.Lookup(ctx, "GB/B")
	assert.True(t, found)
}

func TestCoverCacheNilDatabase(t *testing.T) {
	dao := &coverCacheDao{dbGetter: func() *sql.DB { return nil }}
	_, found, err := dao.Lookup(context.Background(), "GB/X")
	if err != nil || found {
		t.Fatalf("nil db lookup: err=%v found=%v", err, found)
	}
	if err := dao.Upsert(context.Background(), CoverCacheEntry{RomKey: "GB/X"}); err == nil {
		t.Fatalf("expected error upserting with nil db")
	}
}
