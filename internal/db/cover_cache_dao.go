package db

import (
	"context"
	"fmt"
	"time"

	"github.com/didi/gendry/builder"
)

const coverCacheTableName = "cover_fetch_cache_tab"

// Fetch outcomes remembered per ROM key.
const (
	OutcomeStored  = "stored"
	OutcomeMissing = "missing"
)

var CoverCacheDao = newCoverCacheDao()

type coverCacheDao struct {
	dbGetter DatabaseGetter
}

// CoverCacheEntry records the last fetch attempt for one platform/baseName key.
type CoverCacheEntry struct {
	RomKey    string
	CoverName string
	Outcome   string
	Score     int
}

func newCoverCacheDao() *coverCacheDao {
	return &coverCacheDao{
		dbGetter: Default,
	}
}

// Lookup returns the cached fetch outcome for the key, if any. A nil database
// behaves as an empty cache.
func (dao *coverCacheDao) Lookup(ctx context.Context, romKey string) (*CoverCacheEntry, bool, error) {
	db := dao.dbGetter()
	if db == nil {
		return nil, false, nil
	}

	const query = `SELECT cover_name, outcome, score FROM cover_fetch_cache_tab WHERE rom_key = ? LIMIT 1`
	rows, err := db.QueryContext(ctx, query, romKey)
	if err != nil {
		return nil, false, fmt.Errorf("query cover cache: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		entry := &CoverCacheEntry{RomKey: romKey}
		if err := rows.Scan(&entry.CoverName, &entry.Outcome, &entry.Score); err != nil {
			return nil, false, fmt.Errorf("scan cover cache: %w", err)
		}
		return entry, true, nil
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	return nil, false, nil
}

// Upsert stores or updates the fetch outcome for the entry's key.
func (dao *coverCacheDao) Upsert(ctx context.Context, entry CoverCacheEntry) error {
	db := dao.dbGetter()
	if db == nil {
		return fmt.Errorf("cover cache dao not initialised")
	}

	now := time.Now().Unix()
	payload := []map[string]interface{}{{
		"rom_key":     entry.RomKey,
		"cover_name":  entry.CoverName,
		"outcome":     entry.Outcome,
		"score":       entry.Score,
		"create_time": now,
		"update_time": now,
	}}
	insertSQL, insertArgs, err := builder.BuildInsert(coverCacheTableName, payload)
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, insertSQL, insertArgs...); err != nil {
		if !isUniqueConstraintError(err) {
			return fmt.Errorf("insert cover cache: %w", err)
		}
		updateSQL, updateArgs, err := builder.BuildUpdate(coverCacheTableName,
			map[string]interface{}{"rom_key": entry.RomKey},
			map[string]interface{}{
				"cover_name":  entry.CoverName,
				"outcome":     entry.Outcome,
				"score":       entry.Score,
				"update_time": now,
			},
		)
		if err != nil {
			return err
		}
		if _, err := db.ExecContext(ctx, updateSQL, updateArgs...); err != nil {
			return fmt.Errorf("update cover cache: %w", err)
		}
	}
	return nil
}

// DeleteByKeys drops cache rows for ROMs that no longer exist on the card.
func (dao *coverCacheDao) DeleteByKeys(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	db := dao.dbGetter()
	if db == nil {
		return fmt.Errorf("cover cache dao not initialised")
	}
	where := map[string]interface{}{"rom_key in": keys}
	deleteSQL, args, err := builder.BuildDelete(coverCacheTableName, where)
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, deleteSQL, args...); err != nil {
		return fmt.Errorf("delete cover cache entries: %w", err)
	}
	return nil
}
