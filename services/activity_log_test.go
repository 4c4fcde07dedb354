package services

import (
	"fmt"
	"testing"
	"time"

	"cabinet_avocat_go/models"

	"github.com/stretchr/testify/assert"
)

func TestActivityLogRetention(t *testing.T) {
	db := setupTestDB(t)

	// Insert with explicit timestamps so ordering is unambiguous
	base := time.Now().Add(-1 * time.Hour)
	for i := 0; i < 10; i++ {
		entry := &models.ActivityLog{
			Action:    fmt.Sprintf("action_%d", i),
			Details:   "details",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		assert.NoError(t, db.Create(entry).Error)
	}

	assert.NoError(t, TrimActivityLog(db))

	entries, err := GetRecentActivity(db)
	assert.NoError(t, err)
	assert.Len(t, entries, models.ActivityLogRetention)

	// Newest first, oldest entries purged
	assert.Equal(t, "action_9", entries[0].Action)
	assert.Equal(t, "action_4", entries[len(entries)-1].Action)

	var total int64
	db.Model(&models.ActivityLog{}).Count(&total)
	assert.Equal(t, int64(models.ActivityLogRetention), total)
}

func TestRecordActivityAppendsAndTrims(t *testing.T) {
	db := setupTestDB(t)

	base := time.Now().Add(-1 * time.Hour)
	for i := 0; i < models.ActivityLogRetention; i++ {
		entry := &models.ActivityLog{
			Action:    fmt.Sprintf("old_%d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		assert.NoError(t, db.Create(entry).Error)
	}

	RecordActivity(db, "fresh_action", "something happened")

	entries, err := GetRecentActivity(db)
	assert.NoError(t, err)
	assert.Len(t, entries, models.ActivityLogRetention)
	assert.Equal(t, "fresh_action", entries[0].Action)

	// The oldest entry fell out of the window
	var count int64
	db.Model(&models.ActivityLog{}).Where("action = ?", "old_0").Count(&count)
	assert.Equal(t, int64(0), count)
}
