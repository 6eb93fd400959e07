package orm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type widget struct {
	gorm.Model
	Name  string
	Count int
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&widget{}))
	return db
}

func TestGetWithPagination(t *testing.T) {
	db := testDB(t)
	q := New(db)

	for i := 0; i < 25; i++ {
		require.NoError(t, q.Create(&widget{Name: "w", Count: i}))
	}

	var page []widget
	pagination, err := q.Model(&widget{}).Order("id asc").GetWithPagination(&page, 2, 10)
	require.NoError(t, err)

	assert.Len(t, page, 10)
	assert.Equal(t, 2, pagination.Page)
	assert.Equal(t, int64(25), pagination.Total)
	assert.Equal(t, 3, pagination.TotalPages)
	assert.Equal(t, 10, page[0].Count, "second page starts at the 11th row")
}

func TestGetWithPaginationClampsInputs(t *testing.T) {
	db := testDB(t)
	q := New(db)
	require.NoError(t, q.Create(&widget{Name: "only"}))

	var page []widget
	pagination, err := q.Model(&widget{}).GetWithPagination(&page, -3, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 20, pagination.Limit)
}

func TestTransactionRollsBack(t *testing.T) {
	db := testDB(t)
	q := New(db)

	boom := errors.New("boom")
	err := q.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&widget{Name: "doomed"}).Error; err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var count int64
	require.NoError(t, q.Model(&widget{}).Count(&count))
	assert.Zero(t, count, "rolled-back insert must not survive")
}

func TestLockForUpdateSkippedOnSQLite(t *testing.T) {
	db := testDB(t)
	q := New(db)
	require.NoError(t, q.Create(&widget{Name: "locked", Count: 7}))

	// FOR UPDATE is not valid SQLite; the builder must drop the clause
	// and still return the row.
	var w widget
	err := q.Model(&widget{}).LockForUpdate().Where("name = ?", "locked").First(&w)
	require.NoError(t, err)
	assert.Equal(t, 7, w.Count)
}
