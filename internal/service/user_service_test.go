package service

import (
	"path/filepath"
	"testing"

	"gradebook/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err, "failed to connect to database")
	require.NoError(t, db.AutoMigrate(&model.User{}))
	return db
}

func TestListUsersEmpty(t *testing.T) {
	users, err := NewUserService(setupTestDB(t)).ListUsers()
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestCreateAndListUsers(t *testing.T) {
	userService := NewUserService(setupTestDB(t))

	res, err := userService.CreateUser("John Doe", 30)
	require.NoError(t, err)
	assert.Equal(t, InsertResult{ID: 1, RowsAffected: 1}, res)

	res, err = userService.CreateUser("Jane Doe", 0)
	require.NoError(t, err)
	assert.Equal(t, uint(2), res.ID)

	users, err := userService.ListUsers()
	require.NoError(t, err)
	assert.Equal(t, []model.User{
		{ID: 1, Name: "John Doe", Age: 30},
		{ID: 2, Name: "Jane Doe", Age: 0},
	}, users)
}
