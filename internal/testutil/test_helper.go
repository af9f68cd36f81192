package testutil

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/internal/models"
	"github.com/SL-IT-AMAZING/founder-sprint-workspace-sub002/internal/repository"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TestHelper provides a migrated database and fixtures for tests
type TestHelper struct {
	t  *testing.T
	DB *gorm.DB

	mu  sync.Mutex
	seq int
}

func NewTestHelper(t *testing.T) *TestHelper {
	t.Helper()
	return &TestHelper{t: t, DB: NewTestDB(t)}
}

// NewTestDB opens a private in-memory sqlite database with the messaging
// schema. Every call gets its own database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), repository.GormConfig())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("test db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := repository.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// CreateUser inserts a user with the given display name
func (h *TestHelper) CreateUser(name string) *models.User {
	h.t.Helper()

	h.mu.Lock()
	h.seq++
	n := h.seq
	h.mu.Unlock()

	user := &models.User{
		Name:         name,
		Email:        fmt.Sprintf("%s.%d@example.com", strings.ToLower(strings.ReplaceAll(name, " ", ".")), n),
		ProfileImage: fmt.Sprintf("https://example.com/avatars/%d.png", n),
		Role:         "member",
	}
	if err := h.DB.Create(user).Error; err != nil {
		h.t.Fatalf("create user %q: %v", name, err)
	}
	return user
}

// CreateUsers inserts n users named "User 1".."User n"
func (h *TestHelper) CreateUsers(n int) []*models.User {
	h.t.Helper()
	users := make([]*models.User, 0, n)
	for i := 1; i <= n; i++ {
		users = append(users, h.CreateUser(fmt.Sprintf("User %d", i)))
	}
	return users
}

// Clock returns a goroutine-safe clock that advances by step on every call,
// so consecutive writes never share a timestamp.
func Clock(start time.Time, step time.Duration) func() time.Time {
	var mu sync.Mutex
	current := start.UTC().Truncate(time.Microsecond)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := current
		current = current.Add(step)
		return t
	}
}
