package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/GoArmGo/TasksAPI/internal/core/ports"
	"github.com/GoArmGo/TasksAPI/internal/domain"
	"github.com/GoArmGo/TasksAPI/internal/logger"
)

var _ ports.Storage = (*Storage)(nil)

func newUser(t *testing.T, s *Storage, name, key string) *domain.User {
	t.Helper()
	u := &domain.User{Username: name, PasswordHash: "hash", CreatedAt: time.Now()}
	if err := s.CreateUserWithToken(context.Background(), u, key); err != nil {
		t.Fatalf("CreateUserWithToken(%q) error = %v", name, err)
	}
	return u
}

func TestCreateUserAssignsMonotonicIDs(t *testing.T) {
	s := NewStorage(logger.Discard())
	a := newUser(t, s, "alice", "k1")
	b := newUser(t, s, "bob", "k2")

	if a.ID != 1 || b.ID != 2 {
		t.Fatalf("ids = %d, %d; want 1, 2", a.ID, b.ID)
	}

	users, _ := s.ListUsers(context.Background())
	if len(users) != 2 || users[0].Username != "alice" || users[1].Username != "bob" {
		t.Fatalf("ListUsers = %+v", users)
	}
}

func TestCreateUserDuplicateLeavesStateUntouched(t *testing.T) {
	s := NewStorage(logger.Discard())
	newUser(t, s, "alice", "k1")

	err := s.CreateUserWithToken(context.Background(), &domain.User{Username: "alice"}, "k2")
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("duplicate error = %v, want ErrAlreadyExists", err)
	}
	if _, err := s.GetUserByToken(context.Background(), "k2"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("token of rejected user should not exist, err = %v", err)
	}
	users, _ := s.ListUsers(context.Background())
	if len(users) != 1 {
		t.Fatalf("len(users) = %d, want 1", len(users))
	}
}

func TestCreateUserConcurrentSameUsername(t *testing.T) {
	s := NewStorage(logger.Discard())

	const n = 32
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := s.CreateUserWithToken(context.Background(), &domain.User{Username: "alice"}, fmt.Sprintf("key-%d", i))
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	if succeeded != 1 {
		t.Fatalf("succeeded = %d, want exactly 1", succeeded)
	}
}

func TestGetOrCreateTokenIsStable(t *testing.T) {
	s := NewStorage(logger.Discard())
	u := newUser(t, s, "alice", "first")

	tok, err := s.GetOrCreateToken(context.Background(), u.ID, "second")
	if err != nil {
		t.Fatalf("GetOrCreateToken error = %v", err)
	}
	if tok.Key != "first" {
		t.Fatalf("token key = %q, want existing %q", tok.Key, "first")
	}

	s.DeleteToken(u.ID)
	tok, err = s.GetOrCreateToken(context.Background(), u.ID, "third")
	if err != nil || tok.Key != "third" {
		t.Fatalf("GetOrCreateToken after delete = %+v, %v; want third", tok, err)
	}
}

func TestTasksAreScopedToOwner(t *testing.T) {
	s := NewStorage(logger.Discard())
	a := newUser(t, s, "alice", "ka")
	b := newUser(t, s, "bob", "kb")

	for _, owner := range []int64{a.ID, b.ID, a.ID} {
		task := &domain.Task{UserID: owner, Description: "same", Status: domain.StatusActive}
		if err := s.SaveTask(context.Background(), task); err != nil {
			t.Fatalf("SaveTask error = %v", err)
		}
	}

	tasks, _ := s.ListTasksByUser(context.Background(), a.ID)
	if len(tasks) != 2 {
		t.Fatalf("len(alice tasks) = %d, want 2", len(tasks))
	}
	if tasks[0].ID == tasks[1].ID {
		t.Fatal("duplicate tasks must be distinct records")
	}
	for _, task := range tasks {
		if task.UserID != a.ID {
			t.Fatalf("foreign task leaked: %+v", task)
		}
	}

	if err := s.SaveTask(context.Background(), &domain.Task{UserID: 99}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("SaveTask for unknown owner error = %v, want ErrNotFound", err)
	}
}

func TestListTasksEmptyIsNotNil(t *testing.T) {
	s := NewStorage(logger.Discard())
	tasks, err := s.ListTasksByUser(context.Background(), 1)
	if err != nil || tasks == nil {
		t.Fatalf("ListTasksByUser = %v, %v; want empty non-nil slice", tasks, err)
	}
}

func TestListTasksReturnsCopies(t *testing.T) {
	s := NewStorage(logger.Discard())
	u := newUser(t, s, "alice", "k")

	due := time.Date(2020, 3, 30, 9, 0, 0, 0, time.UTC)
	if err := s.SaveTask(context.Background(), &domain.Task{UserID: u.ID, Description: "x", DueAt: &due}); err != nil {
		t.Fatalf("SaveTask error = %v", err)
	}

	first, _ := s.ListTasksByUser(context.Background(), u.ID)
	*first[0].DueAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	second, _ := s.ListTasksByUser(context.Background(), u.ID)
	if !second[0].DueAt.Equal(due) {
		t.Fatalf("stored due date = %v, want %v", second[0].DueAt, due)
	}
}
