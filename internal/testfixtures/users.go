package testfixtures

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/tutor-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/tutor-scheduler/internal/models"
)

// ReferenceTime is a Monday used as the anchor for deterministic tests.
func ReferenceTime() time.Time {
	return time.Date(2026, time.March, 9, 9, 0, 0, 0, time.UTC)
}

// Users is an in-memory user directory shared by the other fixtures.
type Users struct {
	mu   sync.Mutex
	byID map[uuid.UUID]models.User
}

func NewUsers() *Users {
	return &Users{byID: make(map[uuid.UUID]models.User)}
}

// Add registers a user and returns it.
func (u *Users) Add(name, email string, role identity.Role) models.User {
	user := models.User{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Role:      string(role),
		CreatedAt: ReferenceTime(),
		UpdatedAt: ReferenceTime(),
	}

	u.mu.Lock()
	u.byID[user.ID] = user
	u.mu.Unlock()
	return user
}

// AddStudent registers a student with an optional guardian email.
func (u *Users) AddStudent(name, email, guardianEmail string) models.User {
	user := u.Add(name, email, identity.RoleStudent)
	if guardianEmail != "" {
		user.GuardianEmail = &guardianEmail
		u.mu.Lock()
		u.byID[user.ID] = user
		u.mu.Unlock()
	}
	return user
}

func (u *Users) Create(ctx context.Context, user *models.User) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	u.byID[user.ID] = *user
	return nil
}

func (u *Users) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	user, ok := u.byID[id]
	if !ok {
		return nil, identity.ErrUserNotFound
	}
	return &user, nil
}

func (u *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	for _, user := range u.byID {
		if strings.EqualFold(user.Email, strings.TrimSpace(email)) {
			return &user, nil
		}
	}
	return nil, identity.ErrUserNotFound
}

func (u *Users) lookup(id uuid.UUID) models.User {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.byID[id]
}

var _ identity.UserRepository = (*Users)(nil)
