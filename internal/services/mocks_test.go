package services

import (
	"context"
	"strings"
	"sync"

	"github.com/otpauth/backend/internal/models"
	"github.com/otpauth/backend/libs/auth/service"
)

// mockUserRepository is an in-memory implementation of UserRepository
type mockUserRepository struct {
	mu     sync.Mutex
	users  map[int]*models.User
	nextID int

	existsErr error
	createErr error
	getErr    error
	deleteErr error
	// existsOverride makes ExistsByUsername report false so Create sees the duplicate
	existsOverride bool
}

func newMockUserRepository(users ...*models.User) *mockUserRepository {
	m := &mockUserRepository{users: make(map[int]*models.User)}
	for _, u := range users {
		m.nextID++
		stored := *u
		stored.ID = m.nextID
		m.users[stored.ID] = &stored
	}
	return m
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	for _, u := range m.users {
		if u.Username == user.Username {
			return models.ErrDuplicateUsername
		}
	}
	m.nextID++
	user.ID = m.nextID
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.find(func(u *models.User) bool { return u.Username == username })
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	// The users table collation is case-insensitive but keeps surrounding spaces significant
	return m.find(func(u *models.User) bool { return strings.EqualFold(u.Email, email) })
}

func (m *mockUserRepository) GetByID(ctx context.Context, userID int) (*models.User, error) {
	return m.find(func(u *models.User) bool { return u.ID == userID })
}

func (m *mockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	if m.existsOverride {
		return false, nil
	}
	_, err := m.GetByUsername(ctx, username)
	return err == nil, nil
}

func (m *mockUserRepository) Delete(ctx context.Context, userID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.users[userID]; !ok {
		return models.ErrUserNotFound
	}
	delete(m.users, userID)
	return nil
}

func (m *mockUserRepository) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

// find returns the lowest ID user matching match
func (m *mockUserRepository) find(match func(*models.User) bool) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	for id := 1; id <= m.nextID; id++ {
		if u, ok := m.users[id]; ok && match(u) {
			found := *u
			return &found, nil
		}
	}
	return nil, models.ErrUserNotFound
}

// sentEmail is a message captured by mockNotifier
type sentEmail struct {
	to, subject, body string
}

// mockNotifier captures messages. When block is set Send waits for it to close.
type mockNotifier struct {
	mu    sync.Mutex
	sent  []sentEmail
	err   error
	block chan struct{}
}

func (m *mockNotifier) Send(ctx context.Context, to, subject, body string) error {
	if m.block != nil {
		<-m.block
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentEmail{to: to, subject: subject, body: body})
	return nil
}

func (m *mockNotifier) messages() []sentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentEmail(nil), m.sent...)
}

// mockOTPStore fails every call with err
type mockOTPStore struct {
	err error
}

func (m *mockOTPStore) Put(ctx context.Context, email, code string) error {
	return m.err
}

func (m *mockOTPStore) Consume(ctx context.Context, email, code string) (bool, error) {
	return false, m.err
}

// mockTokenIssuer fails every call with err
type mockTokenIssuer struct {
	err error
}

func (m *mockTokenIssuer) GenerateToken(claims service.Claims) (string, error) {
	return "", m.err
}
