package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/uwezo/shop-backend/internal/dto"
	"github.com/uwezo/shop-backend/internal/model"
)

type mockUserRepo struct {
	byEmail map[string]*model.User
	byID    map[uuid.UUID]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{byEmail: make(map[string]*model.User), byID: make(map[uuid.UUID]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	m.byEmail[user.Email] = user
	m.byID[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	return m.byID[id], nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	return m.byEmail[email], nil
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	var users []model.User
	for _, u := range m.byID {
		users = append(users, *u)
	}
	return users, nil
}

func TestAuthService_Register(t *testing.T) {
	svc := NewAuthService(newMockUserRepo())

	user, err := svc.Register(context.Background(), dto.RegisterRequest{
		Name: "Jane Wanjiku", Email: "jane@example.com", Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.False(t, user.IsAdmin)
	assert.NotEqual(t, "password123", user.Password)
}

func TestAuthService_Register_NormalizesEmail(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewAuthService(repo)

	user, err := svc.Register(context.Background(), dto.RegisterRequest{
		Name: "Jane", Email: "  Jane@Example.COM ", Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", user.Email)

	// A case-variant duplicate must be rejected.
	_, err = svc.Register(context.Background(), dto.RegisterRequest{
		Name: "Jane", Email: "JANE@example.com", Password: "password123",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewAuthService(repo)

	repo.byEmail["jane@example.com"] = &model.User{Email: "jane@example.com"}

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Name: "Jane", Email: "jane@example.com", Password: "password123",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_Login(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewAuthService(repo)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	repo.byEmail["jane@example.com"] = &model.User{
		ID: uuid.New(), Email: "jane@example.com", Password: string(hashed),
	}

	user, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "Jane@Example.com", Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", user.Email)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewAuthService(repo)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	repo.byEmail["jane@example.com"] = &model.User{
		ID: uuid.New(), Email: "jane@example.com", Password: string(hashed),
	}

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "jane@example.com", Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := NewAuthService(newMockUserRepo())

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "nobody@example.com", Password: "password123",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Profile_NotFound(t *testing.T) {
	svc := NewAuthService(newMockUserRepo())

	_, err := svc.Profile(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
