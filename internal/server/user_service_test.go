package server

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobboard/internal/config"
	"github.com/jonathan/jobboard/internal/db"
	"github.com/jonathan/jobboard/internal/types"
)

// fakeDBClient is an in-memory DBClient for user service tests.
type fakeDBClient struct {
	users map[uuid.UUID]*db.User
}

func newFakeDBClient() *fakeDBClient {
	return &fakeDBClient{users: make(map[uuid.UUID]*db.User)}
}

func (f *fakeDBClient) CheckEmailExists(_ context.Context, email string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeDBClient) CreateUser(_ context.Context, name, email, phone, role string) (uuid.UUID, error) {
	id := uuid.New()
	f.users[id] = &db.User{ID: id, Name: name, Email: email, Phone: phone, Role: role}
	return id, nil
}

func (f *fakeDBClient) GetUser(_ context.Context, userID uuid.UUID) (*db.User, error) {
	return f.users[userID], nil
}

func (f *fakeDBClient) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeDBClient) UpdatePassword(_ context.Context, userID uuid.UUID, passwordHash string) error {
	if u, ok := f.users[userID]; ok {
		u.PasswordHash = passwordHash
	}
	return nil
}

func newTestUserService(t *testing.T) (*UserService, *fakeDBClient) {
	t.Helper()
	client := newFakeDBClient()
	// Minimum bcrypt cost keeps these tests fast
	passwordConfig := &config.PasswordConfig{BcryptCost: 4}
	return NewUserService(client, passwordConfig), client
}

func TestUserService_Register(t *testing.T) {
	service, client := newTestUserService(t)

	user, err := service.Register(context.Background(), &types.CreateUserRequest{
		Name:     "Jane Recruiter",
		Email:    "jane@example.com",
		Password: "password123",
		Role:     db.RoleRecruiter,
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Recruiter", user.Name)
	assert.Equal(t, db.RoleRecruiter, user.Role)

	stored := client.users[user.ID]
	require.NotNil(t, stored)
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NotEqual(t, "password123", stored.PasswordHash)
}

func TestUserService_Register_DefaultsToCandidate(t *testing.T) {
	service, _ := newTestUserService(t)

	user, err := service.Register(context.Background(), &types.CreateUserRequest{
		Name:     "John Candidate",
		Email:    "john@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, db.RoleCandidate, user.Role)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	service, _ := newTestUserService(t)

	_, err := service.Register(context.Background(), &types.CreateUserRequest{
		Name:     "First",
		Email:    "dup@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	_, err = service.Register(context.Background(), &types.CreateUserRequest{
		Name:     "Second",
		Email:    "dup@example.com",
		Password: "password456",
	})
	require.Error(t, err)
	var dupErr *ErrEmailAlreadyExists
	assert.ErrorAs(t, err, &dupErr)
}

func TestUserService_Login(t *testing.T) {
	service, _ := newTestUserService(t)

	registered, err := service.Register(context.Background(), &types.CreateUserRequest{
		Name:     "Jane",
		Email:    "jane@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	user, err := service.Login(context.Background(), &types.LoginRequest{
		Email:    "jane@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	service, _ := newTestUserService(t)

	_, err := service.Register(context.Background(), &types.CreateUserRequest{
		Name:     "Jane",
		Email:    "jane@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	_, err = service.Login(context.Background(), &types.LoginRequest{
		Email:    "jane@example.com",
		Password: "wrong-password",
	})
	var credErr *ErrInvalidCredentials
	assert.ErrorAs(t, err, &credErr)
}

func TestUserService_Login_UnknownEmail(t *testing.T) {
	service, _ := newTestUserService(t)

	_, err := service.Login(context.Background(), &types.LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	var credErr *ErrInvalidCredentials
	assert.ErrorAs(t, err, &credErr)
}

func TestUserService_UpdatePassword(t *testing.T) {
	service, _ := newTestUserService(t)

	user, err := service.Register(context.Background(), &types.CreateUserRequest{
		Name:     "Jane",
		Email:    "jane@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	err = service.UpdatePassword(context.Background(), user.ID, "password123", "newpassword456")
	require.NoError(t, err)

	_, err = service.Login(context.Background(), &types.LoginRequest{
		Email:    "jane@example.com",
		Password: "newpassword456",
	})
	assert.NoError(t, err)
}

func TestUserService_UpdatePassword_WrongCurrent(t *testing.T) {
	service, _ := newTestUserService(t)

	user, err := service.Register(context.Background(), &types.CreateUserRequest{
		Name:     "Jane",
		Email:    "jane@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	err = service.UpdatePassword(context.Background(), user.ID, "not-the-password", "newpassword456")
	var mismatchErr *ErrPasswordMismatch
	assert.ErrorAs(t, err, &mismatchErr)
}

func TestUserService_UpdatePassword_UnknownUser(t *testing.T) {
	service, _ := newTestUserService(t)

	err := service.UpdatePassword(context.Background(), uuid.New(), "password123", "newpassword456")
	var notFoundErr *ErrUserNotFound
	assert.ErrorAs(t, err, &notFoundErr)
}
