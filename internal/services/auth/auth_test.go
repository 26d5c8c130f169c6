package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/rememory/internal/lib/jwt"
	"github.com/magabrotheeeer/rememory/internal/lib/password"
	"github.com/magabrotheeeer/rememory/internal/models"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) RegisterUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByUID(ctx context.Context, uid string) (*models.User, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newMaker() jwt.Maker {
	return jwt.NewJWTMaker("test-secret", time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(*MockUserRepository)
		wantErr    bool
	}{
		{
			name: "successful registration",
			setupMocks: func(r *MockUserRepository) {
				r.On("RegisterUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
					return u.Username == "testuser" &&
						u.Email == "test@example.com" &&
						u.Role == models.RoleUser &&
						password.CompareHash(u.PasswordHash, "secret123") == nil
				})).Return("uid-1", nil)
			},
		},
		{
			name: "repository error",
			setupMocks: func(r *MockUserRepository) {
				r.On("RegisterUser", mock.Anything, mock.AnythingOfType("models.User")).
					Return("", errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			tt.setupMocks(repo)

			svc := NewAuthService(repo, newMaker())

			uid, err := svc.Register(context.Background(), "test@example.com", "testuser", "secret123")
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "uid-1", uid)
			repo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hash, err := password.GetHash("secret123")
	require.NoError(t, err)

	user := &models.User{
		UUID:         "uid-1",
		Email:        "test@example.com",
		Username:     "testuser",
		PasswordHash: hash,
		Role:         models.RoleUser,
	}

	tests := []struct {
		name       string
		password   string
		setupMocks func(*MockUserRepository)
		wantErr    error
	}{
		{
			name:     "successful login",
			password: "secret123",
			setupMocks: func(r *MockUserRepository) {
				r.On("GetUserByUsername", mock.Anything, "testuser").Return(user, nil)
			},
		},
		{
			name:     "user not found",
			password: "secret123",
			setupMocks: func(r *MockUserRepository) {
				r.On("GetUserByUsername", mock.Anything, "testuser").Return(nil, errors.New("not found"))
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			password: "wrongpass",
			setupMocks: func(r *MockUserRepository) {
				r.On("GetUserByUsername", mock.Anything, "testuser").Return(user, nil)
			},
			wantErr: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			tt.setupMocks(repo)

			svc := NewAuthService(repo, newMaker())

			token, role, err := svc.Login(context.Background(), "testuser", tt.password)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, token)
			assert.Equal(t, models.RoleUser, role)
		})
	}
}

func TestAuthService_ValidateToken(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, newMaker())

	maker := newMaker()
	token, err := maker.GenerateToken("testuser", models.RoleAdmin, "uid-1")
	require.NoError(t, err)

	ident, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", ident.UserUID)
	assert.Equal(t, "testuser", ident.Username)
	assert.Equal(t, models.RoleAdmin, ident.Role)

	_, err = svc.ValidateToken(context.Background(), "garbage.token.value")
	assert.Error(t, err)
}

func TestAuthService_CurrentUser(t *testing.T) {
	repo := new(MockUserRepository)
	user := &models.User{UUID: "uid-1", Username: "testuser"}
	repo.On("GetUserByUID", mock.Anything, "uid-1").Return(user, nil)

	svc := NewAuthService(repo, newMaker())

	got, err := svc.CurrentUser(context.Background(), models.Identity{UserUID: "uid-1"})
	require.NoError(t, err)
	assert.Equal(t, user, got)
}
