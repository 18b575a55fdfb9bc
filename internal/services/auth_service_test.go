package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"
)

// MockUserRepo is a testify mock of repositories.UserRepository.
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepo) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func notFoundUser(username string) *repositories.NotFoundError {
	return &repositories.NotFoundError{Entity: repositories.EntityUser, ID: username}
}

func TestAuthService_RegisterUser_HashesPassword(t *testing.T) {
	repo := new(MockUserRepo)
	service := services.NewAuthService(repo, "test-secret")

	repo.On("GetByUsername", "alice").Return(nil, notFoundUser("alice")).Once()
	repo.On("GetByEmail", "alice@example.com").Return(nil, notFoundUser("alice@example.com")).Once()
	repo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	user := &models.User{Username: "alice", Email: "alice@example.com", Password: "s3cret99"}
	require.NoError(t, service.RegisterUser(user))

	assert.NotEqual(t, "s3cret99", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("s3cret99")))
	assert.Equal(t, "user", user.Role)

	repo.AssertExpectations(t)
}

func TestAuthService_RegisterUser_DuplicateUsername(t *testing.T) {
	repo := new(MockUserRepo)
	service := services.NewAuthService(repo, "test-secret")

	repo.On("GetByUsername", "alice").Return(&models.User{ID: 1, Username: "alice"}, nil).Once()

	err := service.RegisterUser(&models.User{Username: "alice", Email: "new@example.com", Password: "s3cret99"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already taken")
	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_LoginUser_RoundTrip(t *testing.T) {
	repo := new(MockUserRepo)
	service := services.NewAuthService(repo, "test-secret")

	hashed, err := bcrypt.GenerateFromPassword([]byte("s3cret99"), bcrypt.DefaultCost)
	require.NoError(t, err)
	repo.On("GetByUsername", "alice").Return(&models.User{
		ID:       7,
		Username: "alice",
		Password: string(hashed),
		Role:     "admin",
	}, nil).Once()

	token, err := service.LoginUser("alice", "s3cret99")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims["username"])
	assert.Equal(t, "admin", claims["role"])
	assert.EqualValues(t, 7, claims["user_id"])
}

func TestAuthService_LoginUser_WrongPassword(t *testing.T) {
	repo := new(MockUserRepo)
	service := services.NewAuthService(repo, "test-secret")

	hashed, err := bcrypt.GenerateFromPassword([]byte("s3cret99"), bcrypt.DefaultCost)
	require.NoError(t, err)
	repo.On("GetByUsername", "alice").Return(&models.User{Username: "alice", Password: string(hashed)}, nil).Once()

	_, err = service.LoginUser("alice", "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestAuthService_LoginUser_UnknownUser(t *testing.T) {
	repo := new(MockUserRepo)
	service := services.NewAuthService(repo, "test-secret")

	repo.On("GetByUsername", "ghost").Return(nil, notFoundUser("ghost")).Once()

	_, err := service.LoginUser("ghost", "whatever")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestAuthService_ValidateToken_WrongSecret(t *testing.T) {
	repo := new(MockUserRepo)
	issuer := services.NewAuthService(repo, "secret-one")
	verifier := services.NewAuthService(repo, "secret-two")

	hashed, err := bcrypt.GenerateFromPassword([]byte("s3cret99"), bcrypt.DefaultCost)
	require.NoError(t, err)
	repo.On("GetByUsername", "alice").Return(&models.User{Username: "alice", Password: string(hashed)}, nil).Once()

	token, err := issuer.LoginUser("alice", "s3cret99")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}
