package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "github.com/rohitkandpal03/shopz-store/errors"
	"github.com/rohitkandpal03/shopz-store/models"
)

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type MockTokenService struct{ mock.Mock }

func (m *MockTokenService) GenerateTokenPair(userID, email, role string) (*TokenPair, error) {
	args := m.Called(userID, email, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*TokenPair), args.Error(1)
}

type MockCartMigrator struct{ mock.Mock }

func (m *MockCartMigrator) MigrateCartToUser(ctx context.Context, sessionCartID string, userID uuid.UUID) error {
	args := m.Called(ctx, sessionCartID, userID)
	return args.Error(0)
}

func newTestUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.User{
		ID:       uuid.New(),
		Name:     "Jordan Baker",
		Email:    "jordan@example.com",
		Password: string(hash),
		Role:     "user",
	}
}

func TestSignInSuccess(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokens := new(MockTokenService)
	migrator := new(MockCartMigrator)
	svc := NewAuthService(userRepo, tokens, migrator)

	user := newTestUser(t, "secret123")
	userRepo.On("FindByEmail", mock.Anything, user.Email).Return(user, nil).Once()
	migrator.On("MigrateCartToUser", mock.Anything, testSession, user.ID).Return(nil).Once()
	tokens.On("GenerateTokenPair", user.ID.String(), user.Email, "user").
		Return(&TokenPair{AccessToken: "a", RefreshToken: "r"}, nil).Once()

	pair, got, err := svc.SignIn(context.Background(), testSession, SignInInput{
		Email:    user.Email,
		Password: "secret123",
	})

	require.NoError(t, err)
	assert.Equal(t, "a", pair.AccessToken)
	assert.Equal(t, user.ID, got.ID)
	migrator.AssertExpectations(t)
}

func TestSignInWrongPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokens := new(MockTokenService)
	migrator := new(MockCartMigrator)
	svc := NewAuthService(userRepo, tokens, migrator)

	user := newTestUser(t, "secret123")
	userRepo.On("FindByEmail", mock.Anything, user.Email).Return(user, nil).Once()

	_, _, err := svc.SignIn(context.Background(), testSession, SignInInput{
		Email:    user.Email,
		Password: "wrongpass",
	})

	require.Error(t, err)
	assert.Equal(t, "invalid email or password", err.Error())
	tokens.AssertNotCalled(t, "GenerateTokenPair", mock.Anything, mock.Anything, mock.Anything)
}

func TestSignInUnknownEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewAuthService(userRepo, new(MockTokenService), new(MockCartMigrator))

	userRepo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound).Once()

	_, _, err := svc.SignIn(context.Background(), testSession, SignInInput{
		Email:    "nobody@example.com",
		Password: "secret123",
	})

	require.Error(t, err)
	assert.Equal(t, "invalid email or password", err.Error())
}

func TestSignInMigrationFailureDoesNotBlockLogin(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokens := new(MockTokenService)
	migrator := new(MockCartMigrator)
	svc := NewAuthService(userRepo, tokens, migrator)

	user := newTestUser(t, "secret123")
	userRepo.On("FindByEmail", mock.Anything, user.Email).Return(user, nil).Once()
	migrator.On("MigrateCartToUser", mock.Anything, testSession, user.ID).Return(errors.New("cart gone")).Once()
	tokens.On("GenerateTokenPair", user.ID.String(), user.Email, "user").
		Return(&TokenPair{AccessToken: "a", RefreshToken: "r"}, nil).Once()

	pair, _, err := svc.SignIn(context.Background(), testSession, SignInInput{
		Email:    user.Email,
		Password: "secret123",
	})

	require.NoError(t, err)
	assert.NotNil(t, pair)
}

func TestSignUpSuccess(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokens := new(MockTokenService)
	migrator := new(MockCartMigrator)
	svc := NewAuthService(userRepo, tokens, migrator)

	var created *models.User
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*models.User) }).
		Return(nil).Once()
	migrator.On("MigrateCartToUser", mock.Anything, testSession, mock.AnythingOfType("uuid.UUID")).Return(nil).Once()
	tokens.On("GenerateTokenPair", mock.AnythingOfType("string"), "new@example.com", "user").
		Return(&TokenPair{AccessToken: "a", RefreshToken: "r"}, nil).Once()

	pair, user, err := svc.SignUp(context.Background(), testSession, SignUpInput{
		Name:            "New User",
		Email:           "new@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	})

	require.NoError(t, err)
	assert.NotNil(t, pair)
	assert.Equal(t, "user", user.Role)
	require.NotNil(t, created)
	assert.NotEqual(t, "secret123", created.Password) // stored hashed
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("secret123")))
}

func TestSignUpPasswordMismatch(t *testing.T) {
	svc := NewAuthService(new(MockUserRepository), new(MockTokenService), new(MockCartMigrator))

	_, _, err := svc.SignUp(context.Background(), testSession, SignUpInput{
		Name:            "New User",
		Email:           "new@example.com",
		Password:        "secret123",
		ConfirmPassword: "different",
	})

	require.Error(t, err)
	assert.Contains(t, apperrors.FormatError(err), "ConfirmPassword")
}

func TestSignUpDuplicateEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewAuthService(userRepo, new(MockTokenService), new(MockCartMigrator))

	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(gorm.ErrDuplicatedKey).Once()

	_, _, err := svc.SignUp(context.Background(), testSession, SignUpInput{
		Name:            "New User",
		Email:           "taken@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	})

	require.Error(t, err)
	assert.Equal(t, "Email already exists", apperrors.FormatError(err))
}

func TestUpdatePaymentMethod(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewAuthService(userRepo, new(MockTokenService), new(MockCartMigrator))

	user := newTestUser(t, "secret123")
	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil).Once()

	var saved *models.User
	userRepo.On("Update", mock.Anything, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*models.User) }).
		Return(nil).Once()

	err := svc.UpdatePaymentMethod(context.Background(), user.ID, "PayPal")

	require.NoError(t, err)
	assert.Equal(t, "PayPal", saved.PaymentMethod)
}

func TestUpdatePaymentMethodEmpty(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewAuthService(userRepo, new(MockTokenService), new(MockCartMigrator))

	err := svc.UpdatePaymentMethod(context.Background(), uuid.New(), "")

	require.Error(t, err)
	userRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestUpdateUserAddress(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewAuthService(userRepo, new(MockTokenService), new(MockCartMigrator))

	user := newTestUser(t, "secret123")
	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil).Once()

	var saved *models.User
	userRepo.On("Update", mock.Anything, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*models.User) }).
		Return(nil).Once()

	err := svc.UpdateUserAddress(context.Background(), user.ID, ShippingAddressInput{
		FullName:      "Jordan Baker",
		StreetAddress: "12 Main Street",
		City:          "Springfield",
		PostalCode:    "12345",
		Country:       "USA",
	})

	require.NoError(t, err)
	require.NotNil(t, saved.Address)
	assert.Equal(t, "Springfield", saved.Address.City)
}
