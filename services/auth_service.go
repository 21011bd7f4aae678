package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "github.com/rohitkandpal03/shopz-store/errors"
	"github.com/rohitkandpal03/shopz-store/models"
	"github.com/rohitkandpal03/shopz-store/repository"

	"github.com/go-playground/validator/v10"
)

type ITokenService interface {
	GenerateTokenPair(userID, email, role string) (*TokenPair, error)
}

// ICartMigrator hands a session cart over to a user at sign-in.
type ICartMigrator interface {
	MigrateCartToUser(ctx context.Context, sessionCartID string, userID uuid.UUID) error
}

type SignUpInput struct {
	Name            string `json:"name" validate:"required,min=3"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

type SignInInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type ShippingAddressInput struct {
	FullName      string `json:"fullName" validate:"required,min=3"`
	StreetAddress string `json:"streetAddress" validate:"required,min=3"`
	City          string `json:"city" validate:"required,min=3"`
	PostalCode    string `json:"postalCode" validate:"required,min=3"`
	Country       string `json:"country" validate:"required,min=3"`
}

// AuthService owns accounts: credentials, profile address and payment
// method.
type AuthService interface {
	SignIn(ctx context.Context, sessionCartID string, input SignInInput) (*TokenPair, *models.User, error)
	SignUp(ctx context.Context, sessionCartID string, input SignUpInput) (*TokenPair, *models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateUserAddress(ctx context.Context, userID uuid.UUID, input ShippingAddressInput) error
	UpdatePaymentMethod(ctx context.Context, userID uuid.UUID, method string) error
}

type authServiceImpl struct {
	userRepo     repository.UserRepository
	tokenService ITokenService
	cartMigrator ICartMigrator
	validate     *validator.Validate
}

func NewAuthService(userRepo repository.UserRepository, tokenService ITokenService, cartMigrator ICartMigrator) AuthService {
	return &authServiceImpl{
		userRepo:     userRepo,
		tokenService: tokenService,
		cartMigrator: cartMigrator,
		validate:     newValidator(),
	}
}

// SignIn checks credentials and issues a token pair. The session cart,
// if any, is adopted by the user so their basket survives signing in.
func (s *authServiceImpl) SignIn(ctx context.Context, sessionCartID string, input SignInInput) (*TokenPair, *models.User, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return nil, nil, fmt.Errorf("invalid email or password")
	}

	if sessionCartID != "" {
		if err := s.cartMigrator.MigrateCartToUser(ctx, sessionCartID, user.ID); err != nil {
			zap.L().Warn("Failed to migrate session cart", zap.Error(err), zap.String("user_id", user.ID.String()))
		}
	}

	pair, err := s.tokenService.GenerateTokenPair(user.ID.String(), user.Email, user.Role)
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

// SignUp creates an account and signs the new user straight in.
func (s *authServiceImpl) SignUp(ctx context.Context, sessionCartID string, input SignUpInput) (*TokenPair, *models.User, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password")
	}

	newUser := &models.User{
		ID:       uuid.New(),
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashedPassword),
		Role:     "user",
	}

	if err := s.userRepo.Create(ctx, newUser); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, apperrors.New(http.StatusConflict, "Email already exists", err)
		}
		return nil, nil, err
	}

	if sessionCartID != "" {
		if err := s.cartMigrator.MigrateCartToUser(ctx, sessionCartID, newUser.ID); err != nil {
			zap.L().Warn("Failed to migrate session cart", zap.Error(err), zap.String("user_id", newUser.ID.String()))
		}
	}

	pair, err := s.tokenService.GenerateTokenPair(newUser.ID.String(), newUser.Email, newUser.Role)
	if err != nil {
		return nil, nil, err
	}
	return pair, newUser, nil
}

func (s *authServiceImpl) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, err
	}
	return user, nil
}

// UpdateUserAddress stores a validated shipping address on the user.
func (s *authServiceImpl) UpdateUserAddress(ctx context.Context, userID uuid.UUID, input ShippingAddressInput) error {
	if err := s.validate.Struct(input); err != nil {
		return err
	}

	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	user.Address = &models.ShippingAddress{
		FullName:      input.FullName,
		StreetAddress: input.StreetAddress,
		City:          input.City,
		PostalCode:    input.PostalCode,
		Country:       input.Country,
	}
	return s.userRepo.Update(ctx, user)
}

// UpdatePaymentMethod stores the user's preferred payment method.
func (s *authServiceImpl) UpdatePaymentMethod(ctx context.Context, userID uuid.UUID, method string) error {
	if method == "" {
		return apperrors.Validation("paymentMethod is required")
	}

	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	user.PaymentMethod = method
	return s.userRepo.Update(ctx, user)
}
