package user

import (
	"errors"
	"strings"

	"bazari/internal/models"
	"bazari/internal/repositories"
	"bazari/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken      = errors.New("email already registered")
	ErrInvalidPassword = errors.New("password must be at least 8 characters and contain special characters")
)

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	UserType string
}

type Service interface {
	Register(input RegisterInput) (*models.User, error)
	GetByID(id uint) (*models.User, error)
}

type service struct {
	userRepo   repositories.UserRepository
	walletRepo repositories.WalletRepository
}

func NewService(userRepo repositories.UserRepository, walletRepo repositories.WalletRepository) Service {
	return &service{
		userRepo:   userRepo,
		walletRepo: walletRepo,
	}
}

func (s *service) Register(input RegisterInput) (*models.User, error) {
	if !validation.ValidPassword(input.Password) {
		return nil, ErrInvalidPassword
	}

	userType := strings.ToUpper(input.UserType)
	switch userType {
	case "":
		userType = models.UserTypeStandard
	case models.UserTypeBasic, models.UserTypeStandard, models.UserTypePremium, models.UserTypeEnterprise:
	default:
		return nil, errors.New("unknown user type")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	user := &models.User{
		Email:    strings.ToLower(input.Email),
		Password: string(hashedPassword),
		Name:     input.Name,
		UserType: userType,
		Role:     "user",
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	// every account gets a wallet
	wallet := &models.Wallet{UserID: user.ID, Currency: "USD"}
	if err := s.walletRepo.Create(wallet); err != nil {
		return nil, err
	}
	user.WalletID = &wallet.ID
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *service) GetByID(id uint) (*models.User, error) {
	return s.userRepo.GetByID(id)
}
