package service

import (
	"CookieVault/internal/config"
	"CookieVault/internal/model"
	"CookieVault/internal/repo"
	"context"
	"errors"
	"regexp"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AccountService — операции админов над пользовательскими аккаунтами.
type AccountService struct {
	accounts repo.AccountRepository
	hashCost int
}

// NewAccountService создаёт сервис аккаунтов.
func NewAccountService(accounts repo.AccountRepository, cfg *config.Config) *AccountService {
	return &AccountService{accounts: accounts, hashCost: cfg.BcryptCost}
}

// CreateUser создаёт пользовательский аккаунт. Email проверяется на занятость
// по всей таблице — пользователь и админ не могут делить один адрес.
// Предварительная проверка — оптимизация; арбитр гонки — уникальный индекс.
func (s *AccountService) CreateUser(ctx context.Context, name, email, password string) (*model.Account, error) {
	if name == "" || email == "" || password == "" {
		return nil, validation("all fields are required")
	}
	norm := normalizeEmail(email)
	if !emailRe.MatchString(norm) {
		return nil, validation("invalid email format")
	}
	if len(password) < 6 {
		return nil, validation("password must be at least 6 characters")
	}

	if _, err := s.accounts.GetByEmail(ctx, norm); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, err
	}

	acc := &model.Account{
		Name:         name,
		Email:        norm,
		PasswordHash: string(hash),
		Role:         model.RoleUser,
	}
	created, err := s.accounts.Create(ctx, acc)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return created, nil
}

// ListUsers возвращает пользовательские аккаунты, новые первыми.
func (s *AccountService) ListUsers(ctx context.Context) ([]model.Account, error) {
	return s.accounts.ListByRole(ctx, model.RoleUser)
}
