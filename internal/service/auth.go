package service

import (
	"CookieVault/internal/config"
	"CookieVault/internal/model"
	"CookieVault/internal/repo"
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService отвечает за проверку учётных данных, первичное создание админа
// и перечитывание клеймов активной сессии.
type AuthService struct {
	accounts repo.AccountRepository

	seedEmail    string
	seedPassword string
	hashCost     int

	// dummyHash используется для выравнивания времени ответа, когда аккаунт
	// не найден: bcrypt-сравнение выполняется в обеих ветках.
	dummyHash []byte
}

// NewAuthService создаёт сервис аутентификации.
func NewAuthService(accounts repo.AccountRepository, cfg *config.Config) *AuthService {
	dummy, _ := bcrypt.GenerateFromPassword([]byte("cookievault-timing-pad"), cfg.BcryptCost)
	return &AuthService{
		accounts:     accounts,
		seedEmail:    normalizeEmail(cfg.AdminEmail),
		seedPassword: cfg.AdminPassword,
		hashCost:     cfg.BcryptCost,
		dummyHash:    dummy,
	}
}

// normalizeEmail приводит email к канонической форме хранения.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Authenticate проверяет пару email/пароль по единой таблице аккаунтов.
// Любая неудача — один и тот же ErrInvalidCredentials: ответ не раскрывает,
// существует ли email.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*model.Account, error) {
	acc, err := s.accounts.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// выравниваем время с веткой «неверный пароль»
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return acc, nil
}

// SeedAdmin — одноразовая операция создания первого админа с настроенными
// email/паролем. Охраняется фактом отсутствия такого аккаунта; гонка
// разрешается уникальным индексом по email.
func (s *AuthService) SeedAdmin(ctx context.Context) (*model.Account, error) {
	if _, err := s.accounts.GetByEmail(ctx, s.seedEmail); err == nil {
		return nil, ErrAdminSeeded
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.seedPassword), s.hashCost)
	if err != nil {
		return nil, err
	}

	acc := &model.Account{
		Email:        s.seedEmail,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
	}
	created, err := s.accounts.Create(ctx, acc)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrAdminSeeded
		}
		return nil, err
	}
	return created, nil
}

// SessionInfo перечитывает аккаунт активной сессии — так периодическое
// обновление подхватывает смену роли, не сдвигая абсолютное истечение.
func (s *AuthService) SessionInfo(ctx context.Context, email string) (*model.Account, error) {
	acc, err := s.accounts.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return acc, nil
}
