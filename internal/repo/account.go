package repo

import (
	"CookieVault/internal/model"
	"context"

	"gorm.io/gorm"
)

// AccountRepository определяет контракт доступа к Account для слоя сервиса.
// Email везде ожидается уже нормализованным (lowercase, trim) — нормализация
// делается в сервисе, индекс в БД остаётся финальным арбитром уникальности.
type AccountRepository interface {
	// Create вставляет аккаунт. Возвращает ErrDuplicate при занятом email.
	Create(ctx context.Context, acc *model.Account) (*model.Account, error)

	// GetByEmail ищет аккаунт любой роли по email.
	// Возвращает gorm.ErrRecordNotFound, если аккаунта нет.
	GetByEmail(ctx context.Context, email string) (*model.Account, error)

	// ListByRole возвращает аккаунты указанной роли, новые первыми.
	ListByRole(ctx context.Context, role model.Role) ([]model.Account, error)
}

type accountRepo struct {
	db *gorm.DB
}

// NewAccountRepository создаёт реализацию репозитория для Account.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepo{db: db}
}

func (r *accountRepo) Create(ctx context.Context, acc *model.Account) (*model.Account, error) {
	if err := r.db.WithContext(ctx).Create(acc).Error; err != nil {
		if isDuplicate(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return acc, nil
}

func (r *accountRepo) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	var acc model.Account
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&acc).Error; err != nil {
		return nil, err
	}
	return &acc, nil
}

func (r *accountRepo) ListByRole(ctx context.Context, role model.Role) ([]model.Account, error) {
	var accs []model.Account
	err := r.db.WithContext(ctx).
		Where("role = ?", role).
		Order("created_at DESC").
		Find(&accs).Error
	if err != nil {
		return nil, err
	}
	return accs, nil
}
