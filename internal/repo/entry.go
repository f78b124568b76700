package repo

import (
	"CookieVault/internal/model"
	"context"

	"gorm.io/gorm"
)

// EntryRepository определяет контракт доступа к Entry для слоя сервиса.
type EntryRepository interface {
	// Create вставляет запись. Возвращает ErrDuplicate при занятом slug.
	Create(ctx context.Context, e *model.Entry) error

	// GetByID ищет запись по её uuid.
	// Возвращает gorm.ErrRecordNotFound, если записи нет.
	GetByID(ctx context.Context, id string) (*model.Entry, error)

	// GetBySlug ищет запись по slug (используется для проверки конфликтов).
	GetBySlug(ctx context.Context, slug string) (*model.Entry, error)

	// List возвращает записи, недавно обновлённые первыми.
	// При publicOnly=true приватные записи отфильтровываются на уровне запроса,
	// до какой-либо сериализации.
	List(ctx context.Context, publicOnly bool) ([]model.Entry, error)

	// Save сохраняет все поля существующей записи.
	// Возвращает ErrDuplicate при конфликте slug.
	Save(ctx context.Context, e *model.Entry) error

	// Delete удаляет запись. found=false, если записи не было.
	Delete(ctx context.Context, id string) (found bool, err error)
}

type entryRepo struct {
	db *gorm.DB
}

// NewEntryRepository создаёт реализацию репозитория для Entry.
func NewEntryRepository(db *gorm.DB) EntryRepository {
	return &entryRepo{db: db}
}

func (r *entryRepo) Create(ctx context.Context, e *model.Entry) error {
	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *entryRepo) GetByID(ctx context.Context, id string) (*model.Entry, error) {
	var e model.Entry
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *entryRepo) GetBySlug(ctx context.Context, slug string) (*model.Entry, error) {
	var e model.Entry
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *entryRepo) List(ctx context.Context, publicOnly bool) ([]model.Entry, error) {
	q := r.db.WithContext(ctx).Order("updated_at DESC")
	if publicOnly {
		q = q.Where("is_public = ?", true)
	}
	var entries []model.Entry
	if err := q.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *entryRepo) Save(ctx context.Context, e *model.Entry) error {
	if err := r.db.WithContext(ctx).Save(e).Error; err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *entryRepo) Delete(ctx context.Context, id string) (bool, error) {
	tx := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Entry{})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}
