package service

import (
	"CookieVault/internal/model"
	"CookieVault/internal/repo"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// мок для repo.EntryRepository
type mockEntryRepo struct{ mock.Mock }

func (m *mockEntryRepo) Create(ctx context.Context, e *model.Entry) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockEntryRepo) GetByID(ctx context.Context, id string) (*model.Entry, error) {
	args := m.Called(ctx, id)
	if e, ok := args.Get(0).(*model.Entry); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEntryRepo) GetBySlug(ctx context.Context, slug string) (*model.Entry, error) {
	args := m.Called(ctx, slug)
	if e, ok := args.Get(0).(*model.Entry); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEntryRepo) List(ctx context.Context, publicOnly bool) ([]model.Entry, error) {
	args := m.Called(ctx, publicOnly)
	if v, ok := args.Get(0).([]model.Entry); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEntryRepo) Save(ctx context.Context, e *model.Entry) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockEntryRepo) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

var _ repo.EntryRepository = (*mockEntryRepo)(nil)

func strptr(s string) *string { return &s }

func TestEntryService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		m := new(mockEntryRepo)
		svc := NewEntryService(m)

		m.On("GetBySlug", mock.Anything, "example").
			Return((*model.Entry)(nil), gorm.ErrRecordNotFound).Once()
		m.On("Create", mock.Anything, mock.MatchedBy(func(e *model.Entry) bool {
			return e.ID != "" && e.Slug == "example" && e.WebsiteName == "Example"
		})).Return(nil).Once()

		e, err := svc.Create(ctx, CreateEntryInput{
			WebsiteName: "Example",
			Slug:        "  Example ", // нормализуется в lowercase/trim
			Email:       "a@b.com",
		})
		assert.NoError(t, err)
		assert.Equal(t, "example", e.Slug)
		m.AssertExpectations(t)
	})

	t.Run("missing required fields", func(t *testing.T) {
		m := new(mockEntryRepo)
		svc := NewEntryService(m)

		_, err := svc.Create(ctx, CreateEntryInput{Slug: "x", Email: "a@b.com"})
		assert.True(t, IsValidation(err))
		m.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	// инвариант: хотя бы один секрет (email, password, cookies)
	t.Run("no secret material", func(t *testing.T) {
		m := new(mockEntryRepo)
		svc := NewEntryService(m)

		_, err := svc.Create(ctx, CreateEntryInput{WebsiteName: "Example", Slug: "example"})
		assert.ErrorIs(t, err, ErrNoSecret)
		m.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("otp webpage must be http(s)", func(t *testing.T) {
		m := new(mockEntryRepo)
		svc := NewEntryService(m)

		_, err := svc.Create(ctx, CreateEntryInput{
			WebsiteName: "Example",
			Slug:        "example",
			Email:       "a@b.com",
			OTPWebpage:  "javascript:alert(1)",
		})
		assert.True(t, IsValidation(err))
		m.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("slug taken on pre-check", func(t *testing.T) {
		m := new(mockEntryRepo)
		svc := NewEntryService(m)

		m.On("GetBySlug", mock.Anything, "example").
			Return(&model.Entry{ID: "existing", Slug: "example"}, nil).Once()

		_, err := svc.Create(ctx, CreateEntryInput{WebsiteName: "Example", Slug: "example", Email: "a@b.com"})
		assert.ErrorIs(t, err, ErrSlugTaken)
		m.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	// гонка: предварительная проверка прошла, вставка упёрлась в индекс
	t.Run("slug race surfaced at write", func(t *testing.T) {
		m := new(mockEntryRepo)
		svc := NewEntryService(m)

		m.On("GetBySlug", mock.Anything, "example").
			Return((*model.Entry)(nil), gorm.ErrRecordNotFound).Once()
		m.On("Create", mock.Anything, mock.Anything).Return(repo.ErrDuplicate).Once()

		_, err := svc.Create(ctx, CreateEntryInput{WebsiteName: "Example", Slug: "example", Email: "a@b.com"})
		assert.ErrorIs(t, err, ErrSlugTaken)
		m.AssertExpectations(t)
	})
}

func TestEntryService_List(t *testing.T) {
	ctx := context.Background()

	// не-админ видит только публичные — фильтр на уровне запроса
	t.Run("user sees public only", func(t *testing.T) {
		m := new(mockEntryRepo)
		svc := NewEntryService(m)

		m.On("List", mock.Anything, true).
			Return([]model.Entry{{ID: "1", Slug: "pub", IsPublic: true}}, nil).Once()

		entries, err := svc.List(ctx, model.RoleUser)
		assert.NoError(t, err)
		assert.Len(t, entries, 1)
		m.AssertExpectations(t)
	})

	t.Run("admin sees everything", func(t *testing.T) {
		m := new(mockEntryRepo)
		svc := NewEntryService(m)

		m.On("List", mock.Anything, false).
			Return([]model.Entry{{ID: "1"}, {ID: "2"}}, nil).Once()

		entries, err := svc.List(ctx, model.RoleAdmin)
		assert.NoError(t, err)
		assert.Len(t, entries, 2)
		m.AssertExpectations(t)
	})
}

func TestEntryService_Update(t *testing.T) {
	ctx := context.Background()

	stored := func() *model.Entry {
		return &model.Entry{
			ID:          "e1",
			WebsiteName: "Example",
			Slug:        "example",
			Email:       "a@b.com",
			Password:    "p",
			IsPublic:    false,
		}
	}

	t.Run("partial update keeps untouched fields", func(t *testing.T) {
		m := new(mockEntryRepo)
		svc := NewEntryService(m)

		m.On("GetByID", mock.Anything, "e1").Return(stored(), nil).Once()
		m.On("Save", mock.Anything, mock.MatchedBy(func(e *model.Entry) bool {
			return e.Description == "notes" && e.Email == "a@b.com" && e.Slug == "example"
		})).Return(nil).Once()

		e, err := svc.Update(ctx, "e1", UpdateEntryInput{Description: strptr("notes")})
		assert.NoError(t, err)
		assert.Equal(t, "notes", e.Description)
		m.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		m := new(mockEntryRepo)
		svc := NewEntryService(m)

		m.On("GetByID", mock.Anything, "missing").
			Return((*model.Entry)(nil), gorm.ErrRecordNotFound).Once()

		_, err := svc.Update(ctx, "missing", UpdateEntryInput{})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	// смена slug перепроверяет уникальность против остальных записей
	t.Run("slug change conflicts", func(t *testing.T) {
		m := new(mockEntryRepo)
		svc := NewEntryService(m)

		m.On("GetByID", mock.Anything, "e1").Return(stored(), nil).Once()
		m.On("GetBySlug", mock.Anything, "taken").
			Return(&model.Entry{ID: "e2", Slug: "taken"}, nil).Once()

		_, err := svc.Update(ctx, "e1", UpdateEntryInput{Slug: strptr("taken")})
		assert.ErrorIs(t, err, ErrSlugTaken)
		m.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("same slug skips uniqueness check", func(t *testing.T) {
		m := new(mockEntryRepo)
		svc := NewEntryService(m)

		m.On("GetByID", mock.Anything, "e1").Return(stored(), nil).Once()
		m.On("Save", mock.Anything, mock.Anything).Return(nil).Once()

		_, err := svc.Update(ctx, "e1", UpdateEntryInput{Slug: strptr("Example")}) // нормализуется в тот же slug
		assert.NoError(t, err)
		m.AssertNotCalled(t, "GetBySlug", mock.Anything, mock.Anything)
		m.AssertExpectations(t)
	})

	// очистка всех секретов разом отклоняется, Save не вызывается —
	// запись в хранилище остаётся прежней
	t.Run("clearing all secrets rejected", func(t *testing.T) {
		m := new(mockEntryRepo)
		svc := NewEntryService(m)

		m.On("GetByID", mock.Anything, "e1").Return(stored(), nil).Once()

		_, err := svc.Update(ctx, "e1", UpdateEntryInput{
			Email:    strptr(""),
			Password: strptr(""),
			Cookies:  strptr(""),
		})
		assert.ErrorIs(t, err, ErrNoSecret)
		m.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestEntryService_GetAndDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("get ok", func(t *testing.T) {
		m := new(mockEntryRepo)
		svc := NewEntryService(m)

		m.On("GetByID", mock.Anything, "e1").Return(&model.Entry{ID: "e1"}, nil).Once()
		e, err := svc.Get(ctx, "e1")
		assert.NoError(t, err)
		assert.Equal(t, "e1", e.ID)
	})

	t.Run("get not found", func(t *testing.T) {
		m := new(mockEntryRepo)
		svc := NewEntryService(m)

		m.On("GetByID", mock.Anything, "missing").
			Return((*model.Entry)(nil), gorm.ErrRecordNotFound).Once()
		_, err := svc.Get(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete ok", func(t *testing.T) {
		m := new(mockEntryRepo)
		svc := NewEntryService(m)

		m.On("Delete", mock.Anything, "e1").Return(true, nil).Once()
		assert.NoError(t, svc.Delete(ctx, "e1"))
	})

	t.Run("delete not found", func(t *testing.T) {
		m := new(mockEntryRepo)
		svc := NewEntryService(m)

		m.On("Delete", mock.Anything, "missing").Return(false, nil).Once()
		assert.ErrorIs(t, svc.Delete(ctx, "missing"), ErrNotFound)
	})
}
