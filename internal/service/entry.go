package service

import (
	"CookieVault/internal/model"
	"CookieVault/internal/repo"
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EntryService — CRUD над записями с учётными данными плюс фильтрация по
// видимости при чтении.
type EntryService struct {
	entries repo.EntryRepository
}

// NewEntryService создаёт сервис записей.
func NewEntryService(entries repo.EntryRepository) *EntryService {
	return &EntryService{entries: entries}
}

// CreateEntryInput — полезная нагрузка создания записи.
type CreateEntryInput struct {
	WebsiteName string
	WebsiteURL  string
	Slug        string
	Description string
	Email       string
	Password    string
	Cookies     string
	OTPWebpage  string
	IsPublic    bool
}

// UpdateEntryInput — частичное обновление: nil-поле означает «не трогать».
type UpdateEntryInput struct {
	WebsiteName *string
	WebsiteURL  *string
	Slug        *string
	Description *string
	Email       *string
	Password    *string
	Cookies     *string
	OTPWebpage  *string
	IsPublic    *bool
}

// normalizeSlug приводит slug к канонической форме (lowercase, trim),
// как это делала исходная схема хранения.
func normalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}

// validateOTPWebpage требует абсолютный http(s)-URL: страница встраивается
// зрителю как есть, произвольные схемы здесь недопустимы.
func validateOTPWebpage(raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return validation("otp webpage must be an absolute http(s) url")
	}
	return nil
}

// Create проверяет инварианты и вставляет запись. Все проверки идут до записи;
// конфликт slug, всплывший на вставке, отображается той же ошибкой, что и
// предварительная проверка.
func (s *EntryService) Create(ctx context.Context, in CreateEntryInput) (*model.Entry, error) {
	name := strings.TrimSpace(in.WebsiteName)
	slug := normalizeSlug(in.Slug)
	if name == "" || slug == "" {
		return nil, validation("website name and slug are required")
	}

	e := &model.Entry{
		ID:          uuid.NewString(),
		WebsiteName: name,
		WebsiteURL:  strings.TrimSpace(in.WebsiteURL),
		Slug:        slug,
		Description: strings.TrimSpace(in.Description),
		Email:       strings.TrimSpace(in.Email),
		Password:    in.Password,
		Cookies:     in.Cookies,
		OTPWebpage:  strings.TrimSpace(in.OTPWebpage),
		IsPublic:    in.IsPublic,
	}

	if !e.HasSecret() {
		return nil, ErrNoSecret
	}
	if err := validateOTPWebpage(e.OTPWebpage); err != nil {
		return nil, err
	}

	// оптимизация: ранний отказ до обращения на запись
	if _, err := s.entries.GetBySlug(ctx, slug); err == nil {
		return nil, ErrSlugTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := s.entries.Create(ctx, e); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}
	return e, nil
}

// Get возвращает запись по id.
func (s *EntryService) Get(ctx context.Context, id string) (*model.Entry, error) {
	e, err := s.entries.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// List возвращает записи, недавно обновлённые первыми. Для не-админов
// приватные записи отсечены на уровне запроса — до сериализации.
func (s *EntryService) List(ctx context.Context, role model.Role) ([]model.Entry, error) {
	return s.entries.List(ctx, !role.IsAdmin())
}

// Update применяет частичное обновление. Смена slug перепроверяет уникальность,
// итоговое состояние обязано сохранить хотя бы один секрет; при любой ошибке
// запись в хранилище не меняется.
func (s *EntryService) Update(ctx context.Context, id string, in UpdateEntryInput) (*model.Entry, error) {
	e, err := s.entries.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if in.WebsiteName != nil {
		if strings.TrimSpace(*in.WebsiteName) == "" {
			return nil, validation("website name is required")
		}
		e.WebsiteName = strings.TrimSpace(*in.WebsiteName)
	}
	if in.WebsiteURL != nil {
		e.WebsiteURL = strings.TrimSpace(*in.WebsiteURL)
	}
	if in.Slug != nil {
		slug := normalizeSlug(*in.Slug)
		if slug == "" {
			return nil, validation("slug is required")
		}
		if slug != e.Slug {
			// перепроверка уникальности против всех остальных записей
			if _, err := s.entries.GetBySlug(ctx, slug); err == nil {
				return nil, ErrSlugTaken
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
		}
		e.Slug = slug
	}
	if in.Description != nil {
		e.Description = strings.TrimSpace(*in.Description)
	}
	if in.Email != nil {
		e.Email = strings.TrimSpace(*in.Email)
	}
	if in.Password != nil {
		e.Password = *in.Password
	}
	if in.Cookies != nil {
		e.Cookies = *in.Cookies
	}
	if in.OTPWebpage != nil {
		e.OTPWebpage = strings.TrimSpace(*in.OTPWebpage)
	}
	if in.IsPublic != nil {
		e.IsPublic = *in.IsPublic
	}

	if !e.HasSecret() {
		return nil, ErrNoSecret
	}
	if err := validateOTPWebpage(e.OTPWebpage); err != nil {
		return nil, err
	}

	if err := s.entries.Save(ctx, e); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}
	return e, nil
}

// Delete удаляет запись по id.
func (s *EntryService) Delete(ctx context.Context, id string) error {
	found, err := s.entries.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return nil
}
