package model

import "time"

// Role — дискриминант роли аккаунта. Анонимный посетитель роли не имеет:
// это отсутствие сессии, а не запись в БД.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// IsAdmin сообщает, даёт ли роль административные права.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// Account — единая таблица аккаунтов (пользователи и админы) с ролью-дискриминантом.
// Уникальный индекс по нормализованному email — единственный авторитетный
// механизм запрета одного email сразу в двух ролях.
type Account struct {
	ID    int64  `gorm:"primaryKey" json:"id"`
	Email string `gorm:"uniqueIndex;not null" json:"email"`

	// Name пустое для админских аккаунтов.
	Name string `json:"name,omitempty"`

	// PasswordHash никогда не сериализуется наружу.
	PasswordHash string `gorm:"not null" json:"-"`

	Role Role `gorm:"not null;default:user" json:"role"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
