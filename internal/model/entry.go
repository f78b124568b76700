package model

import "time"

// Entry — запись с учётными данными сайта: связка идентичности сайта,
// секретных материалов и флага видимости.
type Entry struct {
	ID string `gorm:"primaryKey;type:uuid" json:"id"`

	WebsiteName string `gorm:"not null" json:"website_name"`
	WebsiteURL  string `json:"website_url,omitempty"`

	// Slug — человекочитаемый уникальный идентификатор записи.
	Slug string `gorm:"uniqueIndex;not null" json:"slug"`

	Description string `json:"description,omitempty"`

	// Секретные материалы. Инвариант: хотя бы одно из трёх полей непустое.
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
	Cookies  string `json:"cookies,omitempty"`

	// OTPWebpage — URL сторонней страницы с одноразовым кодом; сервер
	// содержимое не разбирает, только отдаёт ссылку.
	OTPWebpage string `json:"otp_webpage,omitempty"`

	IsPublic bool `gorm:"not null;default:false;index" json:"is_public"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// HasSecret проверяет инвариант «хотя бы один секрет»: email, password или cookies.
func (e *Entry) HasSecret() bool {
	return e.Email != "" || e.Password != "" || e.Cookies != ""
}
