package auth

import (
	"fmt"
	"time"
)

// Константы контракта обратного отсчёта: абсолютное время жизни сессии час,
// предупреждение за 5 минут до конца, перечитывание клеймов раз в 10 минут.
const (
	SessionTTL      = time.Hour
	WarnThreshold   = 5 * time.Minute
	RefreshInterval = 10 * time.Minute
)

// Countdown — отображаемое состояние обратного отсчёта сессии.
type Countdown struct {
	// Remaining — сколько осталось до истечения (0 после истечения).
	Remaining time.Duration
	// Warn — пора показывать предупреждение (осталось меньше порога).
	Warn bool
	// Expired — сессия истекла; предупреждение прячется.
	Expired bool
}

// CountdownState — чистая функция состояния отсчёта: пересчитывается на каждом
// тике (гранулярность не больше секунды) от введённого «сейчас», без настоящих
// таймеров внутри — так логика тестируется подставным временем.
func CountdownState(now, issuedAt time.Time, ttl, warnThreshold time.Duration) Countdown {
	remaining := issuedAt.Add(ttl).Sub(now)
	if remaining <= 0 {
		return Countdown{Expired: true}
	}
	return Countdown{
		Remaining: remaining,
		Warn:      remaining <= warnThreshold,
	}
}

// FormatRemaining форматирует остаток как M:SS для показа в предупреждении.
func FormatRemaining(d time.Duration) string {
	secs := int(d.Seconds())
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
