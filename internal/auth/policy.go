// Package auth содержит чистую логику авторизации и жизненного цикла сессии:
// решение о доступе по (роль, операция, видимость) и расчёт состояния
// обратного отсчёта сессии. Никакого I/O — всё проверяется на каждом запросе
// по свежим данным из сессии.
package auth

import "CookieVault/internal/model"

// Operation — логическая операция API, участвующая в решении о доступе.
type Operation string

const (
	OpSeedAdmin    Operation = "seed_admin"
	OpAuthenticate Operation = "authenticate"
	OpCreateUser   Operation = "create_user"
	OpListUsers    Operation = "list_users"
	OpListEntries  Operation = "list_entries"
	OpReadEntry    Operation = "read_entry"
	OpCreateEntry  Operation = "create_entry"
	OpUpdateEntry  Operation = "update_entry"
	OpDeleteEntry  Operation = "delete_entry"
)

// Visibility — видимость ресурса, к которому применяется операция.
type Visibility string

const (
	// VisibilityAny используется для операций, не привязанных к конкретной записи.
	VisibilityAny     Visibility = "any"
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// VisibilityOf возвращает видимость конкретной записи.
func VisibilityOf(e *model.Entry) Visibility {
	if e.IsPublic {
		return VisibilityPublic
	}
	return VisibilityPrivate
}

// DenyReason — причина отказа; определяет HTTP-статус на границе хендлера.
type DenyReason string

const (
	DenyUnauthenticated DenyReason = "unauthenticated"
	DenyForbidden       DenyReason = "forbidden"
)

// Decision — результат проверки доступа.
type Decision struct {
	Allow  bool
	Reason DenyReason // заполняется только при отказе
}

var allow = Decision{Allow: true}

func deny(reason DenyReason) Decision {
	return Decision{Reason: reason}
}

// adminOnly — операции, требующие роли admin/superadmin.
var adminOnly = map[Operation]bool{
	OpCreateUser:  true,
	OpListUsers:   true,
	OpCreateEntry: true,
	OpUpdateEntry: true,
	OpDeleteEntry: true,
}

// Decide — чистая функция авторизации. Правила проверяются строго по порядку,
// первое совпавшее побеждает:
//  1. операции без аутентификации (seed охраняется отдельно фактом отсутствия админа);
//  2. нет актора — Unauthenticated;
//  3. административная операция без админской роли — Forbidden;
//  4. чтение приватной записи без админской роли — Forbidden
//     (списки фильтруются до сериализации, точечное чтение прячется за 404);
//  5. иначе — разрешено.
//
// role == "" означает анонимного посетителя (сессии нет или она истекла).
func Decide(role model.Role, op Operation, vis Visibility) Decision {
	if op == OpSeedAdmin || op == OpAuthenticate {
		return allow
	}
	if role == "" {
		return deny(DenyUnauthenticated)
	}
	if adminOnly[op] && !role.IsAdmin() {
		return deny(DenyForbidden)
	}
	if op == OpReadEntry && vis == VisibilityPrivate && !role.IsAdmin() {
		return deny(DenyForbidden)
	}
	return allow
}
