package commands

import (
	"context"
	"fmt"
	"time"

	"CookieVault/internal/auth"
	cliauth "CookieVault/internal/cli/auth"
	"CookieVault/internal/config"
)

type watchCmd struct{}

func (watchCmd) Name() string { return "watch" }
func (watchCmd) Description() string {
	return "Следить за сессией: предупреждение за 5 минут до истечения"
}
func (watchCmd) Usage() string { return "watch" }

// Run держит локальный обратный отсчёт сессии: состояние пересчитывается
// каждую секунду чистой функцией от (now, issued_at), клеймы перечитываются
// с сервера раз в 10 минут (смена роли не сдвигает истечение). Отсчёт — чисто
// клиентский и ни на что на сервере не влияет.
func (watchCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}

	token, err := cliauth.LoadToken()
	if err != nil {
		return fmt.Errorf("not logged in: %w", err)
	}

	si, err := fetchSession(cfg.ServerURL, token)
	if err != nil {
		return err
	}
	issuedAt, err := time.Parse(time.RFC3339, si.IssuedAt)
	if err != nil {
		return fmt.Errorf("bad issued_at %q: %w", si.IssuedAt, err)
	}
	expiresAt, err := time.Parse(time.RFC3339, si.ExpiresAt)
	if err != nil {
		return fmt.Errorf("bad expires_at %q: %w", si.ExpiresAt, err)
	}
	ttl := expiresAt.Sub(issuedAt)

	fmt.Fprintf(Out, "Watching session of %s (%s), expires %s\n", si.Email, si.Role, si.ExpiresAt)

	tick := time.NewTicker(time.Second)
	defer tick.Stop()
	refresh := time.NewTicker(auth.RefreshInterval)
	defer refresh.Stop()

	warned := false
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-refresh.C:
			// перечитываем клеймы, не трогая issued_at/expires_at
			fresh, err := fetchSession(cfg.ServerURL, token)
			if err != nil {
				fmt.Fprintf(Out, "Session refresh failed: %v\n", err)
				continue
			}
			if fresh.Role != si.Role {
				fmt.Fprintf(Out, "Role changed: %s -> %s\n", si.Role, fresh.Role)
			}
			si = fresh

		case now := <-tick.C:
			st := auth.CountdownState(now, issuedAt, ttl, auth.WarnThreshold)
			if st.Expired {
				fmt.Fprintln(Out, "Session expired. Login again.")
				return nil
			}
			if st.Warn {
				if !warned {
					fmt.Fprintln(Out, "Session expiring soon! Save your work.")
					warned = true
				}
				fmt.Fprintf(Out, "Session expires in %s\r", auth.FormatRemaining(st.Remaining))
			}
		}
	}
}

func init() { RegisterCmd(watchCmd{}) }
