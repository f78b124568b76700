package commands

import (
	"context"
	"fmt"
	"strings"

	"CookieVault/internal/cli/api"
	cliauth "CookieVault/internal/cli/auth"
	"CookieVault/internal/config"
)

type logoutCmd struct{}

func (logoutCmd) Name() string        { return "logout" }
func (logoutCmd) Description() string { return "Сбросить сессию на сервере и удалить токен" }
func (logoutCmd) Usage() string       { return "logout" }

func (logoutCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}

	token, _ := cliauth.LoadToken()
	if token != "" {
		endpoint := strings.TrimRight(cfg.ServerURL, "/") + "/api/auth/logout"
		if resp, _, err := api.PostJSON(endpoint, struct{}{}, token); err == nil {
			resp.Body.Close()
		}
		// локальный токен удаляем в любом случае
	}

	if err := cliauth.ClearToken(); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Logged out")
	return nil
}

func init() { RegisterCmd(logoutCmd{}) }
