package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"CookieVault/internal/cli/api"
	cliauth "CookieVault/internal/cli/auth"
	"CookieVault/internal/config"
)

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Показать текущую сессию (email, роль, истечение)" }
func (statusCmd) Usage() string       { return "status" }

// sessionInfo — ответ GET /api/auth/session.
type sessionInfo struct {
	Email     string `json:"email"`
	Role      string `json:"role"`
	IssuedAt  string `json:"issued_at"`
	ExpiresAt string `json:"expires_at"`
}

// fetchSession запрашивает свежие клеймы сессии у сервера.
func fetchSession(serverURL, token string) (*sessionInfo, error) {
	endpoint := strings.TrimRight(serverURL, "/") + "/api/auth/session"
	resp, body, err := api.GetJSON(endpoint, token)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("session expired or not logged in")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server status %d: %s", resp.StatusCode, api.ErrorMessage(body))
	}
	var si sessionInfo
	if err := json.Unmarshal(body, &si); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &si, nil
}

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}

	token, err := cliauth.LoadToken()
	if err != nil {
		fmt.Fprintln(Out, "Status: anonymous")
		return nil
	}

	si, err := fetchSession(cfg.ServerURL, token)
	if err != nil {
		return err
	}

	fmt.Fprintf(Out, "Logged in: %s\n", si.Email)
	fmt.Fprintf(Out, "Role:      %s\n", si.Role)
	fmt.Fprintf(Out, "Issued:    %s\n", si.IssuedAt)
	fmt.Fprintf(Out, "Expires:   %s\n", si.ExpiresAt)
	return nil
}

func init() { RegisterCmd(statusCmd{}) }
