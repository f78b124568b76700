package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"CookieVault/internal/cli/api"
	cliauth "CookieVault/internal/cli/auth"
	"CookieVault/internal/config"
)

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Войти на сервер и сохранить cookie сессии" }
func (loginCmd) Usage() string       { return "login <email> <password>" }

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Email    string `json:"email"`
	Role     string `json:"role"`
	Redirect string `json:"redirect"`
}

func (loginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	email, password := args[0], args[1]

	endpoint := strings.TrimRight(cfg.ServerURL, "/") + "/api/auth/login"
	resp, body, err := api.PostJSON(endpoint, loginRequest{Email: email, Password: password}, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// сервер намеренно не различает «нет аккаунта» и «неверный пароль»
		return errors.New("invalid email or password")
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server error: %s", api.ErrorMessage(body))
	}

	if err := api.PersistAuthFromResponse(resp); err != nil {
		return fmt.Errorf("saving auth: %w", err)
	}
	if err := cliauth.SaveLastLogin(email); err != nil {
		return fmt.Errorf("saving login context: %w", err)
	}

	var lr loginResponse
	if err := json.Unmarshal(body, &lr); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	fmt.Fprintf(Out, "Logged in as %s (%s), continue at %s\n", lr.Email, lr.Role, lr.Redirect)
	return nil
}

func init() { RegisterCmd(loginCmd{}) }
