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

type entryGetCmd struct{}

func (entryGetCmd) Name() string        { return "entry-get" }
func (entryGetCmd) Description() string { return "Показать запись по id" }
func (entryGetCmd) Usage() string       { return "entry-get <id>" }

func (entryGetCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	id := args[0]

	token, err := cliauth.LoadToken()
	if err != nil {
		return fmt.Errorf("not logged in: %w", err)
	}

	endpoint := strings.TrimRight(cfg.ServerURL, "/") + "/api/entries/" + id
	resp, body, err := api.GetJSON(endpoint, token)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return fmt.Errorf("session expired, login again")
	case http.StatusNotFound:
		return fmt.Errorf("entry not found")
	default:
		return fmt.Errorf("server status %d: %s", resp.StatusCode, api.ErrorMessage(body))
	}

	var payload struct {
		Entry entryDTO `json:"entry"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	e := payload.Entry

	fmt.Fprintf(Out, "id:          %s\n", e.ID)
	fmt.Fprintf(Out, "website:     %s\n", e.WebsiteName)
	fmt.Fprintf(Out, "url:         %s\n", e.WebsiteURL)
	fmt.Fprintf(Out, "slug:        %s\n", e.Slug)
	fmt.Fprintf(Out, "description: %s\n", e.Description)
	fmt.Fprintf(Out, "email:       %s\n", e.Email)
	fmt.Fprintf(Out, "password:    %s\n", e.Password)
	fmt.Fprintf(Out, "cookies:     %s\n", e.Cookies)
	fmt.Fprintf(Out, "otp page:    %s\n", e.OTPWebpage)
	fmt.Fprintf(Out, "public:      %t\n", e.IsPublic)
	return nil
}

func init() { RegisterCmd(entryGetCmd{}) }
