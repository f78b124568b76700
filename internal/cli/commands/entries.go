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

type entriesCmd struct{}

func (entriesCmd) Name() string        { return "entries" }
func (entriesCmd) Description() string { return "Список доступных записей (по видимости)" }
func (entriesCmd) Usage() string       { return "entries" }

// entryDTO — запись в ответе сервера.
type entryDTO struct {
	ID          string `json:"id"`
	WebsiteName string `json:"website_name"`
	WebsiteURL  string `json:"website_url"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Cookies     string `json:"cookies"`
	OTPWebpage  string `json:"otp_webpage"`
	IsPublic    bool   `json:"is_public"`
	UpdatedAt   string `json:"updated_at"`
}

func (entriesCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}

	token, err := cliauth.LoadToken()
	if err != nil {
		return fmt.Errorf("not logged in: %w", err)
	}

	endpoint := strings.TrimRight(cfg.ServerURL, "/") + "/api/entries"
	resp, body, err := api.GetJSON(endpoint, token)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("session expired, login again")
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server status %d: %s", resp.StatusCode, api.ErrorMessage(body))
	}

	var payload struct {
		Entries []entryDTO `json:"entries"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	if len(payload.Entries) == 0 {
		fmt.Fprintln(Out, "No entries")
		return nil
	}
	for _, e := range payload.Entries {
		vis := "private"
		if e.IsPublic {
			vis = "public"
		}
		fmt.Fprintf(Out, "%-36s  %-20s  %-16s  %s\n", e.ID, e.WebsiteName, e.Slug, vis)
	}
	return nil
}

func init() { RegisterCmd(entriesCmd{}) }
