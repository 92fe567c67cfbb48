package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// TelegramLogin is the payload posted by the Telegram login widget.
type TelegramLogin struct {
	ID        int64  `json:"id" binding:"required"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	PhotoURL  string `json:"photo_url"`
	AuthDate  int64  `json:"auth_date" binding:"required"`
	Hash      string `json:"hash" binding:"required"`
}

// SignTelegramLogin computes the widget digest for a payload: the sorted
// data-check-string signed with SHA256(botToken) as HMAC key. Exported so
// tests and local tooling can forge valid dev payloads.
func SignTelegramLogin(botToken string, login TelegramLogin) string {
	values := map[string]string{
		"auth_date": fmt.Sprintf("%d", login.AuthDate),
		"id":        fmt.Sprintf("%d", login.ID),
	}
	if login.Username != "" {
		values["username"] = login.Username
	}
	if login.FirstName != "" {
		values["first_name"] = login.FirstName
	}
	if login.LastName != "" {
		values["last_name"] = login.LastName
	}
	if login.PhotoURL != "" {
		values["photo_url"] = login.PhotoURL
	}

	pairs := make([]string, 0, len(values))
	for k, v := range values {
		pairs = append(pairs, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(pairs)
	dataCheckString := strings.Join(pairs, "\n")

	digest := sha256.Sum256([]byte(botToken))
	h := hmac.New(sha256.New, digest[:])
	h.Write([]byte(dataCheckString))
	return hex.EncodeToString(h.Sum(nil))
}

// VerifyTelegramLogin checks the widget HMAC with a constant-time comparison
// against the provided hex digest.
func VerifyTelegramLogin(botToken string, login TelegramLogin) bool {
	if botToken == "" {
		return false
	}

	expected, err := hex.DecodeString(SignTelegramLogin(botToken, login))
	if err != nil {
		return false
	}
	provided, err := hex.DecodeString(strings.TrimSpace(login.Hash))
	if err != nil {
		return false
	}
	if len(provided) != len(expected) {
		return false
	}
	return subtle.ConstantTimeCompare(expected, provided) == 1
}
