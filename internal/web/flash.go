package web

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

// Flash is a severity-tagged notice surfaced on the next rendered page.
type Flash struct {
	Severity string `json:"severity"`
	Text     string `json:"text"`
}

// Flash severities.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

const flashCookie = "flash"

// addFlash queues a flash message in the flash cookie. Messages already
// pending on the request are preserved in order.
func addFlash(w http.ResponseWriter, r *http.Request, severity, text string) {
	messages := append(readFlash(r), Flash{Severity: severity, Text: text})

	data, err := json.Marshal(messages)
	if err != nil {
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.RawURLEncoding.EncodeToString(data),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash returns the pending flash messages and clears the cookie.
func popFlash(w http.ResponseWriter, r *http.Request) []Flash {
	messages := readFlash(r)
	if messages == nil {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return messages
}

func readFlash(r *http.Request) []Flash {
	cookie, err := r.Cookie(flashCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}

	data, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}

	var messages []Flash
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil
	}
	return messages
}
