package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type contextKey string

const ActiveQuoteKey contextKey = "activeQuote"

// ActiveQuote is the draft currently being edited, carried through the
// request context so any handler can resume it.
type ActiveQuote struct {
	ID         string
	ClientName string
}

// GetActiveQuote extracts the active quote from the request context.
func GetActiveQuote(r *http.Request) *ActiveQuote {
	if val, ok := r.Context().Value(ActiveQuoteKey).(*ActiveQuote); ok {
		return val
	}
	return nil
}

// ActiveQuoteMiddleware reads the "active_quote" cookie, loads the quote
// record and stores it in the request context. A stale cookie pointing at a
// deleted quote is cleared.
func ActiveQuoteMiddleware(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var active *ActiveQuote

		cookie, err := e.Request.Cookie("active_quote")
		if err == nil && cookie.Value != "" {
			rec, err := app.FindRecordById("quotes", cookie.Value)
			if err == nil {
				active = &ActiveQuote{
					ID:         rec.Id,
					ClientName: rec.GetString("client_name"),
				}
			} else {
				log.Printf("middleware: active quote %s not found, clearing cookie", cookie.Value)
				http.SetCookie(e.Response, &http.Cookie{
					Name:   "active_quote",
					Value:  "",
					Path:   "/",
					MaxAge: -1,
				})
			}
		}

		ctx := context.WithValue(e.Request.Context(), ActiveQuoteKey, active)
		e.Request = e.Request.WithContext(ctx)

		return e.Next()
	}
}

// setActiveQuoteCookie marks the given quote as the one being edited.
func setActiveQuoteCookie(e *core.RequestEvent, quoteID string) {
	http.SetCookie(e.Response, &http.Cookie{
		Name:     "active_quote",
		Value:    quoteID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
