package server

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

const flashCookie = "mdpdf_flash"

// Flash categories.
const (
	flashSuccess = "success"
	flashError   = "error"
)

// Flash messages shown on the upload form.
const (
	msgNoFile      = "You must upload a file."
	msgInvalidType = "Invalid file type. Please upload a Markdown file."
	msgTooLarge    = "File is too large."
	msgConverted   = "Your file has been converted successfully!"
	msgFailed      = "Conversion failed. Please try again."
)

type flashKey struct{}

// flashMessage is a one-time notification shown on the next page view.
type flashMessage struct {
	Category string
	Message  string
}

// flashMiddleware moves a pending flash from its cookie into the request
// context and clears the cookie.
func flashMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(flashCookie)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		http.SetCookie(w, &http.Cookie{Name: flashCookie, Path: "/", MaxAge: -1})

		raw, _ := url.QueryUnescape(cookie.Value)
		flash := &flashMessage{Category: flashError, Message: raw}
		if after, ok := strings.CutPrefix(raw, flashSuccess+":"); ok {
			flash.Category, flash.Message = flashSuccess, after
		} else if after, ok := strings.CutPrefix(raw, flashError+":"); ok {
			flash.Message = after
		}

		ctx := context.WithValue(r.Context(), flashKey{}, flash)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// setFlash stores a message for the next request.
func setFlash(w http.ResponseWriter, category, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(category + ":" + message),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func getFlash(ctx context.Context) *flashMessage {
	f, _ := ctx.Value(flashKey{}).(*flashMessage)
	return f
}

// redirectWithFlash sends the browser back to the form with an error.
func redirectWithFlash(w http.ResponseWriter, r *http.Request, message string) {
	setFlash(w, flashError, message)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
