package web

import "net/http"

// themes are the built-in stylesheet variants; the first is the fallback.
var themes = []string{"default-theme", "minimalist-theme", "hacker-theme"}

const themeCookie = "quizd_theme"

func knownTheme(name string) bool {
	for _, t := range themes {
		if t == name {
			return true
		}
	}
	return false
}

func setThemeCookie(w http.ResponseWriter, theme string) {
	http.SetCookie(w, &http.Cookie{
		Name:     themeCookie,
		Value:    theme,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	})
}

// theme resolves the request's theme: cookie choice if valid, else the
// configured default.
func (h *Handler) theme(r *http.Request) string {
	if ck, err := r.Cookie(themeCookie); err == nil && knownTheme(ck.Value) {
		return ck.Value
	}
	if knownTheme(h.opts.DefaultTheme) {
		return h.opts.DefaultTheme
	}
	return themes[0]
}
