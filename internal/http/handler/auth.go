package handler

import (
	"net/http"

	"thisday/internal/auth"
)

// AuthHandler handles the post-verification login hook: identity itself is
// established by the external token issuer, so login here only mirrors the
// verified profile into the local users table.
type AuthHandler struct {
	Users *auth.UserSync
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	u := auth.UserFromClaims(claims)
	// Best effort: a stale profile copy must not block login.
	_ = h.Users.Sync(r.Context(), u)

	writeJSON(w, http.StatusOK, map[string]any{
		"id":        u.ID,
		"email":     u.Email,
		"name":      u.Name,
		"avatarUrl": u.AvatarURL,
	})
}
