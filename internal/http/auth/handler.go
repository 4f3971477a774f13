package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stockpile/backend/internal/account"
	"github.com/stockpile/backend/internal/auth"
	"github.com/stockpile/backend/internal/avatar"
	"github.com/stockpile/backend/internal/http/respond"
)

const maxAvatarMemory = 8 << 20

type Handler struct {
	accounts *account.Service
	tokens   *auth.Service
	avatars  *avatar.Store
}

func NewHandler(accounts *account.Service, tokens *auth.Service, avatars *avatar.Store) *Handler {
	return &Handler{accounts: accounts, tokens: tokens, avatars: avatars}
}

// PublicRoutes are reachable without a token.
func (h *Handler) PublicRoutes(r chi.Router) {
	r.Post("/login", h.login)
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/me", h.me)
	r.Put("/me", h.updateMe)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	a, err := h.accounts.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, account.ErrInvalidCredentials) {
			respond.Message(w, http.StatusUnauthorized, "email or password is invalid")
			return
		}

		respond.Error(w, err)

		return
	}

	token, err := h.tokens.GenerateToken(a.ID, a.Role)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, loginResponse{
		Token:   token,
		Account: toAccountResponse(a),
	})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		respond.Message(w, http.StatusUnauthorized, "authentication required")
		return
	}

	a, err := h.accounts.Get(r.Context(), actor.ID)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			respond.Message(w, http.StatusNotFound, "Account not found")
			return
		}

		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, toAccountResponse(a))
}

// updateMe lets the authenticated account change its own name, email, and
// avatar. Role and password changes stay admin-only through the accounts
// endpoints.
func (h *Handler) updateMe(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		respond.Message(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := r.ParseMultipartForm(maxAvatarMemory); err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	a, err := h.accounts.UpdateProfile(r.Context(), actor.ID, r.FormValue("name"), r.FormValue("email"))
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			respond.Message(w, http.StatusNotFound, "Account not found")
			return
		}

		respond.Error(w, err)

		return
	}

	file, header, err := r.FormFile("avatar")
	if err == nil {
		defer file.Close()

		name, err := h.avatars.Save(header.Filename, file)
		if err != nil {
			respond.Error(w, err)
			return
		}

		if err := h.accounts.SetAvatar(r.Context(), actor.ID, name); err != nil {
			respond.Error(w, err)
			return
		}

		a.AvatarFile = name
	} else if !errors.Is(err, http.ErrMissingFile) {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toAccountResponse(a))
}
