package account

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/stockpile/backend/internal/account"
	"github.com/stockpile/backend/internal/avatar"
	"github.com/stockpile/backend/internal/http/respond"
)

// maxAvatarMemory bounds the in-memory part of multipart parsing; larger
// uploads spill to temp files.
const maxAvatarMemory = 8 << 20

type Handler struct {
	svc     *account.Service
	avatars *avatar.Store
}

func NewHandler(svc *account.Service, avatars *avatar.Store) *Handler {
	return &Handler{svc: svc, avatars: avatars}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := account.ListFilter{
		Role:      q.Get("role"),
		Search:    q.Get("search"),
		SortBy:    q.Get("sort_by"),
		SortOrder: q.Get("sort_order"),
	}

	accounts, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(accounts))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid id")
		return
	}

	a, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			respond.Message(w, http.StatusNotFound, "Account not found")
			return
		}

		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, toResponse(a))
}

// saveUploadedAvatar stores the optional avatar part and returns the stored
// filename, empty when the request carries no avatar.
func (h *Handler) saveUploadedAvatar(r *http.Request) (string, error) {
	file, header, err := r.FormFile("avatar")
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}

	if err != nil {
		return "", err
	}
	defer file.Close()

	return h.avatars.Save(header.Filename, file)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxAvatarMemory); err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	avatarFile, err := h.saveUploadedAvatar(r)
	if err != nil {
		respond.Error(w, err)
		return
	}

	a, err := h.svc.Create(r.Context(), account.CreateParams{
		Name:       r.FormValue("name"),
		Email:      r.FormValue("email"),
		Role:       r.FormValue("role"),
		Password:   r.FormValue("password"),
		AvatarFile: avatarFile,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(a))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := r.ParseMultipartForm(maxAvatarMemory); err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	a, err := h.svc.Update(r.Context(), id, account.UpdateParams{
		Name:     r.FormValue("name"),
		Email:    r.FormValue("email"),
		Role:     r.FormValue("role"),
		Password: r.FormValue("password"),
	})
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			respond.Message(w, http.StatusNotFound, "Account not found")
			return
		}

		respond.Error(w, err)

		return
	}

	avatarFile, err := h.saveUploadedAvatar(r)
	if err != nil {
		respond.Error(w, err)
		return
	}

	if avatarFile != "" {
		if err := h.svc.SetAvatar(r.Context(), id, avatarFile); err != nil {
			respond.Error(w, err)
			return
		}

		a.AvatarFile = avatarFile
	}

	respond.JSON(w, http.StatusOK, toResponse(a))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, account.ErrNotFound) {
			respond.Message(w, http.StatusNotFound, "Account not found")
			return
		}

		respond.Error(w, err)

		return
	}

	w.WriteHeader(http.StatusResetContent)
}
