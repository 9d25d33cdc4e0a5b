package api

import (
	"net/http"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *handler) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.auth.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, envelope{Code: "Created", Data: user})
}

func (h *handler) signIn(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	resp, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{Code: "Authorized", Data: map[string]any{
		"token":     resp.Token,
		"expiresAt": resp.ExpiresAt,
	}})
}

func (h *handler) getMe(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.GetUser(r.Context(), userID(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{Code: "Ok", Data: user})
}

// deleteMe removes the caller's account. The store drops their boxes with it;
// the cached copies are evicted afterwards.
func (h *handler) deleteMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := userID(r)

	boxes, err := h.boxes.ListBoxes(ctx, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.auth.DeleteUser(ctx, id); err != nil {
		h.writeError(w, r, err)
		return
	}
	for _, box := range boxes {
		h.boxes.Evict(ctx, box.ID)
	}

	writeJSON(w, http.StatusOK, envelope{Code: "Ok", Message: "user deleted", Data: map[string]int{"boxes": len(boxes)}})
}
