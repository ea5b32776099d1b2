package handlers

import (
	"net/http"

	"divvy/internal/auth"
	"divvy/internal/middleware"
	"divvy/internal/service"
)

// GroupHandler owns the group CRUD and membership endpoints.
type GroupHandler struct {
	groups     *service.GroupService
	jwtManager *auth.JWTManager
}

// NewGroupHandler constructs the handler.
func NewGroupHandler(groups *service.GroupService, jwtManager *auth.JWTManager) *GroupHandler {
	return &GroupHandler{groups: groups, jwtManager: jwtManager}
}

// Register attaches the group routes to the mux. All routes require auth.
func (h *GroupHandler) Register(mux *http.ServeMux) {
	protect := func(fn http.HandlerFunc) http.Handler {
		return middleware.RequireAuth(h.jwtManager, fn)
	}
	mux.Handle("POST /groups", protect(h.handleCreate))
	mux.Handle("GET /groups", protect(h.handleList))
	mux.Handle("GET /groups/{id}", protect(h.handleGet))
	mux.Handle("POST /groups/{groupId}/users", protect(h.handleAddMember))
}

type createGroupRequest struct {
	Name string `json:"name"`
}

func (h *GroupHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	group, err := h.groups.CreateGroup(r.Context(), middleware.GetUserID(r.Context()), req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, group)
}

func (h *GroupHandler) handleList(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groups.ListGroups(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, groups)
}

func (h *GroupHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	group, err := h.groups.GetGroup(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, group)
}

type addMemberRequest struct {
	Email string `json:"email"`
}

func (h *GroupHandler) handleAddMember(w http.ResponseWriter, r *http.Request) {
	var req addMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "Please add an email")
		return
	}

	group, err := h.groups.AddMember(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("groupId"), req.Email)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, group)
}
