package groups

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"gitlab.com/amsys-2025.net/internal/core/ports/primary"
	groupsvc "gitlab.com/amsys-2025.net/internal/core/services/group"
	"gitlab.com/amsys-2025.net/internal/handlers"
	"gitlab.com/amsys-2025.net/internal/handlers/response"
	"gitlab.com/amsys-2025.net/internal/static/errs"
)

// GroupHandler handles group API requests
type GroupHandler struct {
	groupService groupsvc.IGroupService
	logger       primary.Logger
}

func NewGroupHandler(groupService groupsvc.IGroupService, logger primary.Logger) *GroupHandler {
	return &GroupHandler{
		groupService: groupService,
		logger:       logger,
	}
}

// RegisterRoutes registers the API routes for GroupHandler
func (h *GroupHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/groups/my-groups", h.GetMine).Methods("GET")
	router.HandleFunc("/groups", h.Create).Methods("POST")
	router.HandleFunc("/groups", h.GetAll).Methods("GET")
	router.HandleFunc("/groups/{id}", h.Get).Methods("GET")
	router.HandleFunc("/groups/{id}", h.Delete).Methods("DELETE")
	router.HandleFunc("/groups/{id}/members", h.AddMember).Methods("POST")
	router.HandleFunc("/groups/{id}/members/{memberId}", h.RemoveMember).Methods("DELETE")
}

// Create handles group creation requests
func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := handlers.PrincipalFrom(r.Context())
	if !ok {
		response.WriteError(w, errs.TokenMissing)
		return
	}

	var req CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, errs.MissingFields)
		return
	}
	if err := handlers.ValidateRequest(req); err != nil {
		response.WriteError(w, err)
		return
	}

	group, err := h.groupService.Create(r.Context(), principal, req.Name)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusCreated, "Group created successfully", group)
}

// GetAll returns every group with its roster
func (h *GroupHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groupService.List(r.Context())
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteList(w, "Groups fetched successfully", groups, len(groups))
}

// GetMine returns the groups the caller belongs to
func (h *GroupHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	principal, ok := handlers.PrincipalFrom(r.Context())
	if !ok {
		response.WriteError(w, errs.TokenMissing)
		return
	}

	groups, err := h.groupService.ListMine(r.Context(), principal)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteList(w, "Groups fetched successfully", groups, len(groups))
}

// Get returns a single group with its roster
func (h *GroupHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.WriteError(w, err)
		return
	}

	group, err := h.groupService.Get(r.Context(), id)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, "Group fetched successfully", group)
}

// AddMember adds a student to the group by email, creator only
func (h *GroupHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	principal, ok := handlers.PrincipalFrom(r.Context())
	if !ok {
		response.WriteError(w, errs.TokenMissing)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		response.WriteError(w, err)
		return
	}

	var req AddMemberRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, errs.MissingFields)
		return
	}
	if err = handlers.ValidateRequest(req); err != nil {
		response.WriteError(w, err)
		return
	}

	group, err := h.groupService.AddMember(r.Context(), principal, id, req.Email)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, "Member added successfully", group)
}

// RemoveMember removes a member from the group, creator only
func (h *GroupHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	principal, ok := handlers.PrincipalFrom(r.Context())
	if !ok {
		response.WriteError(w, errs.TokenMissing)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		response.WriteError(w, err)
		return
	}
	memberID, err := pathID(r, "memberId")
	if err != nil {
		response.WriteError(w, err)
		return
	}

	if err = h.groupService.RemoveMember(r.Context(), principal, id, memberID); err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, "Member removed successfully", nil)
}

// Delete removes the group, creator only
func (h *GroupHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := handlers.PrincipalFrom(r.Context())
	if !ok {
		response.WriteError(w, errs.TokenMissing)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		response.WriteError(w, err)
		return
	}

	if err = h.groupService.Delete(r.Context(), principal, id); err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, "Group deleted successfully", nil)
}

func pathID(r *http.Request, name string) (uuid.UUID, error) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars[name])
	if err != nil {
		return uuid.Nil, errs.New(errs.KindValidation, "invalid "+name)
	}
	return id, nil
}
