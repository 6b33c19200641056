package assignments

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"gitlab.com/amsys-2025.net/internal/core/ports/primary"
	"gitlab.com/amsys-2025.net/internal/core/services/analytics"
	assignmentsvc "gitlab.com/amsys-2025.net/internal/core/services/assignment"
	"gitlab.com/amsys-2025.net/internal/domain"
	"gitlab.com/amsys-2025.net/internal/handlers"
	"gitlab.com/amsys-2025.net/internal/handlers/response"
	"gitlab.com/amsys-2025.net/internal/static/errs"
)

// AssignmentHandler handles assignment API requests
type AssignmentHandler struct {
	assignmentService assignmentsvc.IAssignmentService
	analyticsService  analytics.IAnalyticsService
	logger            primary.Logger
}

func NewAssignmentHandler(
	assignmentService assignmentsvc.IAssignmentService,
	analyticsService analytics.IAnalyticsService,
	logger primary.Logger,
) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentService: assignmentService,
		analyticsService:  analyticsService,
		logger:            logger,
	}
}

// RegisterRoutes registers the API routes for AssignmentHandler. The
// analytics and mine routes are registered before {id} so mux does not
// swallow them as ids.
func (h *AssignmentHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/assignments/analytics", h.GetAnalytics).Methods("GET")
	router.HandleFunc("/assignments/mine", h.GetMine).Methods("GET")
	router.HandleFunc("/assignments", h.Create).Methods("POST")
	router.HandleFunc("/assignments", h.GetAll).Methods("GET")
	router.HandleFunc("/assignments/{id}", h.Get).Methods("GET")
	router.HandleFunc("/assignments/{id}", h.Update).Methods("PUT")
	router.HandleFunc("/assignments/{id}", h.Delete).Methods("DELETE")
}

// Create handles assignment creation requests
func (h *AssignmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := handlers.PrincipalFrom(r.Context())
	if !ok {
		response.WriteError(w, errs.TokenMissing)
		return
	}

	var req CreateAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, errs.MissingFields)
		return
	}
	if err := handlers.ValidateRequest(req); err != nil {
		response.WriteError(w, err)
		return
	}

	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		response.WriteError(w, errs.New(errs.KindValidation, "dueDate must be YYYY-MM-DD"))
		return
	}

	assignment, err := h.assignmentService.Create(r.Context(), principal, assignmentsvc.CreateInput{
		Title:        req.Title,
		Description:  req.Description,
		DueDate:      dueDate,
		ResourceLink: req.ResourceLink,
	})
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusCreated, "Assignment created successfully", assignment)
}

// GetAll returns every assignment with the caller's submitted flag
func (h *AssignmentHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	principal, ok := handlers.PrincipalFrom(r.Context())
	if !ok {
		response.WriteError(w, errs.TokenMissing)
		return
	}

	assignments, err := h.assignmentService.List(r.Context(), principal)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteList(w, "Assignments fetched successfully", assignments, len(assignments))
}

// GetMine returns the professor's own assignments
func (h *AssignmentHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	principal, ok := handlers.PrincipalFrom(r.Context())
	if !ok {
		response.WriteError(w, errs.TokenMissing)
		return
	}

	assignments, err := h.assignmentService.ListMine(r.Context(), principal)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteList(w, "Assignments fetched successfully", assignments, len(assignments))
}

// Get returns a single assignment
func (h *AssignmentHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	assignment, err := h.assignmentService.Get(r.Context(), principal, id)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, "Assignment fetched successfully", assignment)
}

// Update handles partial assignment updates by the creator
func (h *AssignmentHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var req UpdateAssignmentRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, errs.MissingFields)
		return
	}
	if err = handlers.ValidateRequest(req); err != nil {
		response.WriteError(w, err)
		return
	}

	patch := domain.AssignmentPatch{
		Title:        req.Title,
		Description:  req.Description,
		ResourceLink: req.ResourceLink,
	}
	if req.DueDate != nil {
		dueDate, err := time.Parse("2006-01-02", *req.DueDate)
		if err != nil {
			response.WriteError(w, errs.New(errs.KindValidation, "dueDate must be YYYY-MM-DD"))
			return
		}
		patch.DueDate = &dueDate
	}

	assignment, err := h.assignmentService.Update(r.Context(), principal, id, patch)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, "Assignment updated successfully", assignment)
}

// Delete removes an assignment owned by the caller
func (h *AssignmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err = h.assignmentService.Delete(r.Context(), principal, id); err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, "Assignment deleted successfully", nil)
}

// GetAnalytics returns the professor's submission rollup
func (h *AssignmentHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	principal, ok := handlers.PrincipalFrom(r.Context())
	if !ok {
		response.WriteError(w, errs.TokenMissing)
		return
	}

	result, err := h.analyticsService.ComputeForProfessor(r.Context(), principal)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, "Assignment analytics fetched successfully", result)
}

func pathID(r *http.Request, name string) (uuid.UUID, error) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars[name])
	if err != nil {
		return uuid.Nil, errs.New(errs.KindValidation, "invalid "+name)
	}
	return id, nil
}
