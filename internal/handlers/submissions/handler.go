package submissions

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"gitlab.com/amsys-2025.net/internal/core/ports/primary"
	submissionsvc "gitlab.com/amsys-2025.net/internal/core/services/submission"
	"gitlab.com/amsys-2025.net/internal/handlers"
	"gitlab.com/amsys-2025.net/internal/handlers/response"
	"gitlab.com/amsys-2025.net/internal/static/errs"
)

// SubmissionHandler handles submission API requests
type SubmissionHandler struct {
	submissionService submissionsvc.ISubmissionService
	logger            primary.Logger
}

func NewSubmissionHandler(submissionService submissionsvc.ISubmissionService, logger primary.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: submissionService,
		logger:            logger,
	}
}

// RegisterRoutes registers the API routes for SubmissionHandler
func (h *SubmissionHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/submissions/my-submissions", h.GetMine).Methods("GET")
	router.HandleFunc("/submissions", h.Submit).Methods("POST")
	router.HandleFunc("/submissions", h.GetAll).Methods("GET")
	router.HandleFunc("/submissions/{id}/confirm", h.Confirm).Methods("PATCH")
	router.HandleFunc("/submissions/assignment/{assignmentId}", h.GetByAssignment).Methods("GET")
}

// Submit creates an unconfirmed submission for a group or the caller
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	principal, ok := handlers.PrincipalFrom(r.Context())
	if !ok {
		response.WriteError(w, errs.TokenMissing)
		return
	}

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, errs.MissingFields)
		return
	}
	if err := handlers.ValidateRequest(req); err != nil {
		response.WriteError(w, err)
		return
	}

	assignmentID, err := uuid.Parse(req.AssignmentID)
	if err != nil {
		response.WriteError(w, errs.New(errs.KindValidation, "invalid assignmentId"))
		return
	}
	var groupID *uuid.UUID
	if req.GroupID != nil {
		parsed, err := uuid.Parse(*req.GroupID)
		if err != nil {
			response.WriteError(w, errs.New(errs.KindValidation, "invalid groupId"))
			return
		}
		groupID = &parsed
	}

	submission, err := h.submissionService.Submit(r.Context(), principal, assignmentID, groupID)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusCreated,
		"Assignment submitted successfully. Please confirm submission.", submission)
}

// Confirm marks a submission confirmed, once
func (h *SubmissionHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	principal, ok := handlers.PrincipalFrom(r.Context())
	if !ok {
		response.WriteError(w, errs.TokenMissing)
		return
	}

	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		response.WriteError(w, errs.New(errs.KindValidation, "invalid id"))
		return
	}

	submission, err := h.submissionService.Confirm(r.Context(), principal, id)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, "Submission confirmed successfully", submission)
}

// GetAll returns every submission, professors only
func (h *SubmissionHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	principal, ok := handlers.PrincipalFrom(r.Context())
	if !ok {
		response.WriteError(w, errs.TokenMissing)
		return
	}

	submissions, err := h.submissionService.List(r.Context(), principal)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteList(w, "Submissions fetched successfully", submissions, len(submissions))
}

// GetByAssignment returns an assignment's submissions for its creator
func (h *SubmissionHandler) GetByAssignment(w http.ResponseWriter, r *http.Request) {
	principal, ok := handlers.PrincipalFrom(r.Context())
	if !ok {
		response.WriteError(w, errs.TokenMissing)
		return
	}

	vars := mux.Vars(r)
	assignmentID, err := uuid.Parse(vars["assignmentId"])
	if err != nil {
		response.WriteError(w, errs.New(errs.KindValidation, "invalid assignmentId"))
		return
	}

	submissions, err := h.submissionService.ListForAssignment(r.Context(), principal, assignmentID)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteList(w, "Submissions fetched successfully", submissions, len(submissions))
}

// GetMine returns the caller's own and group submissions
func (h *SubmissionHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	principal, ok := handlers.PrincipalFrom(r.Context())
	if !ok {
		response.WriteError(w, errs.TokenMissing)
		return
	}

	submissions, err := h.submissionService.ListMine(r.Context(), principal)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteList(w, "Submissions fetched successfully", submissions, len(submissions))
}
