package users

import (
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/amsys-2025.net/internal/core/ports/primary"
	usersvc "gitlab.com/amsys-2025.net/internal/core/services/user"
	"gitlab.com/amsys-2025.net/internal/handlers"
	"gitlab.com/amsys-2025.net/internal/handlers/response"
	"gitlab.com/amsys-2025.net/internal/static/errs"
)

// UserHandler handles user API requests
type UserHandler struct {
	userService usersvc.IUserService
	logger      primary.Logger
}

func NewUserHandler(userService usersvc.IUserService, logger primary.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// RegisterRoutes registers the API routes for UserHandler
func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/users/me", h.GetMe).Methods("GET")
	router.HandleFunc("/users/students", h.GetAllStudents).Methods("GET")
}

// GetMe returns the caller's profile
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	principal, ok := handlers.PrincipalFrom(r.Context())
	if !ok {
		response.WriteError(w, errs.TokenMissing)
		return
	}

	user, err := h.userService.Me(r.Context(), principal)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, "User found", user)
}

// GetAllStudents returns every student, for group building
func (h *UserHandler) GetAllStudents(w http.ResponseWriter, r *http.Request) {
	students, err := h.userService.ListStudents(r.Context())
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteList(w, "Students found", students, len(students))
}
