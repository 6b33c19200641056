package auth

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"gitlab.com/amsys-2025.net/internal/config"
	"gitlab.com/amsys-2025.net/internal/core/ports/primary"
	"gitlab.com/amsys-2025.net/internal/core/ports/secondary"
	authsvc "gitlab.com/amsys-2025.net/internal/core/services/auth"
	"gitlab.com/amsys-2025.net/internal/domain"
	"gitlab.com/amsys-2025.net/internal/handlers"
	"gitlab.com/amsys-2025.net/internal/handlers/response"
	"gitlab.com/amsys-2025.net/internal/static/errs"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

type ServiceDependencies struct {
	LocalAuthService  authsvc.ILocalAuthService
	GoogleAuthService authsvc.IGoogleAuthService
	TokenService      primary.TokenService
	TokenStore        secondary.TokenStorePort
}

// googleUser decodes the Google userinfo API response
type googleUser struct {
	ID    string `json:"sub"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Handler struct {
	deps        *ServiceDependencies
	oauthConfig *oauth2.Config
	logger      primary.Logger
}

func NewHandler(ggCfg *config.GGAuthConfig, logger primary.Logger) *Handler {
	return &Handler{
		oauthConfig: &oauth2.Config{
			ClientID:     ggCfg.ClientID,
			ClientSecret: ggCfg.ClientSecret,
			RedirectURL:  ggCfg.RedirectURL,
			Scopes:       []string{"profile", "email"},
			Endpoint:     google.Endpoint,
		},
		logger: logger,
	}
}

// RegisterRoutes registers the public auth routes. Logout needs the
// authenticated router since it revokes the presented token.
func (h *Handler) RegisterRoutes(router *mux.Router, authed *mux.Router, svcDep *ServiceDependencies) {
	h.deps = svcDep
	router.HandleFunc("/auth/register", h.Register).Methods("POST")
	router.HandleFunc("/auth/login", h.Login).Methods("POST")
	router.HandleFunc("/auth/google", h.GoogleLogin).Methods("GET")
	router.HandleFunc("/auth/google/callback", h.GoogleCallback).Methods("GET")
	authed.HandleFunc("/auth/logout", h.Logout).Methods("POST")
}

// Register handles local account registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, errs.MissingFields)
		return
	}
	if err := handlers.ValidateRequest(req); err != nil {
		response.WriteError(w, err)
		return
	}

	user, err := h.deps.LocalAuthService.Register(r.Context(), authsvc.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusCreated, "User created successfully", user)
}

// Login handles local credential login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, errs.MissingFields)
		return
	}
	if err := handlers.ValidateRequest(req); err != nil {
		response.WriteError(w, err)
		return
	}

	result, err := h.deps.LocalAuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, "User logged in successfully", result)
}

// Logout revokes the presented token until its natural expiry.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	principal, ok := handlers.PrincipalFrom(r.Context())
	if !ok {
		response.WriteError(w, errs.TokenMissing)
		return
	}
	token, _ := handlers.BearerTokenFrom(r.Context())

	expiry, err := h.deps.TokenService.DecodeTokenExpiry(r.Context(), token)
	if err != nil {
		response.WriteError(w, err)
		return
	}
	if err = h.deps.TokenStore.Revoke(r.Context(), principal.TokenID, time.Until(expiry)); err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, "Logged out successfully", nil)
}

// GoogleLogin redirects the user to the Google OAuth2 consent screen
func (h *Handler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	url := h.oauthConfig.AuthCodeURL("randomstate")
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// GoogleCallback exchanges the authorization code, fetches the profile
// and logs the account in
func (h *Handler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	code := r.URL.Query().Get("code")
	if code == "" {
		response.WriteError(w, errs.New(errs.KindValidation, "no code in URL"))
		return
	}

	token, err := h.oauthConfig.Exchange(ctx, code)
	if err != nil {
		h.logger.Error("Failed to exchange oauth code", "error", err)
		response.WriteError(w, errs.InvalidCredentials)
		return
	}

	client := h.oauthConfig.Client(ctx, token)
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		h.logger.Error("Failed to fetch google user info", "error", err)
		response.WriteError(w, errs.InternalError)
		return
	}
	defer resp.Body.Close()

	var profile googleUser
	if err = json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		h.logger.Error("Failed to decode google user info", "error", err)
		response.WriteError(w, errs.InternalError)
		return
	}

	result, err := h.deps.GoogleAuthService.LoginGoogle(ctx, authsvc.GoogleUser{
		ID:    profile.ID,
		Name:  profile.Name,
		Email: profile.Email,
	})
	if err != nil {
		response.WriteError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, "User logged in successfully", result)
}
