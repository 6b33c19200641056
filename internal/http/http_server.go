package http

// this is the entry point of the http request handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"

	"gitlab.com/amsys-2025.net/internal/config"
	"gitlab.com/amsys-2025.net/internal/core/ports/primary"
	"gitlab.com/amsys-2025.net/internal/core/ports/secondary"
	"gitlab.com/amsys-2025.net/internal/core/services/analytics"
	assignmentsvc "gitlab.com/amsys-2025.net/internal/core/services/assignment"
	authsvc "gitlab.com/amsys-2025.net/internal/core/services/auth"
	groupsvc "gitlab.com/amsys-2025.net/internal/core/services/group"
	submissionsvc "gitlab.com/amsys-2025.net/internal/core/services/submission"
	usersvc "gitlab.com/amsys-2025.net/internal/core/services/user"
	"gitlab.com/amsys-2025.net/internal/handlers"
	"gitlab.com/amsys-2025.net/internal/handlers/assignments"
	"gitlab.com/amsys-2025.net/internal/handlers/auth"
	"gitlab.com/amsys-2025.net/internal/handlers/groups"
	"gitlab.com/amsys-2025.net/internal/handlers/submissions"
	"gitlab.com/amsys-2025.net/internal/handlers/users"
)

type ServiceProvider struct {
	localAuth  authsvc.ILocalAuthService
	googleAuth authsvc.IGoogleAuthService

	userService       usersvc.IUserService
	assignmentService assignmentsvc.IAssignmentService
	groupService      groupsvc.IGroupService
	submissionService submissionsvc.ISubmissionService
	analyticsService  analytics.IAnalyticsService

	tokenService primary.TokenService
	tokenStore   secondary.TokenStorePort
}

func NewServiceProvider(
	localAuth authsvc.ILocalAuthService,
	googleAuth authsvc.IGoogleAuthService,
	userService usersvc.IUserService,
	assignmentService assignmentsvc.IAssignmentService,
	groupService groupsvc.IGroupService,
	submissionService submissionsvc.ISubmissionService,
	analyticsService analytics.IAnalyticsService,
	tokenService primary.TokenService,
	tokenStore secondary.TokenStorePort,
) *ServiceProvider {
	return &ServiceProvider{
		localAuth:         localAuth,
		googleAuth:        googleAuth,
		userService:       userService,
		assignmentService: assignmentService,
		groupService:      groupService,
		submissionService: submissionService,
		analyticsService:  analyticsService,
		tokenService:      tokenService,
		tokenStore:        tokenStore,
	}
}

type Server struct {
	router          *mux.Router
	srv             *http.Server
	Port            int
	ServiceName     string
	ServiceProvider ServiceProvider
	GGAuthConfig    *config.GGAuthConfig
	logger          primary.Logger
}

func NewServer(cfg *config.ServerConfig, ggCfg *config.GGAuthConfig, serviceProvider ServiceProvider, logger primary.Logger) *Server {
	return &Server{
		Port:            cfg.Port,
		ServiceName:     cfg.ServiceName,
		ServiceProvider: serviceProvider,
		GGAuthConfig:    ggCfg,
		logger:          logger,
	}
}

func (s *Server) Init() error {
	r := mux.NewRouter()
	p := s.ServiceProvider

	middleware := handlers.NewMiddlewareProvider(p.tokenService, p.tokenStore, s.logger)
	authed := r.NewRoute().Subrouter()
	authed.Use(middleware.Authenticate)

	auth.NewHandler(s.GGAuthConfig, s.logger).RegisterRoutes(r, authed, &auth.ServiceDependencies{
		LocalAuthService:  p.localAuth,
		GoogleAuthService: p.googleAuth,
		TokenService:      p.tokenService,
		TokenStore:        p.tokenStore,
	})
	users.NewUserHandler(p.userService, s.logger).RegisterRoutes(authed)
	assignments.NewAssignmentHandler(p.assignmentService, p.analyticsService, s.logger).RegisterRoutes(authed)
	groups.NewGroupHandler(p.groupService, s.logger).RegisterRoutes(authed)
	submissions.NewSubmissionHandler(p.submissionService, s.logger).RegisterRoutes(authed)

	s.router = r
	return nil
}

func (s *Server) Start(ctx context.Context) {
	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		s.logger.Info("Server listening", "addr", s.srv.Addr, "service", s.ServiceName)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()
}

func (s *Server) Stop(ctx context.Context) {
	s.logger.Info("Shutting down http server...")
	if s.srv == nil {
		return
	}
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", "error", err)
	}
}
