package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dawnfield/StudyQuest_Go/internal/attendance"
	"github.com/dawnfield/StudyQuest_Go/internal/curriculum"
	"github.com/dawnfield/StudyQuest_Go/internal/database"
	"github.com/dawnfield/StudyQuest_Go/internal/handler"
	"github.com/dawnfield/StudyQuest_Go/internal/logger"
	"github.com/dawnfield/StudyQuest_Go/internal/metrics"
	"github.com/dawnfield/StudyQuest_Go/internal/task"
	"github.com/dawnfield/StudyQuest_Go/internal/user"
	"github.com/dawnfield/StudyQuest_Go/internal/workspace"
)

type Server struct {
	httpServer        *http.Server
	dbPool            database.Pool
	userService       user.Service
	workspaceService  workspace.Service
	attendanceService attendance.Service
	curriculumService curriculum.Service
	taskService       task.Service
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, userService user.Service, workspaceService workspace.Service, attendanceService attendance.Service, curriculumService curriculum.Service, taskService task.Service) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// User routes
		r.Route("/user", func(r chi.Router) {
			r.Post("/register", handler.HandleRegisterUser(userService))
			r.Get("/profile", handler.HandleGetProfile(userService))
		})

		// Workspace routes
		workspaceHandler := handler.NewWorkspaceHandler(workspaceService)
		r.Route("/workspace", func(r chi.Router) {
			r.Post("/create", workspaceHandler.HandleCreate)
			r.Get("/get", workspaceHandler.HandleGet)
			r.Get("/list", workspaceHandler.HandleList)
			r.Post("/delete", workspaceHandler.HandleDelete)
		})

		// Attendance routes
		attendanceHandler := handler.NewAttendanceHandler(attendanceService)
		r.Route("/attendance", func(r chi.Router) {
			r.Post("/check-in", attendanceHandler.HandleCheckIn)
			r.Post("/draft", attendanceHandler.HandleSaveDraft)
			r.Post("/draft/delete", attendanceHandler.HandleDeleteDraft)
			r.Post("/absence", attendanceHandler.HandleRecordAbsence)
			r.Get("/list", attendanceHandler.HandleList)
		})

		// Curriculum routes
		curriculumHandler := handler.NewCurriculumHandler(curriculumService)
		r.Route("/chapter", func(r chi.Router) {
			r.Post("/create", curriculumHandler.HandleCreateChapter)
			r.Get("/list", curriculumHandler.HandleListChapters)
			r.Post("/force-unlock", curriculumHandler.HandleForceUnlock)
		})
		r.Route("/content", func(r chi.Router) {
			r.Post("/create", curriculumHandler.HandleCreateContent)
			r.Get("/list", curriculumHandler.HandleListContents)
			r.Post("/toggle", curriculumHandler.HandleToggleContent)
			r.Post("/delete", curriculumHandler.HandleDeleteContent)
		})

		// Task routes
		taskHandler := handler.NewTaskHandler(taskService)
		r.Route("/task", func(r chi.Router) {
			r.Post("/create", taskHandler.HandleCreate)
			r.Get("/list", taskHandler.HandleList)
			r.Post("/toggle", taskHandler.HandleToggle)
			r.Post("/delete", taskHandler.HandleDelete)
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool:            dbPool,
		userService:       userService,
		workspaceService:  workspaceService,
		attendanceService: attendanceService,
		curriculumService: curriculumService,
		taskService:       taskService,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
