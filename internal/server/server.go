package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"gorm.io/gorm"

	"quizhub/internal/auth"
	"quizhub/internal/config"
	"quizhub/internal/quiz"
	"quizhub/internal/token"
)

type Server struct {
	httpServer *http.Server
	router     *mux.Router
}

func New(cfg *config.Config, db *gorm.DB) *Server {
	router := NewRouter(cfg, db)

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	return &Server{
		httpServer: &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      corsMiddleware.Handler(router),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		router: router,
	}
}

// NewRouter wires repositories, services and handlers onto the route
// table. Split out from New so tests can drive the routes directly.
func NewRouter(cfg *config.Config, db *gorm.DB) *mux.Router {
	tokens := token.NewService(cfg.JWTSecret)

	authRepo := auth.NewRepository(db)
	authService := auth.NewService(authRepo, tokens)
	authHandler := auth.NewHandler(authService)

	quizRepo := quiz.NewRepository(db)
	quizService := quiz.NewService(quizRepo)
	quizHandler := quiz.NewHandler(quizService)

	router := mux.NewRouter()

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods("GET")

	// Auth routes - no token required
	router.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// Protected routes - token required
	protected := router.PathPrefix("/api").Subrouter()
	protected.Use(auth.Middleware(tokens))

	protected.HandleFunc("/auth/profile", authHandler.GetProfile).Methods("GET")
	protected.HandleFunc("/auth/profile", authHandler.UpdateProfile).Methods("PUT")

	protected.Handle("/quiz", auth.RequireAdmin(http.HandlerFunc(quizHandler.CreateQuiz))).Methods("POST", "OPTIONS")
	protected.Handle("/quiz/assign", auth.RequireAdmin(http.HandlerFunc(quizHandler.AssignQuiz))).Methods("POST", "OPTIONS")
	protected.HandleFunc("/quiz/assigned", quizHandler.GetAssigned).Methods("GET")
	protected.HandleFunc("/quiz/{quizId}/submit", quizHandler.SubmitAnswers).Methods("POST", "OPTIONS")

	return router
}

func (s *Server) Router() *mux.Router {
	return s.router
}

func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
