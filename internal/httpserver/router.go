package httpserver

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"peerprep/internal/config"
	"peerprep/internal/mail"
	"peerprep/internal/security"
	"peerprep/internal/service"
	"peerprep/internal/store/sqlite"
	"peerprep/internal/video"
	"peerprep/internal/ws"
)

// NewRouter constructs the main HTTP router and wires routes, services, and
// middleware.
func NewRouter(
	cfg *config.Config,
	db *sql.DB,
	registry *ws.Registry,
	engine *ws.Engine,
	tokenSvc *security.TokenService,
	passwordHasher *security.PasswordHasher,
	mailer mail.Sender,
	rooms video.Provider,
) http.Handler {
	r := chi.NewRouter()

	// Middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Repositories
	userRepo := sqlite.NewUserRepo(db)
	friendRepo := sqlite.NewFriendRepo(db)
	msgRepo := sqlite.NewMessageRepo(db)

	// Services
	authSvc := service.NewAuthService(userRepo, tokenSvc, passwordHasher, mailer, cfg.FrontendURL)
	friendSvc := service.NewFriendService(userRepo, friendRepo)
	msgSvc := service.NewMessageService(userRepo, msgRepo, engine)
	meetingSvc := service.NewMeetingService(userRepo, msgRepo, rooms, engine)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Server is running"})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Auth routes (no auth required)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", handleRegister(authSvc))
			r.Post("/login", handleLogin(authSvc))
			r.Post("/requestResetPassword", handleRequestResetPassword(authSvc))
			r.Post("/resetPassword", handleResetPassword(authSvc))
		})

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(tokenSvc, userRepo))

			r.Route("/users", func(r chi.Router) {
				r.Get("/profile", handleProfile())
				r.Get("/online", handleListOnline(friendSvc))

				r.Post("/friend/request", handleFriendRequest(friendSvc))
				r.Post("/friend/accept", handleFriendAccept(friendSvc))
				r.Get("/friend/requests", handleListFriendRequests(friendSvc))
				r.Get("/friends", handleListFriends(friendSvc))

				r.Get("/chats/{otherUserID}", handleGetConversation(msgSvc))
				r.Post("/messages", handleSendMessage(msgSvc))
				r.Get("/contacts", handleListContacts(msgSvc))
			})

			r.Route("/video", func(r chi.Router) {
				r.Post("/meeting", handleCreateMeeting(meetingSvc))
				r.Post("/token", handleVideoToken(meetingSvc))
			})
		})
	})

	// Real-time channel
	r.Get("/ws", ws.MakeHandler(engine, registry, userRepo, cfg.CORSOrigins))

	return r
}
