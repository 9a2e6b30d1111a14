package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/dvidovic/devconnect/internal/auth"
	"github.com/dvidovic/devconnect/internal/config"
	"github.com/dvidovic/devconnect/internal/database"
	mongorepo "github.com/dvidovic/devconnect/internal/repository/mongodb"
	"github.com/dvidovic/devconnect/internal/service"
	"github.com/dvidovic/devconnect/internal/transport/http/handlers"
	"github.com/dvidovic/devconnect/internal/transport/http/middleware"
)

func main() {
	cfg := config.Load()

	// Database
	db, err := database.Connect(context.Background(), cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Client().Disconnect(context.Background())
	log.Println("Connected to database")

	if err := database.EnsureIndexes(context.Background(), db); err != nil {
		log.Fatal(err)
	}

	// Repositories
	userRepo := mongorepo.NewUserRepo(db)
	postRepo := mongorepo.NewPostRepo(db)
	profileRepo := mongorepo.NewProfileRepo(db)

	// Services
	tokens := auth.NewTokenService(cfg.JWTSecret)
	authService := service.NewAuthService(userRepo, tokens)
	postService := service.NewPostService(postRepo, userRepo)
	profileService := service.NewProfileService(profileRepo, postRepo, userRepo, cfg.UploadDir)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	postHandler := handlers.NewPostHandler(postService)
	profileHandler := handlers.NewProfileHandler(profileService)

	// Auth middleware
	authed := middleware.Auth(tokens)

	// Routes
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})
	mux.HandleFunc("POST /api/users/register", authHandler.Register)
	mux.HandleFunc("POST /api/users/login", authHandler.Login)

	// Protected - Users
	mux.Handle("GET /api/users", authed(http.HandlerFunc(authHandler.CurrentUser)))

	// Protected - Posts
	mux.Handle("POST /api/posts", authed(http.HandlerFunc(postHandler.Create)))
	mux.Handle("GET /api/posts", authed(http.HandlerFunc(postHandler.List)))
	mux.Handle("GET /api/posts/{id}", authed(http.HandlerFunc(postHandler.Get)))
	mux.Handle("DELETE /api/posts/{id}", authed(http.HandlerFunc(postHandler.Delete)))
	mux.Handle("PUT /api/posts/like/{id}", authed(http.HandlerFunc(postHandler.Like)))
	mux.Handle("PUT /api/posts/unlike/{id}", authed(http.HandlerFunc(postHandler.Unlike)))
	mux.Handle("POST /api/posts/comment/{id}", authed(http.HandlerFunc(postHandler.AddComment)))
	mux.Handle("DELETE /api/posts/comment/{id}/{comment_id}", authed(http.HandlerFunc(postHandler.DeleteComment)))

	// Protected - Profiles
	mux.Handle("POST /api/profiles", authed(http.HandlerFunc(profileHandler.Upsert)))
	mux.Handle("GET /api/profiles", authed(http.HandlerFunc(profileHandler.List)))
	mux.Handle("GET /api/profiles/me", authed(http.HandlerFunc(profileHandler.Me)))
	mux.Handle("GET /api/profiles/user/{user_id}", authed(http.HandlerFunc(profileHandler.GetByUser)))
	mux.Handle("DELETE /api/profiles", authed(http.HandlerFunc(profileHandler.DeleteAccount)))
	mux.Handle("POST /api/profiles/upload", authed(http.HandlerFunc(profileHandler.Upload)))
	mux.Handle("PUT /api/profiles/experience", authed(http.HandlerFunc(profileHandler.AddExperience)))
	mux.Handle("DELETE /api/profiles/experience/{id}", authed(http.HandlerFunc(profileHandler.DeleteExperience)))
	mux.Handle("PUT /api/profiles/education", authed(http.HandlerFunc(profileHandler.AddEducation)))
	mux.Handle("DELETE /api/profiles/education/{id}", authed(http.HandlerFunc(profileHandler.DeleteEducation)))

	// Start server with CORS
	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("Starting server on %s", addr)
	log.Fatal(http.ListenAndServe(addr, middleware.CORS(mux)))
}
