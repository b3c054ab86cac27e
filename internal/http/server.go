package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/jmoiron/sqlx"

	"solis-backend-go/internal/config"
	"solis-backend-go/internal/services"
)

type Server struct {
	DB         *sqlx.DB
	Config     config.Config
	Tokens     services.TokenService
	Content    *services.ContentService
	Mutations  *services.ContentMutationGate
	MetricsHub *services.MetricsHub
}

func NewServer(db *sqlx.DB, cfg config.Config, hub *services.MetricsHub) *Server {
	tokens := services.TokenService{
		Secret:     []byte(cfg.JWTSecret),
		Issuer:     cfg.JWTIssuer,
		AccessTTL:  time.Duration(cfg.AccessTTLSeconds) * time.Second,
		RefreshTTL: time.Duration(cfg.RefreshTTLSeconds) * time.Second,
	}
	store := services.NewSQLContentStore(db)
	cache := services.NewSlugCache(time.Duration(cfg.SlugCacheTTLSeconds) * time.Second)
	return &Server{
		DB:         db,
		Config:     cfg,
		Tokens:     tokens,
		Content:    services.NewContentService(store, cache),
		Mutations:  services.NewContentMutationGate(store, cache),
		MetricsHub: hub,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestLogger)
	if len(s.Config.CorsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.Config.CorsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/register", s.Register)
		api.Post("/auth/login", s.Login)
		api.Post("/auth/refresh", s.Refresh)
		api.Post("/auth/logout", s.Logout)

		api.Route("/me", func(me chi.Router) {
			me.Use(WithSession(s.Tokens))
			me.Use(RequireAuth)
			me.Get("/", s.Me)
			me.Put("/password", s.ChangePassword)
		})

		api.Route("/public", func(pub chi.Router) {
			pub.Use(httprate.LimitByIP(s.Config.PublicRatePerMinute, time.Minute))
			pub.Use(WithSession(s.Tokens))
			pub.Route("/content", func(content chi.Router) {
				content.Get("/", s.PublicContent)
				content.Get("/{slug}", s.PublicContentDetail)
			})
			pub.Get("/age-groups", s.PublicAgeGroups)
			pub.Get("/categories", s.PublicCategories)
			pub.Get("/access-tiers", s.PublicAccessTiers)
		})

		api.Route("/manage", func(manage chi.Router) {
			manage.Use(WithSession(s.Tokens))
			manage.Use(RequireAdmin)
			manage.Get("/overview", s.ManageOverview)
			manage.Get("/metrics/history", s.MetricsHistory)
			manage.Route("/content", func(content chi.Router) {
				content.Get("/", s.ManageListContent)
				content.Post("/", s.CreateContent)
				content.Post("/samples", s.SeedSampleContent)
				content.Put("/{contentId}", s.UpdateContent)
				content.Delete("/{contentId}", s.DeleteContent)
				content.Post("/{contentId}/publish", s.PublishContent)
			})
		})
	})

	r.Get("/ws/metrics", s.MetricsSocket)
	return r
}
