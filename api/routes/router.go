package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MichIoan/DP-API-2024-sub000/api/controllers"
	"github.com/MichIoan/DP-API-2024-sub000/api/middleware"
	"github.com/MichIoan/DP-API-2024-sub000/internal/auth"
	"github.com/MichIoan/DP-API-2024-sub000/internal/media"
	"github.com/MichIoan/DP-API-2024-sub000/internal/profiles"
	"github.com/MichIoan/DP-API-2024-sub000/internal/subscriptions"
	"github.com/MichIoan/DP-API-2024-sub000/internal/users"
	"github.com/MichIoan/DP-API-2024-sub000/internal/watch"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/config"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/enums"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/logger"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/metrics"
	"github.com/MichIoan/DP-API-2024-sub000/pkg/redis"
)

type rateLimitStore interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisClient *redis.Client,
	gatherer prometheus.Gatherer,
	httpMetrics *metrics.HTTPMetrics,
	authService auth.Service,
	usersService users.Service,
	profilesService profiles.Service,
	watchService watch.Service,
	mediaService media.Service,
	subscriptionsService subscriptions.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.AllowedOrigins()),
		middleware.ErrorDetails(!cfg.App.IsProd()),
		middleware.Metrics(httpMetrics),
	)

	var limiter rateLimitStore
	readiness := map[string]controllers.Pinger{"database": dbP}
	if redisClient != nil {
		limiter = redisClient
		readiness["redis"] = redisClient
	}
	loginPolicy := middleware.LoginRateLimitPolicy(cfg.AuthRateLimit)
	registerPolicy := middleware.RegisterRateLimitPolicy(cfg.AuthRateLimit)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, readiness, logg))
	})
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	authMW := middleware.Auth(cfg.JWT, logg)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(registerPolicy, limiter, logg)).Post("/register", controllers.AuthRegister(authService, logg))
			r.With(middleware.AuthRateLimit(loginPolicy, limiter, logg)).Post("/login", controllers.AuthLogin(authService, logg))
			r.Post("/refresh", controllers.AuthRefresh(authService, logg))
			r.Post("/logout", controllers.AuthLogout(authService, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(authMW)
			r.Get("/me", controllers.UsersMe(usersService, logg))
			r.Delete("/me", controllers.UsersDeleteMe(usersService, logg))
		})

		r.Route("/profiles", func(r chi.Router) {
			r.Use(authMW, middleware.RequirePermission(enums.PermissionManageProfiles, logg))
			r.Get("/", controllers.ProfilesList(profilesService, logg))
			r.Post("/", controllers.ProfilesCreate(profilesService, cfg.Catalog.MaxProfilesPerUser, logg))
			r.Get("/{profileId}", controllers.ProfileGet(profilesService, logg))
			r.Put("/{profileId}", controllers.ProfileUpdate(profilesService, logg))
			r.Delete("/{profileId}", controllers.ProfileDelete(profilesService, logg))
		})

		r.Route("/media", func(r chi.Router) {
			r.Get("/search", controllers.MediaSearch(mediaService, logg))
			r.Get("/", controllers.MediaList(mediaService, logg))
			r.Get("/{mediaId}", controllers.MediaGet(mediaService, logg))
			r.Get("/{mediaId}/subtitles", controllers.MediaSubtitles(mediaService, logg))

			r.Group(func(r chi.Router) {
				r.Use(authMW, middleware.RequirePermission(enums.PermissionWatch, logg))
				r.Post("/watchlist", controllers.WatchListAdd(watchService, profilesService, logg))
				r.Post("/history", controllers.HistoryMark(watchService, profilesService, logg))
				r.Patch("/history/{historyId}", controllers.HistoryUpdate(watchService, profilesService, logg))
				r.Delete("/history/{historyId}", controllers.HistoryDelete(watchService, profilesService, logg))

				r.Route("/profile/{profileId}", func(r chi.Router) {
					r.Get("/watchlist", controllers.WatchListGet(watchService, profilesService, logg))
					r.Delete("/watchlist/{mediaId}", controllers.WatchListRemove(watchService, profilesService, logg))
					r.Get("/history", controllers.HistoryGet(watchService, profilesService, logg))
					r.Get("/recommendations", controllers.Recommendations(watchService, profilesService, logg))
					r.Get("/age-appropriate", controllers.AgeAppropriateContent(watchService, profilesService, logg))
				})
			})
		})

		r.Get("/series", controllers.SeriesList(mediaService, logg))
		r.Get("/series/{seriesId}", controllers.SeriesGet(mediaService, logg))
		r.Get("/genres", controllers.GenresList(mediaService, logg))

		r.Route("/subscriptions/me", func(r chi.Router) {
			r.Use(authMW)
			r.Get("/", controllers.SubscriptionGet(subscriptionsService, logg))
			r.Post("/", controllers.SubscriptionCreate(subscriptionsService, logg))
			r.Post("/cancel", controllers.SubscriptionCancel(subscriptionsService, logg))
		})
	})

	return r
}
