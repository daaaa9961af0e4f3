package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/esports-hub/internal/config"
	"github.com/riskibarqy/esports-hub/internal/domain/inquiry"
	"github.com/riskibarqy/esports-hub/internal/domain/match"
	"github.com/riskibarqy/esports-hub/internal/domain/matchstats"
	"github.com/riskibarqy/esports-hub/internal/domain/player"
	"github.com/riskibarqy/esports-hub/internal/domain/team"
	"github.com/riskibarqy/esports-hub/internal/domain/tournament"
	"github.com/riskibarqy/esports-hub/internal/infrastructure/identity/gotrue"
	"github.com/riskibarqy/esports-hub/internal/infrastructure/identity/jwtauth"
	"github.com/riskibarqy/esports-hub/internal/infrastructure/report"
	cacherepo "github.com/riskibarqy/esports-hub/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/esports-hub/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/esports-hub/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/esports-hub/internal/infrastructure/storage"
	"github.com/riskibarqy/esports-hub/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/esports-hub/internal/platform/cache"
	idgen "github.com/riskibarqy/esports-hub/internal/platform/id"
	"github.com/riskibarqy/esports-hub/internal/platform/logging"
	"github.com/riskibarqy/esports-hub/internal/platform/resilience"
	"github.com/riskibarqy/esports-hub/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type repositories struct {
	teams       team.Repository
	players     player.Repository
	tournaments tournament.Repository
	matches     match.Repository
	maps        match.MapRepository
	stats       matchstats.Repository
	inquiries   inquiry.Repository
}

// NewHTTPServer wires repositories, services and the router. The returned
// cleanup releases the database pool.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, cleanup, err := newRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	if cfg.CacheEnabled {
		repos.teams = cacherepo.NewTeamRepository(repos.teams, basecache.NewStore(cfg.CacheTTL, cfg.CacheMaxEntries))
		repos.tournaments = cacherepo.NewTournamentRepository(repos.tournaments, basecache.NewStore(cfg.CacheTTL, cfg.CacheMaxEntries))
	}

	identity := gotrue.NewClient(
		&http.Client{
			Timeout:   cfg.AuthTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		gotrue.Config{
			BaseURL:      cfg.AuthBaseURL,
			AnonKey:      cfg.AuthAnonKey,
			Timeout:      cfg.AuthTimeout,
			PrincipalTTL: cfg.AuthPrincipalTTL,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.AuthCircuitEnabled,
				FailureThreshold: cfg.AuthCircuitFailureCount,
				OpenTimeout:      cfg.AuthCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.AuthCircuitHalfOpenMaxReq,
			},
		},
		logger.Named("gotrue"),
	)

	var verifier httpapi.TokenVerifier = identity
	if cfg.AuthJWTSecret != "" {
		verifier = jwtauth.NewVerifier(cfg.AuthJWTSecret, cfg.AuthJWTAudience)
		logger.Info("access tokens verified locally", "audience", cfg.AuthJWTAudience)
	} else {
		logger.Info("access tokens verified by identity provider", "base_url", cfg.AuthBaseURL)
	}

	objectStorage, err := newObjectStorage(ctx, cfg, logger)
	if err != nil {
		_ = cleanup()
		return nil, nil, err
	}

	handler := httpapi.NewHandler(
		usecase.NewTeamService(repos.teams, repos.players),
		usecase.NewPlayerService(repos.players, repos.teams),
		usecase.NewTournamentService(repos.tournaments),
		usecase.NewMatchService(repos.matches, repos.maps, repos.teams, repos.tournaments),
		usecase.NewStatsService(repos.matches, repos.maps, repos.stats, repos.players, report.NewStatsWorkbook(), logger),
		usecase.NewSeriesService(repos.matches, repos.maps, repos.tournaments, cfg.WorkerPoolSize, logger),
		usecase.NewAuthService(identity, cfg.AuthRedirectURL),
		usecase.NewInquiryService(repos.inquiries),
		usecase.NewMediaService(objectStorage, repos.teams, repos.players, idgen.NewUUIDGenerator(), cfg.StorageMaxUploadBytes, logger),
		logger,
	)
	router := httpapi.NewRouter(handler, verifier, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.WriteTimeout,
	}

	return server, cleanup, nil
}

func newRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, func() error, error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		db := memory.NewDB()
		if cfg.AppEnv == config.EnvDev {
			db = memory.NewSeededDB(time.Now())
		}
		logger.Warn("using in-memory store, data is lost on restart", "seeded", cfg.AppEnv == config.EnvDev)

		return repositories{
			teams:       memory.NewTeamRepository(db),
			players:     memory.NewPlayerRepository(db),
			tournaments: memory.NewTournamentRepository(db),
			matches:     memory.NewMatchRepository(db),
			maps:        memory.NewMapRepository(db),
			stats:       memory.NewStatsRepository(db),
			inquiries:   memory.NewInquiryRepository(db),
		}, func() error { return nil }, nil
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return repositories{}, nil, err
	}
	logger.Info("database connected", "db_name", dbNameFromURL(cfg.DBURL), "max_open_conns", cfg.DBMaxOpenConns)

	return repositories{
		teams:       postgres.NewTeamRepository(db),
		players:     postgres.NewPlayerRepository(db),
		tournaments: postgres.NewTournamentRepository(db),
		matches:     postgres.NewMatchRepository(db),
		maps:        postgres.NewMapRepository(db),
		stats:       postgres.NewStatsRepository(db),
		inquiries:   postgres.NewInquiryRepository(db),
	}, db.Close, nil
}

// newObjectStorage returns a nil interface when no bucket is configured; uploads then fail with
// ErrDependencyUnavailable.
func newObjectStorage(ctx context.Context, cfg config.Config, logger *logging.Logger) (usecase.ObjectStorage, error) {
	if !cfg.StorageEnabled() {
		logger.Warn("media storage disabled", "reason", "STORAGE_BUCKET empty")
		return nil, nil
	}

	s3Storage, err := storage.NewS3Storage(ctx, storage.Config{
		Endpoint:        cfg.StorageEndpoint,
		Region:          cfg.StorageRegion,
		AccessKeyID:     cfg.StorageAccessKeyID,
		SecretAccessKey: cfg.StorageSecretAccessKey,
		Bucket:          cfg.StorageBucket,
		PublicBaseURL:   cfg.StoragePublicBaseURL,
		UsePathStyle:    cfg.StorageUsePathStyle,
	})
	if err != nil {
		return nil, fmt.Errorf("init media storage: %w", err)
	}
	logger.Info("media storage enabled", "bucket", cfg.StorageBucket, "endpoint", cfg.StorageEndpoint)

	return s3Storage, nil
}
