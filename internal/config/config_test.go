package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `foo=bar, uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected uptrace dsn: %q", cfg.UptraceDSN)
	}
}

func TestLoad_DefaultsByEnv(t *testing.T) {
	t.Run("prod disables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("UPTRACE_ENABLED", "false")
		t.Setenv("SWAGGER_ENABLED", "")
		t.Setenv("AUTH_JWT_SECRET", "super-secret")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=false in prod by default")
		}
	})

	t.Run("prod requires identity credentials", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("UPTRACE_ENABLED", "false")
		t.Setenv("AUTH_JWT_SECRET", "")
		t.Setenv("AUTH_ANON_KEY", "")

		if _, err := Load(); err == nil {
			t.Fatalf("expected error when prod runs without AUTH_JWT_SECRET and AUTH_ANON_KEY")
		}
	})

	t.Run("dev enables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("UPTRACE_ENABLED", "false")
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=true in dev by default")
		}
	})
}

func TestLoad_StoreDriver(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("defaults to postgres", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.StoreDriver != StoreDriverPostgres {
			t.Fatalf("unexpected store driver: %q", cfg.StoreDriver)
		}
		if cfg.DBURL == "" {
			t.Fatalf("expected default DB_URL")
		}
	})

	t.Run("memory is accepted case-insensitively", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", " Memory ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.StoreDriver != StoreDriverMemory {
			t.Fatalf("unexpected store driver: %q", cfg.StoreDriver)
		}
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "mysql")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown STORE_DRIVER")
		}
	})
}

func TestLoad_AuthConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("AUTH_TIMEOUT", "")
		t.Setenv("AUTH_PRINCIPAL_TTL", "")
		t.Setenv("AUTH_JWT_AUDIENCE", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.AuthTimeout != 5*time.Second {
			t.Fatalf("unexpected auth timeout: %s", cfg.AuthTimeout)
		}
		if cfg.AuthPrincipalTTL != 30*time.Second {
			t.Fatalf("unexpected principal ttl: %s", cfg.AuthPrincipalTTL)
		}
		if cfg.AuthJWTAudience != "authenticated" {
			t.Fatalf("unexpected jwt audience: %q", cfg.AuthJWTAudience)
		}
		if !cfg.AuthCircuitEnabled || cfg.AuthCircuitFailureCount != 5 || cfg.AuthCircuitHalfOpenMaxReq != 2 {
			t.Fatalf("unexpected circuit defaults: %+v", cfg)
		}
	})

	t.Run("explicit values", func(t *testing.T) {
		t.Setenv("AUTH_BASE_URL", "https://project.supabase.co")
		t.Setenv("AUTH_ANON_KEY", " anon ")
		t.Setenv("AUTH_JWT_SECRET", "jwt-secret")
		t.Setenv("AUTH_REDIRECT_URL", "https://hub.example.com/auth/callback")
		t.Setenv("AUTH_CIRCUIT_OPEN_TIMEOUT", "45s")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.AuthBaseURL != "https://project.supabase.co" || cfg.AuthAnonKey != "anon" {
			t.Fatalf("unexpected auth endpoint config: %q %q", cfg.AuthBaseURL, cfg.AuthAnonKey)
		}
		if cfg.AuthJWTSecret != "jwt-secret" || cfg.AuthRedirectURL != "https://hub.example.com/auth/callback" {
			t.Fatalf("unexpected auth secrets: %+v", cfg)
		}
		if cfg.AuthCircuitOpenTimeout != 45*time.Second {
			t.Fatalf("unexpected circuit open timeout: %s", cfg.AuthCircuitOpenTimeout)
		}
	})

	t.Run("invalid failure count", func(t *testing.T) {
		t.Setenv("AUTH_CIRCUIT_FAILURE_COUNT", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for AUTH_CIRCUIT_FAILURE_COUNT=0")
		}
	})
}

func TestLoad_StorageConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("disabled without bucket", func(t *testing.T) {
		t.Setenv("STORAGE_BUCKET", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.StorageEnabled() {
			t.Fatalf("expected storage disabled without bucket")
		}
		if cfg.StorageMaxUploadBytes != 5<<20 {
			t.Fatalf("unexpected default max upload bytes: %d", cfg.StorageMaxUploadBytes)
		}
	})

	t.Run("bucket requires public base url", func(t *testing.T) {
		t.Setenv("STORAGE_BUCKET", "media")
		t.Setenv("STORAGE_PUBLIC_BASE_URL", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when STORAGE_BUCKET is set without STORAGE_PUBLIC_BASE_URL")
		}
	})

	t.Run("enabled", func(t *testing.T) {
		t.Setenv("STORAGE_BUCKET", "media")
		t.Setenv("STORAGE_PUBLIC_BASE_URL", "https://cdn.example.com/media")
		t.Setenv("STORAGE_USE_PATH_STYLE", "false")
		t.Setenv("STORAGE_MAX_UPLOAD_BYTES", "1048576")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.StorageEnabled() || cfg.StorageUsePathStyle {
			t.Fatalf("unexpected storage config: %+v", cfg)
		}
		if cfg.StorageMaxUploadBytes != 1<<20 {
			t.Fatalf("unexpected max upload bytes: %d", cfg.StorageMaxUploadBytes)
		}
	})
}

func TestLoad_WorkerPoolSize(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Setenv("WORKER_POOL_SIZE", "0")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for WORKER_POOL_SIZE=0")
	}

	t.Setenv("WORKER_POOL_SIZE", "3")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.WorkerPoolSize != 3 {
		t.Fatalf("unexpected worker pool size: %d", cfg.WorkerPoolSize)
	}
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("APP_SERVICE_NAME", "esports-hub-api-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "esports-hub-api-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("default wildcard", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
			t.Fatalf("unexpected default CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("comma separated parsing", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, http://localhost:5173 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 {
			t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
		}
		if cfg.CORSAllowedOrigins[0] != "https://a.example.com" {
			t.Fatalf("unexpected first CORS origin: %s", cfg.CORSAllowedOrigins[0])
		}
		if cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
			t.Fatalf("unexpected second CORS origin: %s", cfg.CORSAllowedOrigins[1])
		}
	})
}

func TestLoad_DBPoolParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("DB_MAX_OPEN_CONNS", "")
		t.Setenv("DB_MAX_IDLE_CONNS", "")
		t.Setenv("DB_CONN_MAX_LIFETIME", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.DBMaxOpenConns != 20 || cfg.DBMaxIdleConns != 5 || cfg.DBConnMaxLifetime != 30*time.Minute {
			t.Fatalf("unexpected pool defaults: open=%d idle=%d lifetime=%s", cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnMaxLifetime)
		}
	})

	t.Run("idle above open", func(t *testing.T) {
		t.Setenv("DB_MAX_OPEN_CONNS", "4")
		t.Setenv("DB_MAX_IDLE_CONNS", "8")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when DB_MAX_IDLE_CONNS exceeds DB_MAX_OPEN_CONNS")
		}
	})
}

func TestLoad_CacheConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("CACHE_ENABLED", "")
		t.Setenv("CACHE_TTL", "")
		t.Setenv("CACHE_MAX_ENTRIES", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.CacheEnabled {
			t.Fatalf("expected cache enabled by default")
		}
		if cfg.CacheTTL != 60*time.Second {
			t.Fatalf("unexpected default cache ttl: %s", cfg.CacheTTL)
		}
		if cfg.CacheMaxEntries != 1024 {
			t.Fatalf("unexpected default cache max entries: %d", cfg.CacheMaxEntries)
		}
	})

	t.Run("invalid ttl", func(t *testing.T) {
		t.Setenv("CACHE_TTL", "bad")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid CACHE_TTL")
		}
	})
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("ESPORTS_HUB_DOTENV_PROBE=from-file\nESPORTS_HUB_DOTENV_KEEP=from-file\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("ESPORTS_HUB_DOTENV_KEEP", "from-process")
	t.Cleanup(func() { _ = os.Unsetenv("ESPORTS_HUB_DOTENV_PROBE") })

	if err := LoadDotEnv(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatalf("load dotenv: %v", err)
	}
	if got := os.Getenv("ESPORTS_HUB_DOTENV_PROBE"); got != "from-file" {
		t.Fatalf("expected value from env file, got %q", got)
	}
	if got := os.Getenv("ESPORTS_HUB_DOTENV_KEEP"); got != "from-process" {
		t.Fatalf("process env must win over env file, got %q", got)
	}
}
