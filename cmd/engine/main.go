package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofrs/flock"

	"jobboard-engine/internal/analytics"
	"jobboard-engine/internal/applications"
	"jobboard-engine/internal/auth"
	"jobboard-engine/internal/config"
	"jobboard-engine/internal/httpapi"
	"jobboard-engine/internal/jobs"
	"jobboard-engine/internal/savedjobs"
	"jobboard-engine/internal/scheduler"
	"jobboard-engine/internal/secrets"
	"jobboard-engine/internal/store"
	"jobboard-engine/internal/users"
)

func main() {
	// Data dir: use env if provided, else local folder.
	dataDir := os.Getenv("JOBBOARD_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	lock := flock.New(filepath.Join(dataDir, "jobboard.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("lock data dir: %v", err)
	}
	if !locked {
		log.Fatalf("another engine is already using %s", dataDir)
	}
	defer lock.Unlock()

	cfgPath, err := config.EnsureUserConfig(dataDir)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load failed (%s): %v", cfgPath, err)
	}
	cfg, res := config.NormalizeAndValidate(cfg)
	for _, w := range res.Warnings {
		log.Printf("level=warn msg=\"config\" warning=%q", w)
	}
	if !res.OK() {
		log.Fatalf("config invalid (%s): %v", cfgPath, res.Errors)
	}

	dbPath := cfg.Store.Path
	if !filepath.IsAbs(dbPath) {
		dbPath = filepath.Join(dataDir, dbPath)
	}
	st, err := store.Open(dbPath, store.Options{BusyTimeoutMS: cfg.Store.BusyTimeoutMS})
	if err != nil {
		log.Fatal(err)
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := st.Migrate(ctx); err != nil {
		log.Fatal(err)
	}

	secret, generated, err := secrets.EnsureJWTSecret(cfg.Auth.JWTSecret, cfg.Auth.KeyringAccount)
	if err != nil {
		log.Fatalf("jwt secret: %v", err)
	}
	if generated {
		log.Printf("level=info msg=\"generated jwt secret\" keyring_account=%s", cfg.Auth.KeyringAccount)
	}
	tokens, err := auth.NewTokens(secret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
	if err != nil {
		log.Fatal(err)
	}

	limiter := httpapi.NewClientLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)

	mux := httpapi.NewMux(httpapi.Deps{
		Store: st,
		Jobs: jobs.New(st, jobs.Options{
			DefaultPageSize: cfg.Listing.DefaultPageSize,
			MaxPageSize:     cfg.Listing.MaxPageSize,
			ExcerptLength:   cfg.Listing.ExcerptLength,
		}),
		Applications: applications.New(st, nil),
		SavedJobs:    savedjobs.New(st, nil),
		Analytics:    analytics.New(st, nil, cfg.Analytics.RecentLimit),
		Users:        users.New(st, tokens, nil),
		Tokens:       tokens,
	})

	srv := &http.Server{
		Handler: httpapi.Chain(mux,
			httpapi.Recover,
			httpapi.RequestID,
			httpapi.AccessLog,
			httpapi.Cors(cfg.App.AllowedOrigins),
			httpapi.RateLimit(limiter),
		),
		ReadHeaderTimeout: 5 * time.Second,
	}

	shutdownToken := os.Getenv("JOBBOARD_SHUTDOWN_TOKEN")
	if shutdownToken != "" {
		mux.HandleFunc("POST /shutdown", shutdownHandler(&shutdownToken, srv))
	}

	if m := cfg.Store.CheckpointMinutes; m > 0 {
		go scheduler.Every(ctx, time.Duration(m)*time.Minute, "wal_checkpoint", st.Checkpoint)
	}
	go scheduler.Every(ctx, 10*time.Minute, "limiter_sweep", func(context.Context) error {
		if n := limiter.Sweep(30 * time.Minute); n > 0 {
			log.Printf("level=debug msg=\"limiter sweep\" removed=%d remaining=%d", n, limiter.Len())
		}
		return nil
	})

	addr := net.JoinHostPort(cfg.App.Host, fmt.Sprint(cfg.App.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("level=info msg=\"engine listening\" addr=http://%s db=%s origins=%v jwt_secret=%s shutdown_token=%s",
		addr, dbPath, cfg.App.AllowedOrigins, mask(secret), mask(shutdownToken))

	go func() {
		<-ctx.Done()
		log.Printf("level=info msg=\"shutting down\"")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("level=error msg=\"shutdown failed\" err=%q", err.Error())
		}
	}()

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	log.Printf("level=info msg=\"engine stopped\"")
}
