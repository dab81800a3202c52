package main

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/vishalsx/tubstudio-sub001/internal/adapters/backend/httpclient"
	dbsqlite "github.com/vishalsx/tubstudio-sub001/internal/adapters/db/sqlite"
	"github.com/vishalsx/tubstudio-sub001/internal/api"
	"github.com/vishalsx/tubstudio-sub001/internal/auth"
	"github.com/vishalsx/tubstudio-sub001/internal/config"
	"github.com/vishalsx/tubstudio-sub001/internal/domain"
	"github.com/vishalsx/tubstudio-sub001/internal/usecase/permissions"
	"github.com/vishalsx/tubstudio-sub001/internal/usecase/session"
	"github.com/vishalsx/tubstudio-sub001/internal/usecase/worklist"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	db, err := dbsqlite.Init(cfg.DBPath)
	if err != nil {
		log.Fatal("open database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	backend := httpclient.New(cfg.BackendURL, cfg.BackendTimeout)
	cache := dbsqlite.NewIdentifyCacheRepo(db)
	engine := permissions.New(log)
	reconciler := worklist.New(worklist.Deps{Backend: backend, Log: log})

	sessions := session.NewManager(session.Deps{
		Backend:           backend,
		Cache:             cache,
		Perms:             engine,
		Reconciler:        reconciler,
		Log:               log,
		CanonicalLanguage: cfg.CanonicalLanguage,
	}, domain.CommonDataMode(cfg.CommonDataMode))

	go func() {
		for range time.Tick(10 * time.Minute) {
			if n := sessions.Sweep(cfg.SessionMaxIdle); n > 0 {
				log.Info("expired idle sessions", zap.Int("count", n))
			}
		}
	}()

	router := api.NewRouter(sessions, auth.NewJWTService(cfg.JWTSecret), cfg.CORSOrigins, log)
	log.Info("listening", zap.String("addr", cfg.ListenAddr), zap.String("backend", cfg.BackendURL))
	if err := http.ListenAndServe(cfg.ListenAddr, router); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
