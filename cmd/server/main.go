package main

import (
	"context"
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"citygrid/internal/adapter/anomalylog"
	httpadapter "citygrid/internal/adapter/http"
	metricsinmem "citygrid/internal/adapter/metrics/inmemory"
	ratelimitmem "citygrid/internal/adapter/ratelimit/memory"
	gormrepo "citygrid/internal/adapter/repo/gorm"
	"citygrid/internal/app/cities"
	"citygrid/internal/app/cityview"
	"citygrid/internal/app/mapupdate"
	"citygrid/internal/app/ports"
	"citygrid/internal/app/treasury"
	"citygrid/internal/domain/city"
	"citygrid/internal/tuning"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/google/uuid"
)

func main() {
	cityRepo, txManager := mustBuildRepos()
	guard := loadGuardTuning()
	kpiRecorder := metricsinmem.NewRecorder()
	limiter := ratelimitmem.NewLimiter(guard.RateLimitRequests, guard.RateLimitWindow())
	go pruneLoop(limiter, guard.RateLimitWindow())

	h := httpadapter.Handler{
		ViewUC: cityview.UseCase{
			TxManager: txManager,
			Cities:    cityRepo,
			Now:       time.Now,
			NewSlug:   uuid.NewString,
		},
		UpdateUC: mapupdate.UseCase{
			TxManager: txManager,
			Cities:    cityRepo,
			Limiter:   limiter,
			Metrics:   kpiRecorder,
			Reporter:  anomalylog.Reporter{},
			Guard:     guard,
			Now:       time.Now,
		},
		TreasuryUC: treasury.UseCase{
			TxManager: txManager,
			Cities:    cityRepo,
			Now:       time.Now,
		},
		CitiesUC: cities.UseCase{
			TxManager: txManager,
			Cities:    cityRepo,
			Now:       time.Now,
			NewSlug:   uuid.NewString,
		},
		KPI:         kpiRecorder,
		Checksummer: checksummerFromEnv(),
	}

	addr := ":" + strconv.Itoa(intEnv("CITYGRID_PORT", 8080))
	s := server.Default(server.WithHostPorts(addr))
	h.RegisterRoutes(s)

	log.Printf("citygrid server listening on %s (demo city owner: demo-mayor)", addr)
	s.Spin()
}

func mustBuildRepos() (ports.CityRepository, ports.TxManager) {
	dsn := os.Getenv("CITYGRID_DB_DSN")
	if dsn == "" {
		log.Fatal("CITYGRID_DB_DSN is required")
	}
	db, err := gormrepo.OpenPostgres(dsn)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}

	if dir := strings.TrimSpace(os.Getenv("CITYGRID_MIGRATIONS_DIR")); dir != "" {
		if err := gormrepo.ApplyMigrations(context.Background(), db, dir); err != nil {
			log.Fatalf("apply migrations: %v", err)
		}
	}

	cityRepo := gormrepo.NewCityRepo(db)
	seedDemoCity(cityRepo)
	return cityRepo, gormrepo.NewTxManager(db)
}

func seedDemoCity(repo ports.CityRepository) {
	ctx := context.Background()
	_, err := repo.GetFirstByOwner(ctx, "demo-mayor")
	if err == nil {
		return
	}
	if !errors.Is(err, ports.ErrNotFound) {
		log.Fatalf("load demo city: %v (did you run SQL migrations?)", err)
	}
	seed := city.NewState("demo-mayor", city.DefaultCityName, uuid.NewString(), time.Now())
	if createErr := repo.Create(ctx, seed); createErr != nil {
		log.Fatalf("seed demo city: %v (did you run SQL migrations?)", createErr)
	}
}

func loadGuardTuning() tuning.Guard {
	path := strings.TrimSpace(os.Getenv("CITYGRID_GUARD_TUNING"))
	if path == "" {
		return tuning.Default()
	}
	g, err := tuning.Load(path)
	if err != nil {
		log.Printf("guard tuning %s: %v (using defaults for unset keys)", path, err)
	}
	return g
}

func checksummerFromEnv() *city.Checksummer {
	secret := strings.TrimSpace(os.Getenv("CITYGRID_CHECKSUM_SECRET"))
	if secret == "" {
		return nil
	}
	return &city.Checksummer{Secret: []byte(secret)}
}

func pruneLoop(l *ratelimitmem.Limiter, window time.Duration) {
	t := time.NewTicker(window)
	defer t.Stop()
	for now := range t.C {
		l.Prune(now)
	}
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
