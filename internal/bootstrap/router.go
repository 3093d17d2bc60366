package bootstrap

import (
	"database/sql"
	"time"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/swoop-build/swoop-backend/config"
	"github.com/swoop-build/swoop-backend/internal/accounts"
	accountshttp "github.com/swoop-build/swoop-backend/internal/accounts/http"
	httpapi "github.com/swoop-build/swoop-backend/internal/api/http"
	apimw "github.com/swoop-build/swoop-backend/internal/api/http/middleware"
	authmw "github.com/swoop-build/swoop-backend/internal/auth/middleware"
	"github.com/swoop-build/swoop-backend/internal/cache"
	projectshttp "github.com/swoop-build/swoop-backend/internal/projects/http"
	"github.com/swoop-build/swoop-backend/internal/projects/repository"
	"github.com/swoop-build/swoop-backend/internal/projects/service"
	"github.com/swoop-build/swoop-backend/internal/uploads"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	SQL         *sql.DB
	Pool        *pgxpool.Pool
	Redis       *redis.Client
	AuthClient  *fbauth.Client
	Storage     config.StorageConfig
	SnapshotTTL time.Duration
	Log         *logrus.Logger
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(apimw.RequestIDMiddleware(dep.Log))
	r.Use(cors.Default())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.SQL, dep.Redis)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	api.Use(apimw.RateLimit(rate.Limit(20), 40))

	if dep.AuthClient != nil {
		api.Use(authmw.FirebaseAuthMiddleware(dep.AuthClient))
	} else {
		api.Use(authmw.DevUser())
	}

	accountRepo := accounts.NewRepo(dep.Pool)
	api.Use(authmw.WithAccount(accountRepo))

	accountshttp.NewHandler(accountRepo, dep.Log).Register(api)

	var snapCache service.SnapshotCache
	if dep.Redis != nil {
		snapCache = cache.NewSnapshotCache(dep.Redis, dep.SnapshotTTL, dep.Log)
	}
	projectRepo := repository.NewProjectRepository(dep.SQL)
	projectSvc := service.NewProjectService(projectRepo, snapCache, dep.Log)
	projectshttp.NewHandler(projectSvc, dep.Log).Register(api)

	signer := uploads.NewSigner(dep.Storage)
	uploads.NewHandler(signer, dep.Log).Register(api)

	return r
}
