package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/lurelab/lurelab-backend/usecases"
	"github.com/lurelab/lurelab-backend/utils"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Configuration struct {
	Env     string
	AppName string
	Port    string
}

func InitRouter(conf Configuration, uc usecases.Usecases, logger *slog.Logger) *gin.Engine {
	if conf.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(utils.StoreLoggerInContextMiddleware(logger))
	r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	addRoutes(r, uc)
	return r
}

func NewServer(router *gin.Engine, port string) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%s", port),
		WriteTimeout: 60 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
		Handler:      router,
	}
}
