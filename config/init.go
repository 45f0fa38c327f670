package config

import (
	"hotel/constants"
	middlewares "hotel/middleware"
	"hotel/services/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/robfig/cron/v3"
)

// InitApp tạo gin engine với CORS và middleware chung, cùng melody và cron
func InitApp(cfg *Config, log logger.Logger) (*gin.Engine, *melody.Melody, *cron.Cron) {
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(cors.New(corsConfig(cfg.CORSOrigins)))
	router.Use(middlewares.Recovery(log), middlewares.RequestID(), middlewares.RequestLogger(log))

	router.SetTrustedProxies(nil)

	m := melody.New()
	c := cron.New()

	return router, m, c
}

func corsConfig(origins []string) cors.Config {
	configCors := cors.DefaultConfig()
	configCors.AddAllowHeaders(constants.HeaderAuthorization, constants.HeaderRequestID)
	configCors.AddExposeHeaders(constants.HeaderRequestID)
	configCors.AllowCredentials = true
	if len(origins) == 0 {
		configCors.AllowOriginFunc = func(origin string) bool {
			return true
		}
		return configCors
	}
	configCors.AllowOrigins = origins
	return configCors
}
