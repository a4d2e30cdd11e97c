package routes

import (
	"github.com/gin-contrib/cors"
	ginlogger "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.New()

	// Request logging middleware
	r.Use(ginlogger.SetLogger())

	// Recovery middleware
	r.Use(gin.Recovery())

	// Accept any dynamic origin (useful for Flutter dev emulators)
	r.Use(cors.New(cors.Config{
		AllowOriginFunc:  func(origin string) bool { return true },
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	AuthRoutes(r)
	DonationRoutes(r)
	DonorRoutes(r)
	NgoRoutes(r)
	VolunteerRoutes(r)
	AdminRoutes(r)
	UserRoutes(r)

	return r
}
