package api

import (
	"PeerChain/internal/api/middleware"
	"PeerChain/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		userGroup := apiGroup.Group("/user")
		{
			// 无需登录即可访问的接口
			userGroup.POST("/register", group.UserHandler.Register)
			userGroup.POST("/login", group.UserHandler.Login)
			userGroup.GET("/:user_id/home", group.UserHandler.GetUserByID)

			authGroup := userGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/logout", group.UserHandler.Logout)
				authGroup.GET("/info", group.UserHandler.GetUserInfo)
				authGroup.PUT("/info", group.UserHandler.UpdateUserInfo)
				authGroup.GET("/points/history", group.UserHandler.GetPointHistory)
			}
		}

		paperGroup := apiGroup.Group("/papers")
		{
			paperGroup.GET("", group.PaperHandler.ListPapers)
			paperGroup.GET("/:paper_id", group.PaperHandler.GetPaper)

			authGroup := paperGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.PaperHandler.SubmitPaper)
				authGroup.POST("/:paper_id/reviews", group.PaperHandler.SubmitReview)
				authGroup.POST("/:paper_id/reviews/:review_id/accept", group.PaperHandler.AcceptReview)
			}
		}

		lbGroup := apiGroup.Group("/leaderboard")
		{
			lbGroup.GET("/current", group.LeaderboardHandler.GetCurrent)
			lbGroup.GET("/:year/:month", group.LeaderboardHandler.GetByPeriod)

			authGroup := lbGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.GET("/user/:user_id/current", group.LeaderboardHandler.GetUserRankCurrent)
				authGroup.GET("/user/:user_id/:year/:month", group.LeaderboardHandler.GetUserRank)
				authGroup.POST("/generate/:year/:month", group.LeaderboardHandler.Generate)
			}
		}
	}

	return r
}
