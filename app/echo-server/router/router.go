package router

import (
	"botmart/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc, selfOrAdmin echo.MiddlewareFunc) {
	users := api.Group("/users")

	users.GET("/email-verification/:code", handler.VerifyEmail)
	users.POST("/register", handler.Register)
	users.POST("/login", handler.Login)
	users.POST("/refresh", handler.RefreshToken)

	users.POST("/logout", handler.Logout, authRequired)
	users.PUT("/:id", handler.UpdateUser, authRequired, selfOrAdmin)
	users.GET("", handler.GetAllUsers, authRequired, adminOnly)
	users.GET("/:id", handler.GetUserByID, authRequired, selfOrAdmin)
	users.DELETE("/:id", handler.DeleteUser, authRequired, adminOnly)
}

func SetupBotRoutes(api *echo.Group, handler *rest.BotHandler, authRequired echo.MiddlewareFunc, developerOnly echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	bots := api.Group("/bots")

	bots.GET("", handler.GetApprovedBots)
	bots.GET("/:id", handler.GetBotByID)

	bots.POST("", handler.CreateBot, authRequired, developerOnly)
	bots.PUT("/:id", handler.UpdateBot, authRequired, developerOnly)
	bots.DELETE("/:id", handler.DeleteBot, authRequired, developerOnly)

	bots.GET("/all", handler.GetAllBots, authRequired, adminOnly)
	bots.PUT("/:id/approve", handler.ApproveBot, authRequired, adminOnly)
	bots.PUT("/:id/reject", handler.RejectBot, authRequired, adminOnly)
}

func SetupCategoryRoutes(api *echo.Group, handler *rest.CategoryHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	categories := api.Group("/categories")

	categories.GET("", handler.GetAllCategories)
	categories.GET("/:id", handler.GetCategoryByID)

	categories.POST("", handler.CreateCategory, authRequired, adminOnly)
	categories.PUT("/:id", handler.UpdateCategory, authRequired, adminOnly)
	categories.DELETE("/:id", handler.DeleteCategory, authRequired, adminOnly)
}

func SetupReviewRoutes(api *echo.Group, handler *rest.ReviewHandler, authRequired echo.MiddlewareFunc) {
	reviews := api.Group("/reviews")

	reviews.GET("/bot/:botId", handler.GetReviewsByBot)

	reviews.POST("", handler.CreateReview, authRequired)
	reviews.GET("/me", handler.GetMyReviews, authRequired)
}

func SetupPurchaseRoutes(api *echo.Group, handler *rest.PurchaseHandler, authRequired echo.MiddlewareFunc) {
	purchases := api.Group("/purchases", authRequired)

	purchases.POST("", handler.PurchaseBot)
	purchases.GET("/:id", handler.GetPurchaseByID)
	purchases.GET("/me", handler.GetMyPurchases)
}

func SetupInteractionRoutes(api *echo.Group, handler *rest.InteractionHandler, authRequired echo.MiddlewareFunc) {
	interactions := api.Group("/interactions", authRequired)

	interactions.POST("", handler.RecordInteraction)
	interactions.GET("/me", handler.GetMyInteractions)
}

func SetupRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler, authRequired echo.MiddlewareFunc) {
	reco := api.Group("/recommendations")

	reco.GET("/similar/:botId", handler.SimilarBots)
	reco.GET("/trending", handler.Trending)

	reco.GET("/user", handler.Recommend, authRequired)
	reco.GET("/user/debug", handler.DebugRecommend, authRequired)
	reco.GET("/feed", handler.PersonalizedFeed, authRequired)
}
