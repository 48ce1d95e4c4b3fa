package routes

import (
	"github.com/dream2405/healthy-meal-backend/controllers"
	"github.com/dream2405/healthy-meal-backend/middlewares"

	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	auth := r.Group("/auth")
	{
		auth.POST("/signup", controllers.Signup)
		auth.POST("/login", controllers.Login)
	}

	api := r.Group("/")
	api.Use(middlewares.AuthMiddleware())
	{
		api.GET("/foods", controllers.SearchFoods)
		api.GET("/foods/:foodId", controllers.GetFood)
		api.GET("/diet-criteria", controllers.GetDietCriterion)
		api.GET("/ws", controllers.ConnectWS)

		users := api.Group("/users/:userId")
		{
			users.GET("", controllers.GetUser)
			users.DELETE("", controllers.DeleteUser)
			users.GET("/criterion-weight", controllers.GetCriterionWeight)
			users.PUT("/criterion-weight", controllers.PutCriterionWeight)

			meals := users.Group("/meal-info")
			{
				meals.POST("", controllers.UploadMeal)
				meals.GET("", controllers.ListMeals)
				meals.GET("/:mealId", controllers.GetMeal)
				meals.POST("/:mealId/analyze", controllers.AnalyzeMeal)
				meals.PUT("/:mealId/foods", controllers.ConfirmMealFoods)
				meals.PATCH("/:mealId", controllers.UpdateMeal)
				meals.DELETE("/:mealId", controllers.DeleteMeal)
			}

			intakes := users.Group("/daily-intake")
			{
				intakes.GET("", controllers.ListDailyIntakes)
				intakes.GET("/:intakeId", controllers.GetDailyIntake)
				intakes.PUT("/score", controllers.UpdateDailyScore)
				intakes.DELETE("/:intakeId", controllers.DeleteDailyIntake)
			}
		}
	}

	return r
}
