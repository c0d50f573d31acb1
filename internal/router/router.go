package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"fittrack/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	workoutHandler *handler.WorkoutPlanHandler,
	nutritionHandler *handler.NutritionPlanHandler,
	progressHandler *handler.ProgressHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Auth
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.POST("/logout", authHandler.Logout)
	e.GET("/me", authHandler.Me)

	// Users
	e.GET("/users", userHandler.ListUsers)
	e.GET("/users/:id", userHandler.GetUser)

	// Workout plans
	e.POST("/workout_plans", workoutHandler.Create)
	e.GET("/workout_plans", workoutHandler.List)
	e.GET("/workout_plans/:id", workoutHandler.Get)
	e.PATCH("/workout_plans/:id", workoutHandler.Patch)
	e.DELETE("/workout_plans/:id", workoutHandler.Delete)

	// Nutrition plans
	e.POST("/nutrition_plans", nutritionHandler.Create)
	e.GET("/nutrition_plans", nutritionHandler.List)
	e.GET("/nutrition_plans/:id", nutritionHandler.Get)
	e.PATCH("/nutrition_plans/:id", nutritionHandler.Patch)
	e.DELETE("/nutrition_plans/:id", nutritionHandler.Delete)

	// Progress tracking
	e.POST("/progress_tracking", progressHandler.Create)
	e.GET("/progress_tracking", progressHandler.List)
	e.GET("/progress_tracking/:id", progressHandler.Get)
	e.PATCH("/progress_tracking/:id", progressHandler.Patch)
	e.DELETE("/progress_tracking/:id", progressHandler.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
