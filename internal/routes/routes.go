package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stianfs/fitness-app/internal/config"
	"github.com/stianfs/fitness-app/internal/handlers"
	"github.com/stianfs/fitness-app/internal/middleware"
	"github.com/stianfs/fitness-app/internal/repository"
	"github.com/stianfs/fitness-app/internal/services"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool, rdb *redis.Client) {
	userRepo := repository.NewUserRepository(db)
	workoutRepo := repository.NewWorkoutRepository(db)
	classRepo := repository.NewClassRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret)
	userHandler := handlers.NewUserHandler(userRepo)
	workoutHandler := handlers.NewWorkoutHandler(workoutRepo)
	classHandler := handlers.NewClassHandler(classRepo, rdb)
	bookingService := services.NewBookingService(db, bookingRepo, classRepo)
	bookingHandler := handlers.NewBookingHandler(bookingService)

	authRequired := middleware.AuthRequired(cfg.JWTSecret)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/signup", authHandler.Signup)
	auth.Post("/signin", authHandler.Signin)
	auth.Get("/me", authRequired, authHandler.Me)

	users := api.Group("/users", authRequired)
	users.Put("/me", userHandler.UpdateProfile)
	users.Put("/membership", userHandler.UpdateMembership)

	workouts := api.Group("/workouts", authRequired)
	workouts.Get("", workoutHandler.ListWorkouts)
	workouts.Post("", workoutHandler.CreateWorkout)
	workouts.Get("/stats", workoutHandler.GetStats)
	workouts.Get("/:id", workoutHandler.GetWorkout)
	workouts.Put("/:id", workoutHandler.UpdateWorkout)
	workouts.Delete("/:id", workoutHandler.DeleteWorkout)

	classes := api.Group("/classes")
	classes.Get("", classHandler.ListClasses)
	classes.Get("/:id", classHandler.GetClass)

	bookings := api.Group("/bookings", authRequired)
	bookings.Post("", bookingHandler.CreateBooking)
	bookings.Get("", bookingHandler.ListBookings)
	bookings.Get("/:id", bookingHandler.GetBooking)
	bookings.Put("/:id/cancel", bookingHandler.CancelBooking)
}
