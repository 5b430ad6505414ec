package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/incluempleo/vinculo/inclusion/complaint/complaintapi"
	"github.com/incluempleo/vinculo/inclusion/dashboard/dashboardapi"
	"github.com/incluempleo/vinculo/inclusion/interview/interviewapi"
	"github.com/incluempleo/vinculo/inclusion/job/jobapi"
	"github.com/incluempleo/vinculo/inclusion/library/libraryapi"
	"github.com/incluempleo/vinculo/inclusion/messaging/messagingapi"
	"github.com/incluempleo/vinculo/inclusion/quota/quotaapi"
	"github.com/incluempleo/vinculo/inclusion/report/reportapi"
	"github.com/incluempleo/vinculo/inclusion/training/trainingapi"
	"github.com/incluempleo/vinculo/inclusion/user/userapi"
	"github.com/incluempleo/vinculo/internal/ws"
	"github.com/incluempleo/vinculo/pkg/errx"
	"github.com/incluempleo/vinculo/pkg/logx"
)

func main() {
	// 1. Initialize Logger
	logx.SetLevel(logx.LevelInfo)
	logx.Info("Starting Vinculo API Server...")

	// 2. Initialize Dependency Container
	container := NewContainer()
	defer container.DB.Close()
	defer container.Redis.Close()

	// 3. Create Fiber App with Config
	app := fiber.New(fiber.Config{
		AppName:               "Vinculo API",
		DisableStartupMessage: true,
		ErrorHandler:          globalErrorHandler,
	})

	// 4. Global Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*", // Configure for production
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, PATCH, HEAD",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// 5. Health Check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"db":     container.DB.Ping() == nil,
			"redis":  container.Redis.Ping(c.Context()).Err() == nil,
		})
	})

	// 6. Register Routes
	userapi.RegisterRoutes(app, container.UserHandlers, container.AuthMiddleware)
	jobapi.RegisterRoutes(app, container.JobHandlers, container.AuthMiddleware)
	reportapi.RegisterRoutes(app, container.ReportHandlers, container.AuthMiddleware)
	quotaapi.RegisterRoutes(app, container.QuotaHandlers, container.AuthMiddleware)
	complaintapi.RegisterRoutes(app, container.ComplaintHandlers, container.AuthMiddleware)
	messagingapi.RegisterRoutes(app, container.MessagingHandlers, container.AuthMiddleware)
	interviewapi.RegisterRoutes(app, container.InterviewHandlers, container.AuthMiddleware)
	trainingapi.RegisterRoutes(app, container.TrainingHandlers, container.AuthMiddleware)
	libraryapi.RegisterRoutes(app, container.LibraryHandlers, container.AuthMiddleware)
	dashboardapi.RegisterRoutes(app, container.DashboardHandlers, container.AuthMiddleware)

	// 7. Background Workers
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go container.Hub.Run()
	container.ReportWorker.Start(ctx)
	if err := container.Scheduler.Start(ctx); err != nil {
		logx.Fatalf("Scheduler error: %v", err)
	}

	// 8. Websocket Listener
	wsPort := os.Getenv("WS_PORT")
	if wsPort == "" {
		wsPort = "8081"
	}
	wsMux := http.NewServeMux()
	wsMux.HandleFunc("/ws", ws.Handler(container.Hub, container.TokenService))
	wsServer := &http.Server{
		Addr:              ":" + wsPort,
		Handler:           wsMux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logx.Infof("Websocket listener on port %s", wsPort)
		if err := wsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatalf("Websocket server error: %v", err)
		}
	}()

	// 9. Start Server with Graceful Shutdown
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	go func() {
		logx.Infof("Server listening on port %s", port)
		if err := app.Listen(":" + port); err != nil {
			logx.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	<-sig
	logx.Info("Shutting down server...")

	cancel()
	container.Scheduler.Stop()
	container.Hub.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := wsServer.Shutdown(shutdownCtx); err != nil {
		logx.Errorf("Websocket server forced to shutdown: %v", err)
	}
	if err := app.Shutdown(); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}

	logx.Info("Server exited")
}

// globalErrorHandler converts internal errors to standard HTTP responses
func globalErrorHandler(c *fiber.Ctx, err error) error {
	// If it's a Fiber error (e.g., 404 handler not found)
	if e, ok := err.(*fiber.Error); ok {
		return c.Status(e.Code).JSON(fiber.Map{
			"error": e.Message,
			"code":  e.Code,
		})
	}

	// If it's our custom errx.Error
	if e, ok := err.(*errx.Error); ok {
		return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
	}

	// Default unknown error
	logx.Errorf("Internal Server Error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Internal Server Error",
		"type":    "INTERNAL",
		"code":    "INTERNAL_ERROR",
		"message": "An unexpected error occurred",
	})
}
