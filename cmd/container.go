package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"github.com/incluempleo/vinculo/inclusion/complaint/complaintapi"
	"github.com/incluempleo/vinculo/inclusion/complaint/complaintinfra"
	"github.com/incluempleo/vinculo/inclusion/complaint/complaintsrv"
	"github.com/incluempleo/vinculo/inclusion/dashboard/dashboardapi"
	"github.com/incluempleo/vinculo/inclusion/dashboard/dashboardinfra"
	"github.com/incluempleo/vinculo/inclusion/dashboard/dashboardsrv"
	"github.com/incluempleo/vinculo/inclusion/interview/interviewapi"
	"github.com/incluempleo/vinculo/inclusion/interview/interviewinfra"
	"github.com/incluempleo/vinculo/inclusion/interview/interviewsrv"
	"github.com/incluempleo/vinculo/inclusion/job/jobapi"
	"github.com/incluempleo/vinculo/inclusion/job/jobinfra"
	"github.com/incluempleo/vinculo/inclusion/job/jobsrv"
	"github.com/incluempleo/vinculo/inclusion/library/libraryapi"
	"github.com/incluempleo/vinculo/inclusion/library/libraryinfra"
	"github.com/incluempleo/vinculo/inclusion/library/librarysrv"
	"github.com/incluempleo/vinculo/inclusion/messaging/messagingapi"
	"github.com/incluempleo/vinculo/inclusion/messaging/messaginginfra"
	"github.com/incluempleo/vinculo/inclusion/messaging/messagingsrv"
	"github.com/incluempleo/vinculo/inclusion/quota/quotaapi"
	"github.com/incluempleo/vinculo/inclusion/quota/quotainfra"
	"github.com/incluempleo/vinculo/inclusion/quota/quotasrv"
	"github.com/incluempleo/vinculo/inclusion/report/reportapi"
	"github.com/incluempleo/vinculo/inclusion/report/reportinfra"
	"github.com/incluempleo/vinculo/inclusion/report/reportsrv"
	"github.com/incluempleo/vinculo/inclusion/report/worker"
	"github.com/incluempleo/vinculo/inclusion/training/trainingapi"
	"github.com/incluempleo/vinculo/inclusion/training/traininginfra"
	"github.com/incluempleo/vinculo/inclusion/training/trainingsrv"
	"github.com/incluempleo/vinculo/inclusion/user/userapi"
	"github.com/incluempleo/vinculo/inclusion/user/userinfra"
	"github.com/incluempleo/vinculo/inclusion/user/usersrv"
	"github.com/incluempleo/vinculo/internal/ministry"
	"github.com/incluempleo/vinculo/internal/scheduler"
	"github.com/incluempleo/vinculo/internal/ws"
	"github.com/incluempleo/vinculo/pkg/fsx"
	"github.com/incluempleo/vinculo/pkg/fsx/fsxs3"
	"github.com/incluempleo/vinculo/pkg/iam/auth"
	"github.com/incluempleo/vinculo/pkg/logx"
)

const reportQueueName = "hiring_report_deliveries"

// Container holds all application dependencies
type Container struct {
	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client
	FileSystem fsx.FileSystem
	S3Client   *s3.Client

	// Auth
	TokenService   auth.TokenService
	AuthMiddleware *auth.Middleware

	// Domain Services
	UserService      *usersrv.Service
	JobService       *jobsrv.JobService
	ReportService    *reportsrv.Service
	QuotaService     *quotasrv.Service
	ComplaintService *complaintsrv.Service
	MessagingService *messagingsrv.Service
	InterviewService *interviewsrv.Service
	TrainingService  *trainingsrv.Service
	LibraryService   *librarysrv.Service
	DashboardService *dashboardsrv.Service

	// API Handlers
	UserHandlers      *userapi.Handlers
	JobHandlers       *jobapi.Handlers
	ReportHandlers    *reportapi.Handlers
	QuotaHandlers     *quotaapi.Handlers
	ComplaintHandlers *complaintapi.Handlers
	MessagingHandlers *messagingapi.Handlers
	InterviewHandlers *interviewapi.Handlers
	TrainingHandlers  *trainingapi.Handlers
	LibraryHandlers   *libraryapi.Handlers
	DashboardHandlers *dashboardapi.Handlers

	// Background
	Hub          *ws.Hub
	ReportWorker *worker.ReportWorker
	Scheduler    *scheduler.Scheduler
}

// NewContainer initializes the dependency injection container
func NewContainer() *Container {
	c := &Container{}
	c.initInfrastructure()
	c.initServices()
	return c
}

func (c *Container) initInfrastructure() {
	// 1. Database Connection
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASS")
	dbName := os.Getenv("DB_NAME")
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPass, dbName)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	c.DB = db

	// 2. Redis Connection
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASS"),
		DB:       0,
	})
	if _, err := c.Redis.Ping(context.Background()).Result(); err != nil {
		logx.Warnf("Failed to connect to Redis: %v", err)
	}

	// 3. AWS S3 Configuration
	awsRegion := os.Getenv("AWS_REGION")
	awsBucket := os.Getenv("AWS_BUCKET")
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(awsRegion))
	if err != nil {
		logx.Fatalf("unable to load SDK config, %v", err)
	}
	c.S3Client = s3.NewFromConfig(cfg)
	c.FileSystem = fsxs3.NewS3FileSystem(c.S3Client, awsBucket, "uploads")

	// 4. Auth
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logx.Warn("JWT_SECRET is not set, using default (unsafe for production)")
		jwtSecret = "super-secret-key-please-change-me-in-production"
	}
	c.TokenService = auth.NewJWTService(
		jwtSecret,
		envDuration("JWT_TTL", 24*time.Hour),
		"vinculo",
	)
	c.AuthMiddleware = auth.NewMiddleware(c.TokenService)
}

func (c *Container) initServices() {
	// --- Repositories ---
	userRepo := userinfra.NewPostgresUserRepository(c.DB)
	jobRepo := jobinfra.NewPostgresJobRepository(c.DB)
	auditRepo := jobinfra.NewPostgresAuditRepository(c.DB)
	reportRepo := reportinfra.NewPostgresReportRepository(c.DB)
	quotaRepo := quotainfra.NewPostgresQuotaRepository(c.DB)
	snapshotRepo := quotainfra.NewPostgresSnapshotRepository(c.DB)
	complaintRepo := complaintinfra.NewPostgresComplaintRepository(c.DB)
	historyRepo := complaintinfra.NewPostgresHistoryRepository(c.DB)
	conversationRepo := messaginginfra.NewPostgresConversationRepository(c.DB)
	messageRepo := messaginginfra.NewPostgresMessageRepository(c.DB)
	interviewRepo := interviewinfra.NewPostgresInterviewRepository(c.DB)
	courseRepo := traininginfra.NewPostgresCourseRepository(c.DB)
	lessonRepo := traininginfra.NewPostgresLessonRepository(c.DB)
	enrollmentRepo := traininginfra.NewPostgresEnrollmentRepository(c.DB)
	progressRepo := traininginfra.NewPostgresProgressRepository(c.DB)
	categoryRepo := libraryinfra.NewPostgresCategoryRepository(c.DB)
	resourceRepo := libraryinfra.NewPostgresResourceRepository(c.DB)
	bookmarkRepo := libraryinfra.NewPostgresBookmarkRepository(c.DB)
	statsRepo := dashboardinfra.NewPostgresStatsRepository(c.DB)

	// --- Infrastructure Services ---
	passwordSvc := auth.NewBcryptPasswordService()
	reportQueue := reportinfra.NewRedisQueue(c.Redis, reportQueueName)
	ministryClient := ministry.NewSimulatedClient(
		envDuration("MINISTRY_LATENCY", time.Second),
		envFloat("MINISTRY_SUCCESS_RATE", 0.95),
	)

	// Websocket hub doubles as the messaging notifier
	c.Hub = ws.NewHub()

	// --- Domain Services ---
	c.UserService = usersrv.NewService(userRepo, passwordSvc, c.TokenService, envDuration("JWT_TTL", 24*time.Hour))
	c.JobService = jobsrv.NewJobService(jobRepo, auditRepo)
	c.ReportService = reportsrv.NewService(reportRepo, userRepo, jobRepo, ministryClient, c.FileSystem, reportQueue)
	c.QuotaService = quotasrv.NewService(quotaRepo, snapshotRepo, reportRepo)
	c.ComplaintService = complaintsrv.NewService(complaintRepo, historyRepo, c.FileSystem)
	c.MessagingService = messagingsrv.NewService(conversationRepo, messageRepo, userRepo, c.FileSystem, c.Hub)
	c.InterviewService = interviewsrv.NewService(interviewRepo, userRepo)
	c.TrainingService = trainingsrv.NewService(courseRepo, lessonRepo, enrollmentRepo, progressRepo, userRepo, c.FileSystem)
	c.LibraryService = librarysrv.NewService(categoryRepo, resourceRepo, bookmarkRepo, c.FileSystem)
	c.DashboardService = dashboardsrv.NewService(jobRepo, reportRepo, complaintRepo, statsRepo)

	// --- Handlers ---
	c.UserHandlers = userapi.NewHandlers(c.UserService)
	c.JobHandlers = jobapi.NewHandlers(c.JobService)
	c.ReportHandlers = reportapi.NewHandlers(c.ReportService)
	c.QuotaHandlers = quotaapi.NewHandlers(c.QuotaService)
	c.ComplaintHandlers = complaintapi.NewHandlers(c.ComplaintService)
	c.MessagingHandlers = messagingapi.NewHandlers(c.MessagingService)
	c.InterviewHandlers = interviewapi.NewHandlers(c.InterviewService)
	c.TrainingHandlers = trainingapi.NewHandlers(c.TrainingService)
	c.LibraryHandlers = libraryapi.NewHandlers(c.LibraryService)
	c.DashboardHandlers = dashboardapi.NewHandlers(c.DashboardService)

	// --- Background ---
	c.ReportWorker = worker.NewReportWorker(c.ReportService, reportQueue, envInt("REPORT_WORKERS", 3))
	c.Scheduler = scheduler.New(
		c.ReportService,
		c.QuotaService,
		envCron("RETRY_CRON", scheduler.DefaultRetrySpec),
		envCron("SNAPSHOT_CRON", scheduler.DefaultSnapshotSpec),
	)
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		logx.Warnf("Invalid %s %q, using %s", key, raw, fallback)
		return fallback
	}
	return d
}

func envFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		logx.Warnf("Invalid %s %q, using %g", key, raw, fallback)
		return fallback
	}
	return f
}

func envCron(key, fallback string) string {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	if _, err := cron.ParseStandard(raw); err != nil {
		logx.Warnf("Invalid %s %q, using %q", key, raw, fallback)
		return fallback
	}
	return raw
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		logx.Warnf("Invalid %s %q, using %d", key, raw, fallback)
		return fallback
	}
	return n
}
