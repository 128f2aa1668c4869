package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/room-scheduler/internal/address"
	"github.com/BruksfildServices01/room-scheduler/internal/audit"
	"github.com/BruksfildServices01/room-scheduler/internal/config"
	"github.com/BruksfildServices01/room-scheduler/internal/debounce"
	"github.com/BruksfildServices01/room-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/room-scheduler/internal/export"
	"github.com/BruksfildServices01/room-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/room-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/room-scheduler/internal/middleware"
	"github.com/BruksfildServices01/room-scheduler/internal/notify"
	"github.com/BruksfildServices01/room-scheduler/internal/session"
	ucAppointment "github.com/BruksfildServices01/room-scheduler/internal/usecase/appointment"
	"github.com/BruksfildServices01/room-scheduler/internal/web"
)

// Deps are the long-lived singletons owned by main.
type Deps struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Config *config.Config
	Audit  *audit.Dispatcher
	Mailer *notify.Mailer
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	metrics := middleware.NewMetrics()

	r.Use(middleware.RequestLogger())
	r.Use(metrics.Middleware())
	r.Use(middleware.CORSMiddleware(cfg.AllowOrigins))

	r.SetHTMLTemplate(web.Templates())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	userRepo := infraRepo.NewUserGormRepository(d.DB)
	roomRepo := infraRepo.NewRoomGormRepository(d.DB)
	auditLogRepo := infraRepo.NewAuditLogGormRepository(d.DB)

	sessions := session.NewResolver(
		session.NewManager(cfg.JWTSecret, cfg.JWTTTL),
		session.NewRedisRevoker(d.Redis),
	)

	cepClient := address.NewViaCEPClient(cfg.ViaCEPBaseURL, address.NewRedisCache(d.Redis), cfg.CEPCacheTTL)
	cepSuggester := address.NewSuggester(cepClient, debounce.New(cfg.CEPSettleDelay))

	var store export.ObjectStore
	if cfg.S3.Enabled() {
		store = export.NewS3Store(cfg.S3)
	}
	logExporter := export.NewLogExporter(store)

	signInLimiter := middleware.NewIPRateLimiter(cfg.SignInRatePerSec, cfg.SignInBurst)

	// ======================================================
	// USE CASES (APPOINTMENTS)
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(appointmentRepo, d.Audit, d.Mailer)
	changeStatusUC := ucAppointment.NewChangeStatus(appointmentRepo, d.Audit, d.Mailer)
	listAppointmentsUC := ucAppointment.NewListAppointments(appointmentRepo)
	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(userRepo, sessions, d.Audit)
	meHandler := handlers.NewMeHandler(userRepo, d.Audit)
	userHandler := handlers.NewUserHandler(userRepo, d.Audit)
	roomHandler := handlers.NewRoomHandler(roomRepo, d.Audit)
	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		changeStatusUC,
		listAppointmentsUC,
		availabilityUC,
	)
	auditLogsHandler := handlers.NewAuditLogsHandler(auditLogRepo, logExporter, d.Audit)
	addressHandler := handlers.NewAddressHandler(cepClient, cepSuggester)

	publicWebHandler := handlers.NewPublicWebHandler(authHandler, cfg.IsProduction())
	appWebHandler := handlers.NewAppWebHandler(
		appointmentHandler,
		roomHandler,
		auditLogsHandler,
		userHandler,
		meHandler,
	)

	auth := middleware.AuthMiddleware(sessions, userRepo)
	adminOnly := middleware.RequireAdmin()
	canBook := middleware.RequirePermission(identity.PermissionAppointments)
	canReadLogs := middleware.RequirePermission(identity.PermissionLogs)

	// ======================================================
	// INFRA ENDPOINTS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metrics.Handler())

	// ======================================================
	// API (JSON)
	// ======================================================

	// ------------------------------
	// Sessions / sign-up
	// ------------------------------
	r.POST("/sessions/password", signInLimiter.Middleware(), authHandler.Login)
	r.POST("/sessions/logout", auth, authHandler.Logout)
	r.POST("/users", authHandler.Register)

	// ------------------------------
	// Address (public, used by sign-up)
	// ------------------------------
	r.GET("/address/suggest", addressHandler.Suggest)
	r.GET("/address/:cep", addressHandler.Lookup)

	// ------------------------------
	// Private API
	// ------------------------------
	secured := r.Group("/")
	secured.Use(auth)
	{
		secured.GET("/me", meHandler.GetMe)
		secured.PUT("/me", meHandler.UpdateMe)
		secured.GET("/profile", meHandler.GetMe)

		secured.GET("/users", adminOnly, userHandler.List)
		secured.GET("/users/:id", adminOnly, userHandler.Get)
		secured.PUT("/users/:id", adminOnly, userHandler.Update)

		secured.GET("/rooms", roomHandler.List)
		secured.POST("/rooms", adminOnly, roomHandler.Create)

		secured.GET("/schedules", canBook, appointmentHandler.List)
		secured.POST("/schedules", canBook, appointmentHandler.Create)
		secured.GET("/schedules/availability", canBook, appointmentHandler.Availability)
		secured.PATCH("/schedules/:id/status", canBook, appointmentHandler.UpdateStatus)

		secured.GET("/logs", canReadLogs, auditLogsHandler.List)
		secured.POST("/logs/export", adminOnly, auditLogsHandler.Export)
	}

	// ======================================================
	// WEB (HTML)
	// ======================================================
	webApp := r.Group("/")
	webApp.Use(middleware.WebGuard(sessions, userRepo))
	{
		webApp.GET("/", publicWebHandler.Root)

		webApp.GET("/signin", publicWebHandler.SignInPage)
		webApp.POST("/signin", signInLimiter.Middleware(), publicWebHandler.SignIn)
		webApp.GET("/signin/admin", publicWebHandler.AdminSignInPage)
		webApp.POST("/signin/admin", signInLimiter.Middleware(), publicWebHandler.AdminSignIn)
		webApp.GET("/signup", publicWebHandler.SignUpPage)
		webApp.POST("/signup", publicWebHandler.SignUp)
		webApp.POST("/signout", publicWebHandler.SignOut)

		dash := webApp.Group("/dashboard/:id")
		{
			dash.GET("", appWebHandler.Dashboard)
			dash.POST("/appointments", appWebHandler.CreateAppointment)
			dash.POST("/appointments/:appointmentId/status", appWebHandler.UpdateAppointmentStatus)
			dash.POST("/settings", appWebHandler.SaveSettings)

			dash.GET("/logs", appWebHandler.Logs)
			dash.POST("/logs/export", appWebHandler.ExportLogs)

			dash.GET("/profile", appWebHandler.Profile)
			dash.POST("/profile", appWebHandler.UpdateProfile)

			dash.GET("/users", appWebHandler.Users)
			dash.POST("/users/:userId", appWebHandler.UpdateUser)
		}
	}
}
