package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/attendance-portal/config"
	"github.com/yeremiapane/attendance-portal/controllers"
	"github.com/yeremiapane/attendance-portal/middlewares"
	"github.com/yeremiapane/attendance-portal/models"
	"github.com/yeremiapane/attendance-portal/utils"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, cfg *config.Config, tokens *utils.TokenIssuer) *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxyList()); err != nil {
		utils.ErrorLogger.WithError(err).Error("Invalid trusted proxies, trusting none")
		_ = r.SetTrustedProxies(nil)
	}

	r.Use(gin.Recovery())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(cfg.AllowedOrigins()))
	r.Use(middlewares.LoggerMiddleware())

	authCtrl := controllers.NewAuthController(db, tokens)
	userCtrl := controllers.NewUserController(db)
	attendanceCtrl := controllers.NewAttendanceController(db, cfg.Location())
	complaintCtrl := controllers.NewComplaintController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	limiter := middlewares.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	public := r.Group("/api/auth")
	public.Use(limiter.RateLimit())
	{
		public.POST("/register", authCtrl.Register)
		public.POST("/login", authCtrl.Login)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware(tokens))

	attendance := api.Group("/attendance")
	{
		attendance.POST("/mark-attendance", attendanceCtrl.MarkAttendance)
		attendance.GET("", attendanceCtrl.GetAttendance)
		attendance.GET("/monthly", attendanceCtrl.GetMonthlyAttendance)
		attendance.GET("/export", attendanceCtrl.ExportAttendance)
	}

	complaint := api.Group("/complaint")
	{
		complaint.POST("", complaintCtrl.RaiseComplaint)
		complaint.GET("", complaintCtrl.GetComplaints)
		complaint.GET("/user", complaintCtrl.GetUserComplaints)
		complaint.PATCH("/:id", middlewares.RequireRoles(models.RoleAdmin), complaintCtrl.UpdateComplaint)
	}

	users := api.Group("/users")
	{
		users.GET("/supervisors", userCtrl.GetSupervisors)
		users.GET("/profile", userCtrl.GetProfile)
	}

	return r
}
