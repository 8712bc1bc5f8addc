package router

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Muhol/Olabs-sub000/config"
	"github.com/Muhol/Olabs-sub000/internal/api/handler"
	"github.com/Muhol/Olabs-sub000/internal/api/middleware"
	"github.com/Muhol/Olabs-sub000/internal/dto"
	"github.com/Muhol/Olabs-sub000/pkg/jwt"
	"github.com/Muhol/Olabs-sub000/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := dto.RegisterValidations(v); err != nil {
			return nil, fmt.Errorf("注册校验规则失败: %w", err)
		}
	}

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	bulkLimit := middleware.RateLimit(rdb, cfg.Timetable.BulkRateLimit, time.Minute)
	admin := middleware.RoleAuth("admin")

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuth(jwtMgr))
	{
		// 课表模块
		timetable := v1.Group("/timetable")
		{
			slots := timetable.Group("/slots")
			{
				slots.POST("/bulk", admin, bulkLimit, h.Slot.BulkCreate)
				slots.POST("/bulk-delete", admin, bulkLimit, h.Slot.BulkDelete)
				slots.GET("/:id", h.Slot.GetSlot)
				slots.DELETE("/:id", admin, h.Slot.DeleteSlot)
				slots.PUT("/:id/subject", admin, h.Slot.ReassignSubject)
			}

			timetable.GET("/streams/:id/week", h.View.StreamWeek)
			timetable.GET("/streams/:id/week/export", h.View.ExportStreamWeek)
			timetable.GET("/teachers/:id/week", h.View.TeacherWeek)
		}

		// 下拉数据
		v1.GET("/streams", h.Lookup.ListStreams)
		v1.GET("/subjects", h.Lookup.ListSubjects)
	}

	return r, nil
}
