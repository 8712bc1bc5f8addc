package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/Muhol/Olabs-sub000/internal/service"
	"github.com/Muhol/Olabs-sub000/pkg/response"
)

// TimetableViewHandler 课表只读视图 HTTP 处理器
type TimetableViewHandler struct {
	projectionSvc service.SlotProjectionService
	exportSvc     service.TimetableExportService
}

// NewTimetableViewHandler 创建 TimetableViewHandler
func NewTimetableViewHandler(projectionSvc service.SlotProjectionService, exportSvc service.TimetableExportService) *TimetableViewHandler {
	return &TimetableViewHandler{projectionSvc: projectionSvc, exportSvc: exportSvc}
}

// StreamWeek 分流周视图
// GET /api/v1/timetable/streams/:id/week
func (h *TimetableViewHandler) StreamWeek(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "分流ID不能为空")
		return
	}

	view, err := h.projectionSvc.WeekView(c.Request.Context(), id)
	if err != nil {
		handleTimetableError(c, err)
		return
	}

	response.OK(c, view)
}

// TeacherWeek 教师周视图
// GET /api/v1/timetable/teachers/:id/week
func (h *TimetableViewHandler) TeacherWeek(c *gin.Context) {
	view, err := h.projectionSvc.TeacherWeekView(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleTimetableError(c, err)
		return
	}

	response.OK(c, view)
}

// ExportStreamWeek 导出分流周课表
// GET /api/v1/timetable/streams/:id/week/export
func (h *TimetableViewHandler) ExportStreamWeek(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "分流ID不能为空")
		return
	}

	buf, filename, err := h.exportSvc.ExportWeekView(c.Request.Context(), id)
	if err != nil {
		handleTimetableError(c, err)
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
