package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Muhol/Olabs-sub000/internal/dto"
	"github.com/Muhol/Olabs-sub000/internal/service"
	pkgerrors "github.com/Muhol/Olabs-sub000/pkg/errors"
	"github.com/Muhol/Olabs-sub000/pkg/response"
)

// TimetableSlotHandler 课表时段写操作 HTTP 处理器
type TimetableSlotHandler struct {
	bulkSvc       service.SlotBulkService
	slotSvc       service.SlotService
	projectionSvc service.SlotProjectionService
	reassignSvc   service.SlotReassignService
}

// NewTimetableSlotHandler 创建 TimetableSlotHandler
func NewTimetableSlotHandler(
	bulkSvc service.SlotBulkService,
	slotSvc service.SlotService,
	projectionSvc service.SlotProjectionService,
	reassignSvc service.SlotReassignService,
) *TimetableSlotHandler {
	return &TimetableSlotHandler{
		bulkSvc:       bulkSvc,
		slotSvc:       slotSvc,
		projectionSvc: projectionSvc,
		reassignSvc:   reassignSvc,
	}
}

// BulkCreate 批量创建时段
// POST /api/v1/timetable/slots/bulk
func (h *TimetableSlotHandler) BulkCreate(c *gin.Context) {
	var req dto.BulkCreateSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "参数校验失败", err.Error())
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.bulkSvc.BulkCreate(c.Request.Context(), &req, callerID)
	if err != nil {
		var partial *pkgerrors.PartialBatchFailure
		if errors.As(err, &partial) && result != nil {
			response.MultiStatus(c, 16006, "部分时段创建失败", result)
			return
		}
		handleTimetableError(c, err)
		return
	}

	response.Created(c, result)
}

// BulkDelete 按条件批量删除时段
// POST /api/v1/timetable/slots/bulk-delete
func (h *TimetableSlotHandler) BulkDelete(c *gin.Context) {
	var req dto.BulkDeleteSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "参数校验失败", err.Error())
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.bulkSvc.BulkDelete(c.Request.Context(), &req, callerID)
	if err != nil {
		handleTimetableError(c, err)
		return
	}

	response.OK(c, result)
}

// GetSlot 获取单个时段
// GET /api/v1/timetable/slots/:id
func (h *TimetableSlotHandler) GetSlot(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "时段ID不能为空")
		return
	}

	slot, err := h.projectionSvc.GetSlot(c.Request.Context(), id)
	if err != nil {
		handleTimetableError(c, err)
		return
	}

	response.OK(c, slot)
}

// DeleteSlot 删除单个时段
// DELETE /api/v1/timetable/slots/:id
func (h *TimetableSlotHandler) DeleteSlot(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "时段ID不能为空")
		return
	}

	if _, ok := MustGetUserID(c); !ok {
		return
	}

	if err := h.slotSvc.DeleteByID(c.Request.Context(), id); err != nil {
		handleTimetableError(c, err)
		return
	}

	response.OK(c, nil)
}

// ReassignSubject 调整时段科目
// PUT /api/v1/timetable/slots/:id/subject
func (h *TimetableSlotHandler) ReassignSubject(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "时段ID不能为空")
		return
	}

	var req dto.ReassignSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "参数校验失败", err.Error())
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	slot, err := h.reassignSvc.Reassign(c.Request.Context(), id, &req, callerID)
	if err != nil {
		handleTimetableError(c, err)
		return
	}

	response.OK(c, slot)
}

// handleTimetableError 统一处理课表模块业务错误
// 具名错误给出独立错误码，其余按 ValidationError / NotFoundError 分类兜底
func handleTimetableError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSlotNotFound):
		response.NotFound(c, 16001, "课表时段不存在")
	case errors.Is(err, service.ErrStreamNotFound):
		response.NotFound(c, 16002, "分流不存在")
	case errors.Is(err, service.ErrSubjectNotFound):
		response.NotFound(c, 16003, "科目不存在")
	case errors.Is(err, service.ErrInvalidDay):
		response.BadRequest(c, 16004, err.Error())
	case errors.Is(err, service.ErrTimeRangeInvalid):
		response.BadRequest(c, 16005, err.Error())
	case errors.Is(err, service.ErrWipeNotConfirmed):
		response.BadRequest(c, 16007, err.Error())
	case errors.Is(err, service.ErrBreakSlotReassign), errors.Is(err, service.ErrBreakWithSubject):
		response.BadRequest(c, 16008, err.Error())
	case errors.Is(err, service.ErrSubjectOutOfScope):
		response.BadRequest(c, 16009, err.Error())
	case errors.Is(err, pkgerrors.ErrValidation):
		response.BadRequest(c, 16000, err.Error())
	case errors.Is(err, pkgerrors.ErrNotFound):
		response.NotFound(c, 16000, err.Error())
	default:
		response.InternalError(c)
	}
}
