package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Muhol/Olabs-sub000/internal/dto"
	"github.com/Muhol/Olabs-sub000/internal/service"
	"github.com/Muhol/Olabs-sub000/pkg/response"
)

// LookupHandler 分流 / 科目下拉数据 HTTP 处理器
type LookupHandler struct {
	streamSvc  service.StreamService
	subjectSvc service.SubjectService
}

// NewLookupHandler 创建 LookupHandler
func NewLookupHandler(streamSvc service.StreamService, subjectSvc service.SubjectService) *LookupHandler {
	return &LookupHandler{streamSvc: streamSvc, subjectSvc: subjectSvc}
}

// ListStreams 分流列表
// GET /api/v1/streams
func (h *LookupHandler) ListStreams(c *gin.Context) {
	var req dto.StreamListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, err := h.streamSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// ListSubjects 科目列表
// GET /api/v1/subjects
func (h *LookupHandler) ListSubjects(c *gin.Context) {
	var req dto.SubjectListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, err := h.subjectSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": list})
}
