package handler

import "github.com/Muhol/Olabs-sub000/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Slot   *TimetableSlotHandler
	View   *TimetableViewHandler
	Lookup *LookupHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Slot:   NewTimetableSlotHandler(svc.SlotBulk, svc.Slot, svc.Projection, svc.Reassign),
		View:   NewTimetableViewHandler(svc.Projection, svc.Export),
		Lookup: NewLookupHandler(svc.Stream, svc.Subject),
	}
}
