package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Muhol/Olabs-sub000/config"
	"github.com/Muhol/Olabs-sub000/internal/model"
	"github.com/Muhol/Olabs-sub000/internal/timegrid"
)

var ErrExportGenerateFail = errors.New("生成 Excel 文件失败")

// TimetableExportService 课表导出
//
// 以 bytes.Buffer 返回，由 Handler 设置响应头后写出。
// 内容与周视图一致：按星期分组，每天内按开始时间排序，一行一个时段。
type TimetableExportService interface {
	ExportWeekView(ctx context.Context, streamID string) (*bytes.Buffer, string, error)
}

type timetableExportService struct {
	dayNames   []string
	projection SlotProjectionService
	logger     *zap.Logger
}

// NewTimetableExportService 创建 TimetableExportService 实例
func NewTimetableExportService(cfg *config.TimetableConfig, projection SlotProjectionService, logger *zap.Logger) TimetableExportService {
	return &timetableExportService{dayNames: cfg.DayNames, projection: projection, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportWeekView：导出分流周课表
// ═══════════════════════════════════════════════════════════
//
// | 星期 | 开始 | 结束 | 类型 | 科目 |

func (s *timetableExportService) ExportWeekView(ctx context.Context, streamID string) (*bytes.Buffer, string, error) {
	view, err := s.projection.WeekView(ctx, streamID)
	if err != nil {
		return nil, "", err
	}

	streamName := view.StreamName
	if streamName == "" {
		streamName = streamID
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "课表"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		s.logger.Error("创建工作表失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "C", 10)
	f.SetColWidth(sheet, "D", "D", 10)
	f.SetColWidth(sheet, "E", "E", 24)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题
	f.SetCellValue(sheet, "A1", fmt.Sprintf("%s 周课表", streamName))
	f.MergeCell(sheet, "A1", "E1")
	f.SetCellStyle(sheet, "A1", "A1", headerStyle)

	// 表头
	for i, h := range []string{"星期", "开始", "结束", "类型", "科目"} {
		f.SetCellValue(sheet, cell(colName(i), 2), h)
	}
	f.SetCellStyle(sheet, "A2", "E2", headerStyle)

	row := 3
	for _, day := range timegrid.Days {
		for _, sv := range view.Days[day] {
			f.SetCellValue(sheet, cell("A", row), s.dayName(day))
			f.SetCellValue(sheet, cell("B", row), timegrid.Pad(sv.StartTime))
			f.SetCellValue(sheet, cell("C", row), timegrid.Pad(sv.EndTime))
			f.SetCellValue(sheet, cell("D", row), slotTypeLabel(sv.Type))
			f.SetCellValue(sheet, cell("E", row), subjectLabel(sv.SubjectName, sv.SubjectID, sv.Type))
			row++
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.String("stream_id", streamID), zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("课表_%s.xlsx", streamName)
	return buf, filename, nil
}

// ── 辅助函数 ──

// dayName 优先使用配置的星期名称
func (s *timetableExportService) dayName(day int) string {
	if len(s.dayNames) == len(timegrid.Days) && timegrid.ValidDay(day) {
		return s.dayNames[day-1]
	}
	return timegrid.DayName(day)
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func slotTypeLabel(t string) string {
	if t == string(model.SlotTypeBreak) {
		return "课间"
	}
	return "课程"
}

func subjectLabel(name, id *string, slotType string) string {
	switch {
	case slotType == string(model.SlotTypeBreak):
		return "-"
	case name != nil:
		return *name
	case id != nil:
		return "(科目已删除)"
	default:
		return "未排课"
	}
}
