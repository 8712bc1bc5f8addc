package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/Muhol/Olabs-sub000/internal/dto"
	"github.com/Muhol/Olabs-sub000/internal/model"
)

// ── 测试辅助 ──

func setupTestProjectionService() (SlotProjectionService, *testFixture) {
	fx := newTestFixture()
	logger := zap.NewNop()
	slots := NewSlotService(fx.repo, fx.cache, logger)
	return NewSlotProjectionService(fx.repo, slots, fx.cache, logger), fx
}

func viewIDs(views []dto.SlotView) []string {
	ids := make([]string, 0, len(views))
	for _, v := range views {
		ids = append(ids, v.ID)
	}
	return ids
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ── WeekView 测试 ──

func TestSlotProjectionService_WeekView_SixKeysWhenEmpty(t *testing.T) {
	svc, _ := setupTestProjectionService()

	view, err := svc.WeekView(context.Background(), "stream-a")
	if err != nil {
		t.Fatalf("WeekView 应成功: %v", err)
	}
	if len(view.Days) != 6 {
		t.Fatalf("期望 6 个键，实际=%d", len(view.Days))
	}
	for d := 1; d <= 6; d++ {
		day, ok := view.Days[d]
		if !ok {
			t.Errorf("缺少 day=%d", d)
			continue
		}
		if day == nil || len(day) != 0 {
			t.Errorf("day=%d 期望空数组，实际=%v", d, day)
		}
	}
	if view.StreamName != "1A" {
		t.Errorf("期望 StreamName=1A，实际=%s", view.StreamName)
	}
}

func TestSlotProjectionService_WeekView_StreamNotFound(t *testing.T) {
	svc, _ := setupTestProjectionService()

	_, err := svc.WeekView(context.Background(), "nonexistent")
	if !errors.Is(err, ErrStreamNotFound) {
		t.Errorf("期望 ErrStreamNotFound，实际: %v", err)
	}
}

func TestSlotProjectionService_WeekView_Ordering(t *testing.T) {
	svc, fx := setupTestProjectionService()

	// 插入顺序故意打乱；含未补零时间
	for _, s := range []model.TimetableSlot{
		{SlotID: "s-1000", DayOfWeek: 1, StartTime: "10:00", EndTime: "10:40"},
		{SlotID: "s-0900", DayOfWeek: 1, StartTime: "9:00", EndTime: "9:40"},
		{SlotID: "s-0800b", DayOfWeek: 1, StartTime: "08:00", EndTime: "09:00"},
		{SlotID: "s-0800a", DayOfWeek: 1, StartTime: "08:00", EndTime: "08:40"},
		{SlotID: "s-1400", DayOfWeek: 1, StartTime: "14:00", EndTime: "14:40"},
		{SlotID: "dup-b", DayOfWeek: 4, StartTime: "11:00", EndTime: "11:40"},
		{SlotID: "dup-a", DayOfWeek: 4, StartTime: "11:00", EndTime: "11:40"},
	} {
		s.StreamID = "stream-a"
		s.Type = model.SlotTypeLesson
		fx.slots.put(s)
	}

	view, err := svc.WeekView(context.Background(), "stream-a")
	if err != nil {
		t.Fatalf("WeekView 应成功: %v", err)
	}

	wantMon := []string{"s-0800a", "s-0800b", "s-0900", "s-1000", "s-1400"}
	if got := viewIDs(view.Days[1]); !equalIDs(got, wantMon) {
		t.Errorf("周一顺序期望 %v，实际 %v", wantMon, got)
	}
	wantThu := []string{"dup-a", "dup-b"}
	if got := viewIDs(view.Days[4]); !equalIDs(got, wantThu) {
		t.Errorf("周四顺序期望 %v，实际 %v", wantThu, got)
	}
	// 时间原样返回
	if view.Days[1][2].StartTime != "9:00" {
		t.Errorf("期望原样返回 9:00，实际=%s", view.Days[1][2].StartTime)
	}
}

func TestSlotProjectionService_WeekView_OnlyOwnStream(t *testing.T) {
	svc, fx := setupTestProjectionService()
	fx.slots.put(model.TimetableSlot{SlotID: "a", StreamID: "stream-a", DayOfWeek: 2, StartTime: "08:00", EndTime: "08:40", Type: model.SlotTypeLesson})
	fx.slots.put(model.TimetableSlot{SlotID: "b", StreamID: "stream-b", DayOfWeek: 2, StartTime: "08:00", EndTime: "08:40", Type: model.SlotTypeLesson})

	view, err := svc.WeekView(context.Background(), "stream-b")
	if err != nil {
		t.Fatalf("WeekView 应成功: %v", err)
	}
	if got := viewIDs(view.Days[2]); !equalIDs(got, []string{"b"}) {
		t.Errorf("期望只有 b，实际=%v", got)
	}
}

func TestSlotProjectionService_WeekView_SubjectNames(t *testing.T) {
	svc, fx := setupTestProjectionService()
	fx.slots.put(model.TimetableSlot{SlotID: "m", StreamID: "stream-a", SubjectID: strPtr("math"), DayOfWeek: 1, StartTime: "08:00", EndTime: "08:40", Type: model.SlotTypeLesson})
	fx.slots.put(model.TimetableSlot{SlotID: "u", StreamID: "stream-a", DayOfWeek: 1, StartTime: "09:00", EndTime: "09:40", Type: model.SlotTypeLesson})
	fx.slots.put(model.TimetableSlot{SlotID: "br", StreamID: "stream-a", DayOfWeek: 1, StartTime: "10:20", EndTime: "10:40", Type: model.SlotTypeBreak})

	view, err := svc.WeekView(context.Background(), "stream-a")
	if err != nil {
		t.Fatalf("WeekView 应成功: %v", err)
	}
	mon := view.Days[1]
	if mon[0].SubjectName == nil || *mon[0].SubjectName != "数学" {
		t.Errorf("期望科目名称=数学，实际=%v", mon[0].SubjectName)
	}
	if mon[1].SubjectID != nil || mon[1].SubjectName != nil || mon[1].SubjectMissing {
		t.Errorf("未排课时段不应有科目: %+v", mon[1])
	}
	if mon[2].Type != "break" {
		t.Errorf("期望 break，实际=%s", mon[2].Type)
	}
}

func TestSlotProjectionService_WeekView_DanglingSubject(t *testing.T) {
	svc, fx := setupTestProjectionService()
	fx.slots.put(model.TimetableSlot{SlotID: "d", StreamID: "stream-a", SubjectID: strPtr("deleted-subject"), DayOfWeek: 5, StartTime: "08:00", EndTime: "08:40", Type: model.SlotTypeLesson})

	view, err := svc.WeekView(context.Background(), "stream-a")
	if err != nil {
		t.Fatalf("悬空科目引用不应导致视图失败: %v", err)
	}
	sv := view.Days[5][0]
	if sv.SubjectName != nil {
		t.Errorf("期望 subject_name=null，实际=%v", *sv.SubjectName)
	}
	if !sv.SubjectMissing {
		t.Error("期望标记 subject_missing")
	}
	if sv.SubjectID == nil || *sv.SubjectID != "deleted-subject" {
		t.Error("subject_id 应原样保留")
	}
}

func TestSlotProjectionService_WeekView_SubjectLookupFailureNotCached(t *testing.T) {
	svc, fx := setupTestProjectionService()
	fx.subjects.listErr = errors.New("db down")
	fx.slots.put(model.TimetableSlot{SlotID: "m", StreamID: "stream-a", SubjectID: strPtr("math"), DayOfWeek: 1, StartTime: "08:00", EndTime: "08:40", Type: model.SlotTypeLesson})

	view, err := svc.WeekView(context.Background(), "stream-a")
	if err != nil {
		t.Fatalf("科目查询失败时视图应降级返回: %v", err)
	}
	sv := view.Days[1][0]
	if sv.SubjectName != nil || sv.SubjectMissing {
		t.Errorf("查询失败不应判定为悬空引用: %+v", sv)
	}
	if _, ok := fx.cache.views["stream-a"]; ok {
		t.Error("降级视图不应写入缓存")
	}
}

func TestSlotProjectionService_WeekView_CacheLifecycle(t *testing.T) {
	fx := newTestFixture()
	logger := zap.NewNop()
	slots := NewSlotService(fx.repo, fx.cache, logger)
	svc := NewSlotProjectionService(fx.repo, slots, fx.cache, logger)
	ctx := context.Background()

	if _, err := svc.WeekView(ctx, "stream-a"); err != nil {
		t.Fatalf("WeekView 应成功: %v", err)
	}
	if _, ok := fx.cache.views["stream-a"]; !ok {
		t.Fatal("首次查询后应写入缓存")
	}

	// 经由时段存储写入后缓存失效，视图反映新时段
	if _, err := slots.Create(ctx, lessonParams("stream-a", 3, "08:00", "08:40"), "admin-001"); err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	view, err := svc.WeekView(ctx, "stream-a")
	if err != nil {
		t.Fatalf("WeekView 应成功: %v", err)
	}
	if len(view.Days[3]) != 1 {
		t.Errorf("期望周三 1 条，实际=%d", len(view.Days[3]))
	}
}

// ── TeacherWeekView 测试 ──

func TestSlotProjectionService_TeacherWeekView(t *testing.T) {
	svc, fx := setupTestProjectionService()
	fx.slots.put(model.TimetableSlot{SlotID: "m1", StreamID: "stream-a", SubjectID: strPtr("math"), DayOfWeek: 1, StartTime: "9:00", EndTime: "9:40", Type: model.SlotTypeLesson})
	fx.slots.put(model.TimetableSlot{SlotID: "c1", StreamID: "stream-c", SubjectID: strPtr("chem"), DayOfWeek: 1, StartTime: "08:00", EndTime: "08:40", Type: model.SlotTypeLesson})
	fx.slots.put(model.TimetableSlot{SlotID: "e1", StreamID: "stream-b", SubjectID: strPtr("eng"), DayOfWeek: 1, StartTime: "07:00", EndTime: "07:40", Type: model.SlotTypeLesson})

	view, err := svc.TeacherWeekView(context.Background(), "t-1")
	if err != nil {
		t.Fatalf("TeacherWeekView 应成功: %v", err)
	}
	if len(view.Days) != 6 {
		t.Fatalf("期望 6 个键，实际=%d", len(view.Days))
	}
	mon := view.Days[1]
	if got := viewIDs(mon); !equalIDs(got, []string{"c1", "m1"}) {
		t.Errorf("期望 [c1 m1]，实际=%v", got)
	}
	if mon[0].StreamName != "2A" || mon[1].StreamName != "1A" {
		t.Errorf("期望携带分流名称，实际 %s/%s", mon[0].StreamName, mon[1].StreamName)
	}
	if view.TeacherID != "t-1" {
		t.Errorf("期望 TeacherID=t-1，实际=%s", view.TeacherID)
	}
}

func TestSlotProjectionService_TeacherWeekView_RequiresTeacher(t *testing.T) {
	svc, _ := setupTestProjectionService()

	_, err := svc.TeacherWeekView(context.Background(), " ")
	if !errors.Is(err, ErrTeacherRequired) {
		t.Errorf("期望 ErrTeacherRequired，实际: %v", err)
	}
}

// ── GetSlot 测试 ──

func TestSlotProjectionService_GetSlot(t *testing.T) {
	svc, fx := setupTestProjectionService()
	fx.slots.put(model.TimetableSlot{SlotID: "e1", StreamID: "stream-b", SubjectID: strPtr("eng"), DayOfWeek: 2, StartTime: "08:00", EndTime: "08:40", Type: model.SlotTypeLesson})

	sv, err := svc.GetSlot(context.Background(), "e1")
	if err != nil {
		t.Fatalf("GetSlot 应成功: %v", err)
	}
	if sv.StreamName != "1B" || sv.SubjectName == nil || *sv.SubjectName != "英语" {
		t.Errorf("名称解析不符: %+v", sv)
	}

	if _, err := svc.GetSlot(context.Background(), "nonexistent"); !errors.Is(err, ErrSlotNotFound) {
		t.Errorf("期望 ErrSlotNotFound，实际: %v", err)
	}
}
