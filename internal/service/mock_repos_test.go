package service

import (
	"context"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/Muhol/Olabs-sub000/internal/dto"
	"github.com/Muhol/Olabs-sub000/internal/model"
	"github.com/Muhol/Olabs-sub000/internal/repository"
)

// ── Mock TimetableSlotRepository ──

type mockSlotRepo struct {
	slots   []*model.TimetableSlot // 插入顺序
	seq     int
	streams *mockStreamRepo // ListBySubjects 预加载分流用，可为 nil

	// createErr 返回非 nil 时模拟单条插入失败
	createErr func(slot *model.TimetableSlot) error
}

func newMockSlotRepo() *mockSlotRepo {
	return &mockSlotRepo{}
}

func (m *mockSlotRepo) Create(_ context.Context, slot *model.TimetableSlot) error {
	if m.createErr != nil {
		if err := m.createErr(slot); err != nil {
			return err
		}
	}
	m.seq++
	if slot.SlotID == "" {
		slot.SlotID = fmt.Sprintf("slot-%03d", m.seq)
	}
	cp := *slot
	m.slots = append(m.slots, &cp)
	return nil
}

func (m *mockSlotRepo) GetByID(_ context.Context, id string) (*model.TimetableSlot, error) {
	for _, s := range m.slots {
		if s.SlotID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSlotRepo) ListByStream(_ context.Context, streamID string) ([]model.TimetableSlot, error) {
	var result []model.TimetableSlot
	for _, s := range m.slots {
		if s.StreamID == streamID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSlotRepo) ListBySubjects(_ context.Context, subjectIDs []string) ([]model.TimetableSlot, error) {
	want := make(map[string]bool, len(subjectIDs))
	for _, id := range subjectIDs {
		want[id] = true
	}
	var result []model.TimetableSlot
	for _, s := range m.slots {
		if s.SubjectID == nil || !want[*s.SubjectID] {
			continue
		}
		cp := *s
		if m.streams != nil {
			if st, ok := m.streams.streams[s.StreamID]; ok {
				cp.Stream = st
			}
		}
		result = append(result, cp)
	}
	return result, nil
}

func (m *mockSlotRepo) UpdateSubject(_ context.Context, id string, subjectID *string, updatedBy string) (int64, error) {
	for _, s := range m.slots {
		if s.SlotID == id {
			s.SubjectID = subjectID
			s.UpdatedBy = &updatedBy
			return 1, nil
		}
	}
	return 0, nil
}

func (m *mockSlotRepo) Delete(_ context.Context, id string) (int64, error) {
	for i, s := range m.slots {
		if s.SlotID == id {
			m.slots = append(m.slots[:i], m.slots[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (m *mockSlotRepo) DeleteWhere(_ context.Context, filter repository.SlotFilter) (int64, error) {
	kept := m.slots[:0]
	var deleted int64
	for _, s := range m.slots {
		if filter.Matches(s) {
			deleted++
			continue
		}
		kept = append(kept, s)
	}
	m.slots = kept
	return deleted, nil
}

// put 直接写入一条时段，绕过 Create 的失败注入
func (m *mockSlotRepo) put(slot model.TimetableSlot) {
	cp := slot
	m.slots = append(m.slots, &cp)
}

// ── Mock StreamRepository ──

type mockStreamRepo struct {
	streams map[string]*model.Stream
	order   []string
}

func newMockStreamRepo() *mockStreamRepo {
	return &mockStreamRepo{streams: make(map[string]*model.Stream)}
}

func (m *mockStreamRepo) add(id, classID, name string) {
	m.streams[id] = &model.Stream{StreamID: id, ClassID: classID, Name: name}
	m.order = append(m.order, id)
}

func (m *mockStreamRepo) GetByID(_ context.Context, id string) (*model.Stream, error) {
	if s, ok := m.streams[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStreamRepo) List(_ context.Context, classID string) ([]model.Stream, error) {
	var result []model.Stream
	for _, id := range m.order {
		s := m.streams[id]
		if classID != "" && s.ClassID != classID {
			continue
		}
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockStreamRepo) ListIDs(_ context.Context) ([]string, error) {
	ids := make([]string, len(m.order))
	copy(ids, m.order)
	return ids, nil
}

// ── Mock SubjectRepository ──

type mockSubjectRepo struct {
	subjects map[string]*model.Subject
	listErr  error // ListByIDs 故障注入
}

func newMockSubjectRepo() *mockSubjectRepo {
	return &mockSubjectRepo{subjects: make(map[string]*model.Subject)}
}

func (m *mockSubjectRepo) add(sub model.Subject) {
	cp := sub
	m.subjects[sub.SubjectID] = &cp
}

func (m *mockSubjectRepo) GetByID(_ context.Context, id string) (*model.Subject, error) {
	if s, ok := m.subjects[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) ListByIDs(_ context.Context, ids []string) ([]model.Subject, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []model.Subject
	for _, id := range ids {
		if s, ok := m.subjects[id]; ok {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSubjectRepo) List(_ context.Context, filter repository.SubjectFilter) ([]model.Subject, error) {
	var result []model.Subject
	for _, s := range m.subjects {
		if filter.ClassID != "" && s.ClassID != filter.ClassID {
			continue
		}
		if filter.StreamID != "" && s.StreamID != nil && *s.StreamID != filter.StreamID {
			continue
		}
		if filter.TeacherID != "" && (s.TeacherID == nil || *s.TeacherID != filter.TeacherID) {
			continue
		}
		result = append(result, *s)
	}
	return result, nil
}

// ── Mock AttendanceSessionRepository ──

type mockAttendanceRepo struct {
	counts map[string]int64
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{counts: make(map[string]int64)}
}

func (m *mockAttendanceRepo) CountBySlot(_ context.Context, slotID string) (int64, error) {
	return m.counts[slotID], nil
}

// ── Mock WeekViewCache ──

type mockWeekCache struct {
	mu          sync.Mutex
	views       map[string]*dto.WeekViewResponse
	invalidated []string
	wipes       int
}

func newMockWeekCache() *mockWeekCache {
	return &mockWeekCache{views: make(map[string]*dto.WeekViewResponse)}
}

func (c *mockWeekCache) Get(_ context.Context, streamID string) (*dto.WeekViewResponse, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.views[streamID]
	return v, ok
}

func (c *mockWeekCache) Set(_ context.Context, streamID string, view *dto.WeekViewResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.views[streamID] = view
}

func (c *mockWeekCache) Invalidate(_ context.Context, streamIDs ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range streamIDs {
		delete(c.views, id)
		c.invalidated = append(c.invalidated, id)
	}
}

func (c *mockWeekCache) InvalidateAll(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.views = make(map[string]*dto.WeekViewResponse)
	c.wipes++
}

// ── 测试夹具 ──

type testFixture struct {
	repo       *repository.Repository
	slots      *mockSlotRepo
	streams    *mockStreamRepo
	subjects   *mockSubjectRepo
	attendance *mockAttendanceRepo
	cache      *mockWeekCache
}

// newTestFixture 两个班级、三个分流、三门科目
//
//	class-1: stream-a (1A), stream-b (1B)    math(教师 t-1), eng(仅 1B)
//	class-2: stream-c (2A)                    chem(教师 t-1)
func newTestFixture() *testFixture {
	slots := newMockSlotRepo()
	streams := newMockStreamRepo()
	subjects := newMockSubjectRepo()
	attendance := newMockAttendanceRepo()
	slots.streams = streams

	streams.add("stream-a", "class-1", "1A")
	streams.add("stream-b", "class-1", "1B")
	streams.add("stream-c", "class-2", "2A")

	streamB := "stream-b"
	teacher := "t-1"
	subjects.add(model.Subject{SubjectID: "math", ClassID: "class-1", Name: "数学", TeacherID: &teacher})
	subjects.add(model.Subject{SubjectID: "eng", ClassID: "class-1", StreamID: &streamB, Name: "英语"})
	subjects.add(model.Subject{SubjectID: "chem", ClassID: "class-2", Name: "化学", TeacherID: &teacher})

	return &testFixture{
		repo: &repository.Repository{
			Slot:       slots,
			Stream:     streams,
			Subject:    subjects,
			Attendance: attendance,
		},
		slots:      slots,
		streams:    streams,
		subjects:   subjects,
		attendance: attendance,
		cache:      newMockWeekCache(),
	}
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }
