package model

// SlotType 时段类型
type SlotType string

const (
	SlotTypeLesson SlotType = "lesson"
	SlotTypeBreak  SlotType = "break"
)

// Valid 判断是否为 lesson / break 之一
func (t SlotType) Valid() bool {
	return t == SlotTypeLesson || t == SlotTypeBreak
}

// TimetableSlot 课表时段表：对应 timetable_slots
//
// SlotID 是考勤记录引用的外键，创建后不可变；修改科目只能原地 UPDATE。
// (stream_id, day_of_week, start_time, end_time) 不做唯一约束，允许重复与重叠。
type TimetableSlot struct {
	SlotID    string   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"slot_id"`
	StreamID  string   `gorm:"type:uuid;not null;index"                       json:"stream_id"`
	SubjectID *string  `gorm:"type:uuid"                                      json:"subject_id"` // NULL 表示未排课或课间
	DayOfWeek int      `gorm:"type:smallint;not null"                         json:"day_of_week"` // 1-6
	StartTime string   `gorm:"type:varchar(5);not null"                       json:"start_time"`  // "08:00"
	EndTime   string   `gorm:"type:varchar(5);not null"                       json:"end_time"`
	Type      SlotType `gorm:"type:varchar(10);not null;default:'lesson'"     json:"type"`
	BaseModel

	// 关联
	Stream  *Stream  `gorm:"foreignKey:StreamID;references:StreamID"   json:"stream,omitempty"`
	Subject *Subject `gorm:"foreignKey:SubjectID;references:SubjectID" json:"subject,omitempty"`
}

// TableName 指定表名
func (TimetableSlot) TableName() string { return "timetable_slots" }
