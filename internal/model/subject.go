package model

// Subject 科目表：对应 subjects
type Subject struct {
	SubjectID    string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"subject_id"`
	ClassID      string  `gorm:"type:uuid;not null;index"                       json:"class_id"`
	StreamID     *string `gorm:"type:uuid"                                      json:"stream_id,omitempty"` // NULL 表示适用于班级下所有分流
	Name         string  `gorm:"type:varchar(100);not null"                     json:"name"`
	IsCompulsory bool    `gorm:"not null;default:true"                          json:"is_compulsory"`
	TeacherID    *string `gorm:"type:varchar(64)"                               json:"teacher_id,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Subject) TableName() string { return "subjects" }

// AppliesToStream 判断科目是否覆盖指定分流
func (s *Subject) AppliesToStream(classID, streamID string) bool {
	if s.ClassID != classID {
		return false
	}
	return s.StreamID == nil || *s.StreamID == streamID
}
