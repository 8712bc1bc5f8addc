package model

// SchoolClass 班级表：对应 school_classes（由外部 CRUD 模块维护，此处只读）
type SchoolClass struct {
	ClassID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"class_id"`
	Name    string `gorm:"type:varchar(100);not null"                     json:"name"`
	BaseModel
}

// TableName 指定表名
func (SchoolClass) TableName() string { return "school_classes" }

// Stream 分流表：对应 streams，班级的细分
type Stream struct {
	StreamID     string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"stream_id"`
	ClassID      string `gorm:"type:uuid;not null;index"                       json:"class_id"`
	Name         string `gorm:"type:varchar(100);not null"                     json:"name"`
	StudentCount int    `gorm:"not null;default:0"                             json:"student_count"`
	BaseModel

	// 关联
	Class *SchoolClass `gorm:"foreignKey:ClassID;references:ClassID" json:"class,omitempty"`
}

// TableName 指定表名
func (Stream) TableName() string { return "streams" }
