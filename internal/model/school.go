package model

// School 学校（租户）表 — 对应 schools
// 每个学校是独立的组织边界，成员、课程、考勤都不跨校可见
type School struct {
	SchoolID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"school_id"`
	Name     string `gorm:"type:varchar(150);not null;uniqueIndex"         json:"name"`
	// UTCOffsetMinutes 学校本地时区相对 UTC 的偏移（分钟），自然日换算的唯一依据
	UTCOffsetMinutes int `gorm:"not null;default:330" json:"utc_offset_minutes"`
	BaseModel
}

// TableName 指定表名
func (School) TableName() string { return "schools" }
