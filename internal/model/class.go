package model

import "time"

// swagger:model Class
type Class struct {
	BaseModel
	Title       string `gorm:"size:255;not null" json:"title"`
	Code        string `gorm:"size:12;uniqueIndex;not null" json:"code"` // 邀请码
	Description string `gorm:"type:text" json:"description"`
	OwnerID     uint   `gorm:"index;type:bigint unsigned" json:"ownerId"`
	Owner       *User  `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

func (Class) TableName() string {
	return "classes"
}

// Enrollment 班级成员关系
type Enrollment struct {
	BaseModel
	ClassID     uint      `gorm:"index;type:bigint unsigned" json:"classId"`
	UserID      uint      `gorm:"index;type:bigint unsigned" json:"userId"`
	RoleInClass UserRole  `gorm:"size:20;default:'student'" json:"roleInClass"`
	JoinedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"joinedAt"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

// Topic 保留的规范化主题表。当前主题以JSON列表形式冗余存在Question.Topics上，
// 掌握度统计依赖该冗余形式，本表仅为兼容历史Schema保留。
type Topic struct {
	BaseModel
	Name string `gorm:"size:100;index" json:"name"`
}

func (Topic) TableName() string {
	return "topics"
}
