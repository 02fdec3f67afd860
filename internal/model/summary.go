package model

// Summary 由文本生成服务产出的课程笔记摘要
// swagger:model Summary
type Summary struct {
	BaseModel
	UserID  uint   `gorm:"index;type:bigint unsigned" json:"userId"`
	Title   string `gorm:"size:255;not null" json:"title"`
	Content string `gorm:"type:longtext" json:"content"`
}

func (Summary) TableName() string {
	return "summaries"
}
