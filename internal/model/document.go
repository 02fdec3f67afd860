package model

// Document 用户上传的课程笔记文件，正文入向量库，原文件走对象存储。
type Document struct {
	BaseModel
	UserID      uint   `gorm:"index;not null" json:"userId"`
	Filename    string `gorm:"size:255;not null" json:"filename"`
	ObjectKey   string `gorm:"size:512;not null" json:"-"`
	ContentType string `gorm:"size:100" json:"contentType"`
	Size        int64  `json:"size"`
	URL         string `gorm:"size:512" json:"url"`
	Chunks      int    `json:"chunks"`
}

func (Document) TableName() string {
	return "documents"
}
