package domain

import "time"

// Post 表示一篇博客文章。
type Post struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"type:varchar(255);not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	Category    string `gorm:"type:varchar(64);index:idx_category;not null" json:"category"` // 必须是 Categories 中的值
	Thumbnail   string `gorm:"type:varchar(255);not null" json:"thumbnail"`                  // 缩略图文件名，每篇文章恰好一张
	CreatorID   uint   `gorm:"index:idx_creator;not null" json:"-"`                          // 作者 ID (外键关联到 User.ID)
	Creator     *User  `gorm:"foreignKey:CreatorID" json:"-"`                                // 读取时通过 Preload 填充

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Categories 是文章允许的全部分类，属于封闭集合。
var Categories = []string{
	"Technology",
	"Entertainment",
	"Politics",
	"Science",
	"Sports",
	"Travel",
	"Music",
	"News",
	"Education",
	"Weather",
	"Art",
	"Business",
}

// ValidCategory 判断给定的分类是否属于封闭集合。
func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}
