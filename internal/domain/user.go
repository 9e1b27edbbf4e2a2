// Package domain 定义了博客平台的核心数据模型 (数据库模型)。
package domain

import "time"

// User 表示平台上的一个注册用户 (作者)。
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`                                           // 用户唯一标识符 (主键)
	Name     string `gorm:"type:varchar(191);not null" json:"name"`                         // 显示名称
	Email    string `gorm:"type:varchar(191);uniqueIndex:idx_email;not null" json:"email"`  // 登录邮箱，必须唯一
	Password string `gorm:"type:text;not null" json:"-"`                                    // 存储的是 bcrypt 哈希，绝不序列化到响应
	Avatar   string `gorm:"type:varchar(255)" json:"avatar"`                                // 头像文件名 (指向上传目录中的文件)，可为空
	Posts    int    `gorm:"not null;default:0" json:"posts"`                                // 该用户已发布文章的计数

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"` // 记录创建时间 (GORM 自动填充)
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"` // 记录最后更新时间 (GORM 自动填充)
}
