// Package dto 定义对外响应的数据结构，裁剪掉内部字段。
package dto

import "github.com/KeyurAkbari007/Blog-App/internal/domain"

// Author 是作者列表的响应结构 (不含密码哈希和时间戳)。
type Author struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
	Posts  int    `json:"posts"`
}

// NewAuthor 从 domain.User 构造 Author。
func NewAuthor(u *domain.User) Author {
	return Author{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Avatar: u.Avatar,
		Posts:  u.Posts,
	}
}

// NewAuthors 批量构造 Author。
func NewAuthors(users []domain.User) []Author {
	authors := make([]Author, 0, len(users))
	for i := range users {
		authors = append(authors, NewAuthor(&users[i]))
	}
	return authors
}
