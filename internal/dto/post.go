package dto

import (
	"time"

	"github.com/KeyurAkbari007/Blog-App/internal/domain"
)

// Creator 是文章响应中被裁剪过的作者信息。
type Creator struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// PostView 是文章的响应结构。
type PostView struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Thumbnail   string    `json:"thumbnail"`
	Creator     Creator   `json:"creator"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewPostView 从 domain.Post 构造 PostView。
// 作者未被 Preload 时只保留 creator 的 ID。
func NewPostView(p *domain.Post) PostView {
	view := PostView{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
		Thumbnail:   p.Thumbnail,
		Creator:     Creator{ID: p.CreatorID},
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.Creator != nil {
		view.Creator.Name = p.Creator.Name
		view.Creator.Avatar = p.Creator.Avatar
	}
	return view
}

// NewPostViews 批量构造 PostView。
func NewPostViews(posts []domain.Post) []PostView {
	views := make([]PostView, 0, len(posts))
	for i := range posts {
		views = append(views, NewPostView(&posts[i]))
	}
	return views
}
