package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Ibrohimov-Zafar/DevVibe/internal/config"
	"github.com/Ibrohimov-Zafar/DevVibe/internal/models"
)

var postColumns = []string{
	"title", "content", "excerpt", "image", "category", "tags", "status", "featured", "published_at",
}

// Posts is the blog post table. Posts are authored by the site admin and
// carry a publication timestamp.
type Posts struct {
	*Table[models.Post]
	admin config.Admin
	now   func() time.Time
}

func newPosts(db *gorm.DB, admin config.Admin) *Posts {
	return &Posts{
		Table: NewTable[models.Post](db, "posts", Order{Column: "created_at", Desc: true}, postColumns...),
		admin: admin,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Create seeds the admin author if needed and inserts post. published_at is
// set only when the post is created as published.
func (p *Posts) Create(ctx context.Context, post *models.Post) error {
	err := withConn(ctx, p.db, func(tx *gorm.DB) error {
		if err := ensureAdmin(tx, p.admin); err != nil {
			return err
		}
		post.AuthorID = p.admin.UserID
		post.PublishedAt = nil
		if post.Status == models.StatusPublished {
			now := p.now()
			post.PublishedAt = &now
		}
		return p.create(tx, post)
	})
	if err != nil {
		return p.wrap("create", err)
	}
	return nil
}

// Update replaces the post's editable columns. Moving to published stamps
// published_at with the current time; any other status keeps whatever
// published_at the row already had, even when the post is unpublished.
func (p *Posts) Update(ctx context.Context, id uint, post *models.Post) error {
	err := withConn(ctx, p.db, func(tx *gorm.DB) error {
		if post.Status == models.StatusPublished {
			now := p.now()
			post.PublishedAt = &now
		} else {
			var prev models.Post
			err := tx.Select("id", "published_at").First(&prev, id).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			if err != nil {
				return err
			}
			post.PublishedAt = prev.PublishedAt
		}
		return p.update(tx, id, post, p.columns)
	})
	if err != nil {
		return p.wrap("update", err)
	}
	return nil
}
