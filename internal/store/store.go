package store

import (
	"gorm.io/gorm"

	"github.com/Ibrohimov-Zafar/DevVibe/internal/config"
	"github.com/Ibrohimov-Zafar/DevVibe/internal/models"
)

// Store groups the accessors for every table behind the API.
type Store struct {
	Posts        *Posts
	Portfolio    *Table[models.PortfolioItem]
	Projects     *Table[models.Project]
	Skills       *Table[models.Skill]
	Testimonials *Table[models.Testimonial]
	Experience   *Table[models.ExperienceEntry]
	Site         *Site
}

// New wires every table to the shared pool.
func New(db *gorm.DB, admin config.Admin) *Store {
	newest := Order{Column: "created_at", Desc: true}

	return &Store{
		Posts: newPosts(db, admin),
		Portfolio: NewTable[models.PortfolioItem](db, "portfolio_items", newest,
			"title", "description", "image", "technologies", "website_url", "github_url", "featured"),
		Projects: NewTable[models.Project](db, "projects", newest,
			"name", "description", "status", "priority", "start_date", "end_date",
			"progress", "budget", "client", "technologies", "team_members"),
		Skills: NewTable[models.Skill](db, "skills", Order{Column: "level", Desc: true},
			"name", "icon", "level", "category", "description", "experience",
			"projects_count", "color", "featured").
			WithPrepare(func(s *models.Skill) { s.UserID = admin.UserID }),
		Testimonials: NewTable[models.Testimonial](db, "testimonials", newest,
			"name", "position", "text", "avatar", "rating", "approved"),
		Experience: NewTable[models.ExperienceEntry](db, "experience_timeline", Order{Column: "year", Desc: true},
			"year", "title", "description", "icon"),
		Site: newSite(db, admin),
	}
}
