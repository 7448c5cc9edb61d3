// Package models holds the database rows served by the API.
package models

import "time"

// Post statuses.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }
func (u User) PrimaryKey() uint { return u.ID }

type Post struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	Excerpt     string     `json:"excerpt"`
	Image       string     `json:"image"`
	Category    string     `json:"category"`
	Tags        StringList `json:"tags"`
	Status      string     `gorm:"default:draft" json:"status"`
	Featured    bool       `gorm:"default:false" json:"featured"`
	AuthorID    uint       `json:"author_id"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Post) TableName() string { return "posts" }
func (p Post) PrimaryKey() uint { return p.ID }

type PortfolioItem struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Title        string     `gorm:"not null" json:"title"`
	Description  string     `gorm:"type:text;not null" json:"description"`
	Image        string     `json:"image"`
	Technologies StringList `json:"technologies"`
	WebsiteURL   string     `json:"website_url"`
	GithubURL    string     `json:"github_url"`
	Featured     bool       `gorm:"default:false" json:"featured"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (PortfolioItem) TableName() string { return "portfolio_items" }
func (p PortfolioItem) PrimaryKey() uint { return p.ID }

type Project struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"not null" json:"name"`
	Description  string     `gorm:"type:text;not null" json:"description"`
	Status       string     `gorm:"default:planning" json:"status"`
	Priority     string     `gorm:"default:medium" json:"priority"`
	StartDate    *Date      `json:"start_date"`
	EndDate      *Date      `json:"end_date"`
	Progress     int        `gorm:"default:0" json:"progress"`
	Budget       float64    `gorm:"type:numeric(12,2);default:0" json:"budget"`
	Client       string     `json:"client"`
	Technologies StringList `json:"technologies"`
	TeamMembers  Int64List  `json:"team_members"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (Project) TableName() string { return "projects" }
func (p Project) PrimaryKey() uint { return p.ID }

type Skill struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `json:"user_id"`
	Name          string    `gorm:"not null" json:"name"`
	Icon          string    `json:"icon"`
	Level         *int      `gorm:"not null;default:50" json:"level"`
	Category      string    `json:"category"`
	Description   string    `json:"description"`
	Experience    string    `json:"experience"`
	ProjectsCount int       `gorm:"default:0" json:"projects_count"`
	Color         string    `json:"color"`
	Featured      bool      `gorm:"default:false" json:"featured"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Skill) TableName() string { return "skills" }
func (s Skill) PrimaryKey() uint { return s.ID }

type Testimonial struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Position  string    `json:"position"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Avatar    string    `json:"avatar"`
	Rating    int       `json:"rating"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Testimonial) TableName() string { return "testimonials" }
func (t Testimonial) PrimaryKey() uint { return t.ID }

// ExperienceEntry is one point on the about page timeline. The table has no
// updated_at column.
type ExperienceEntry struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Year        string    `gorm:"not null" json:"year"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	CreatedAt   time.Time `json:"created_at"`
}

func (ExperienceEntry) TableName() string { return "experience_timeline" }
func (e ExperienceEntry) PrimaryKey() uint { return e.ID }

type Profile struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Avatar          string    `json:"avatar"`
	Bio             string    `gorm:"type:text" json:"bio"`
	Profession      string    `json:"profession"`
	Location        string    `json:"location"`
	Website         string    `json:"website"`
	BirthDate       *Date     `json:"birth_date"`
	Experience      string    `json:"experience"`
	Education       string    `json:"education"`
	SocialGithub    string    `json:"social_github"`
	SocialLinkedin  string    `json:"social_linkedin"`
	SocialTelegram  string    `json:"social_telegram"`
	SocialInstagram string    `json:"social_instagram"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }
func (p Profile) PrimaryKey() uint { return p.ID }

// Settings keeps the preference groups flattened into columns; the API
// nests them again on the way out.
type Settings struct {
	ID                       uint      `gorm:"primaryKey" json:"id"`
	UserID                   uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Theme                    string    `json:"theme"`
	Language                 string    `json:"language"`
	NotificationsEmail       bool      `json:"notifications_email"`
	NotificationsPush        bool      `json:"notifications_push"`
	PrivacyProfileVisibility string    `json:"privacy_profile_visibility"`
	SecuritySessionTimeout   int       `json:"security_session_timeout"`
	DisplayPostsPerPage      int       `json:"display_posts_per_page"`
	DisplayAnimations        bool      `json:"display_animations"`
	CreatedAt                time.Time `json:"created_at"`
	UpdatedAt                time.Time `json:"updated_at"`
}

func (Settings) TableName() string { return "settings" }
func (s Settings) PrimaryKey() uint { return s.ID }

// All lists every model for auto-migration.
func All() []any {
	return []any{
		&User{},
		&Post{},
		&PortfolioItem{},
		&Project{},
		&Skill{},
		&Testimonial{},
		&ExperienceEntry{},
		&Profile{},
		&Settings{},
	}
}
