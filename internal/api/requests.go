package api

import (
	"strings"

	"github.com/Ibrohimov-Zafar/DevVibe/internal/models"
)

// input is a decoded create body that converts into a row.
type input[T any] interface {
	model() (*T, error)
}

// updateInput is an update body; it also names the row to replace.
type updateInput[T any] interface {
	input[T]
	recordID() uint
}

type withID struct {
	ID flexInt `json:"id" validate:"required,gt=0"`
}

func (w withID) recordID() uint { return uint(w.ID) }

// Posts

type postRequest struct {
	Title    string   `json:"title" validate:"required"`
	Content  string   `json:"content" validate:"required"`
	Excerpt  string   `json:"excerpt"`
	Image    string   `json:"image"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Status   string   `json:"status" validate:"omitempty,oneof=draft published archived"`
	Featured bool     `json:"featured"`
}

func (p *postRequest) messages() map[string]string {
	return map[string]string{
		"id":      "Invalid or missing post ID",
		"title":   "Title and content are required",
		"content": "Title and content are required",
		"status":  "Invalid status value",
	}
}

func (p *postRequest) model() (*models.Post, error) {
	status := p.Status
	if status == "" {
		status = models.StatusDraft
	}
	return &models.Post{
		Title:    p.Title,
		Content:  p.Content,
		Excerpt:  p.Excerpt,
		Image:    p.Image,
		Category: p.Category,
		Tags:     models.StringList(p.Tags),
		Status:   status,
		Featured: p.Featured,
	}, nil
}

type postUpdate struct {
	withID
	postRequest
}

// Portfolio

type portfolioRequest struct {
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description" validate:"required"`
	Image        string   `json:"image"`
	Technologies []string `json:"technologies"`
	WebsiteURL   string   `json:"website_url"`
	GithubURL    string   `json:"github_url"`
	Featured     bool     `json:"featured"`
}

func (p *portfolioRequest) messages() map[string]string {
	return map[string]string{
		"id":          "ID is required",
		"title":       "Title and description are required",
		"description": "Title and description are required",
	}
}

func (p *portfolioRequest) model() (*models.PortfolioItem, error) {
	return &models.PortfolioItem{
		Title:        p.Title,
		Description:  p.Description,
		Image:        p.Image,
		Technologies: models.StringList(p.Technologies),
		WebsiteURL:   p.WebsiteURL,
		GithubURL:    p.GithubURL,
		Featured:     p.Featured,
	}, nil
}

type portfolioUpdate struct {
	withID
	portfolioRequest
}

// Projects

// projectRequest takes dates as startDate/endDate, with start_date/end_date
// accepted as well.
type projectRequest struct {
	Name           string    `json:"name" validate:"required"`
	Description    string    `json:"description" validate:"required"`
	Status         string    `json:"status"`
	Priority       string    `json:"priority"`
	StartDate      string    `json:"startDate"`
	EndDate        string    `json:"endDate"`
	StartDateSnake string    `json:"start_date"`
	EndDateSnake   string    `json:"end_date"`
	Progress       flexInt   `json:"progress" validate:"min=0,max=100"`
	Budget         flexFloat `json:"budget" validate:"min=0"`
	Client         string    `json:"client"`
	Technologies   []string  `json:"technologies"`
	TeamMembers    []int64   `json:"team_members"`
}

func (p *projectRequest) messages() map[string]string {
	return map[string]string{
		"id":          "ID is required",
		"name":        "Name and description are required",
		"description": "Name and description are required",
		"progress":    "Progress must be between 0 and 100",
		"budget":      "Budget cannot be negative",
	}
}

func (p *projectRequest) model() (*models.Project, error) {
	start, err := optionalDate("startDate", p.StartDate, p.StartDateSnake)
	if err != nil {
		return nil, err
	}
	end, err := optionalDate("endDate", p.EndDate, p.EndDateSnake)
	if err != nil {
		return nil, err
	}

	return &models.Project{
		Name:         p.Name,
		Description:  p.Description,
		Status:       orDefault(p.Status, "planning"),
		Priority:     orDefault(p.Priority, "medium"),
		StartDate:    start,
		EndDate:      end,
		Progress:     int(p.Progress),
		Budget:       float64(p.Budget),
		Client:       p.Client,
		Technologies: models.StringList(p.Technologies),
		TeamMembers:  models.Int64List(p.TeamMembers),
	}, nil
}

type projectUpdate struct {
	withID
	projectRequest
}

func optionalDate(field string, values ...string) (*models.Date, error) {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		d, err := models.ParseDate(v)
		if err != nil {
			return nil, badRequest(field + " must be a date in YYYY-MM-DD format")
		}
		return &d, nil
	}
	return nil, nil
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// Skills

type skillFields struct {
	Category      string  `json:"category"`
	Experience    string  `json:"experience"`
	ProjectsCount flexInt `json:"projects_count" validate:"min=0"`
	Color         string  `json:"color"`
	Featured      bool    `json:"featured"`
}

func (f skillFields) apply(s *models.Skill) {
	s.Category = f.Category
	s.Experience = f.Experience
	s.ProjectsCount = int(f.ProjectsCount)
	s.Color = f.Color
	s.Featured = f.Featured
}

// skillRequest creates a skill. Only name and icon are required; an absent
// level takes the column default, an explicit 0 is stored as 0.
type skillRequest struct {
	skillFields
	Name        string   `json:"name" validate:"required"`
	Icon        string   `json:"icon" validate:"required"`
	Level       *flexInt `json:"level" validate:"omitempty,min=0,max=100"`
	Description string   `json:"description"`
}

func (s *skillRequest) messages() map[string]string {
	return map[string]string{
		"name":  "Name and icon are required",
		"icon":  "Name and icon are required",
		"level": "Level must be between 0 and 100",
	}
}

func (s *skillRequest) model() (*models.Skill, error) {
	row := &models.Skill{Name: s.Name, Icon: s.Icon, Level: s.Level.intPtr(), Description: s.Description}
	s.skillFields.apply(row)
	return row, nil
}

type skillUpdate struct {
	withID
	skillFields
	Name        string   `json:"name" validate:"required,min=3"`
	Icon        string   `json:"icon"`
	Level       *flexInt `json:"level" validate:"required,min=0,max=100"`
	Description string   `json:"description" validate:"omitempty,min=5"`
}

func (s *skillUpdate) messages() map[string]string {
	return map[string]string{
		"id":          "ID is required",
		"name":        "Name must be at least 3 characters",
		"level":       "Level must be between 0 and 100",
		"description": "Description must be at least 5 characters",
	}
}

func (s *skillUpdate) model() (*models.Skill, error) {
	row := &models.Skill{Name: s.Name, Icon: s.Icon, Level: s.Level.intPtr(), Description: s.Description}
	s.skillFields.apply(row)
	return row, nil
}

// Testimonials

type testimonialRequest struct {
	Name     string  `json:"name" validate:"required"`
	Position string  `json:"position"`
	Text     string  `json:"text" validate:"required"`
	Avatar   string  `json:"avatar"`
	Rating   flexInt `json:"rating" validate:"required,min=1,max=5"`
}

func (t *testimonialRequest) messages() map[string]string {
	return map[string]string{
		"name":       "Name, text and rating are required",
		"text":       "Name, text and rating are required",
		"rating":     "Name, text and rating are required",
		"rating.min": "Rating must be between 1 and 5",
		"rating.max": "Rating must be between 1 and 5",
	}
}

// model approves new testimonials straight away.
func (t *testimonialRequest) model() (*models.Testimonial, error) {
	return &models.Testimonial{
		Name:     t.Name,
		Position: t.Position,
		Text:     t.Text,
		Avatar:   t.Avatar,
		Rating:   int(t.Rating),
		Approved: true,
	}, nil
}

type testimonialUpdate struct {
	withID
	testimonialRequest
	Approved bool `json:"approved"`
}

func (t *testimonialUpdate) messages() map[string]string {
	msgs := t.testimonialRequest.messages()
	msgs["id"] = "ID is required"
	return msgs
}

func (t *testimonialUpdate) model() (*models.Testimonial, error) {
	row, _ := t.testimonialRequest.model()
	row.Approved = t.Approved
	return row, nil
}

// Experience

type experienceRequest struct {
	Year        string `json:"year" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

func (e *experienceRequest) messages() map[string]string {
	return map[string]string{
		"id":    "ID is required",
		"year":  "Year and title are required",
		"title": "Year and title are required",
	}
}

func (e *experienceRequest) model() (*models.ExperienceEntry, error) {
	return &models.ExperienceEntry{
		Year:        e.Year,
		Title:       e.Title,
		Description: e.Description,
		Icon:        e.Icon,
	}, nil
}

type experienceUpdate struct {
	withID
	experienceRequest
}
