package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/Ibrohimov-Zafar/DevVibe/internal/models"
	"github.com/Ibrohimov-Zafar/DevVibe/internal/notify"
	"github.com/Ibrohimov-Zafar/DevVibe/internal/store"
)

func (a *API) getProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := a.store.Site.Profile(r.Context())
	if err != nil {
		serverError(w, "Failed to load profile", err)
		return
	}
	writeData(w, http.StatusOK, profile)
}

type profileRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email" validate:"omitempty,email"`
	Phone           string `json:"phone"`
	Avatar          string `json:"avatar"`
	Bio             string `json:"bio"`
	Profession      string `json:"profession"`
	Location        string `json:"location"`
	Website         string `json:"website"`
	BirthDate       string `json:"birth_date"`
	Experience      string `json:"experience"`
	Education       string `json:"education"`
	SocialGithub    string `json:"social_github"`
	SocialLinkedin  string `json:"social_linkedin"`
	SocialTelegram  string `json:"social_telegram"`
	SocialInstagram string `json:"social_instagram"`
}

func (p *profileRequest) messages() map[string]string {
	return map[string]string{"email": "Invalid email address"}
}

func (p *profileRequest) model() (*models.Profile, error) {
	birth, err := optionalDate("birth_date", p.BirthDate)
	if err != nil {
		return nil, err
	}
	return &models.Profile{
		Name:            p.Name,
		Email:           p.Email,
		Phone:           p.Phone,
		Avatar:          p.Avatar,
		Bio:             p.Bio,
		Profession:      p.Profession,
		Location:        p.Location,
		Website:         p.Website,
		BirthDate:       birth,
		Experience:      p.Experience,
		Education:       p.Education,
		SocialGithub:    p.SocialGithub,
		SocialLinkedin:  p.SocialLinkedin,
		SocialTelegram:  p.SocialTelegram,
		SocialInstagram: p.SocialInstagram,
	}, nil
}

func (a *API) updateProfile(w http.ResponseWriter, r *http.Request) {
	var in profileRequest
	if err := decode(r, &in); err != nil {
		fail(w, "Failed to update profile", err)
		return
	}
	row, err := in.model()
	if err != nil {
		fail(w, "Failed to update profile", err)
		return
	}

	profile, err := a.store.Site.UpdateProfile(r.Context(), row)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Profile not found")
		return
	}
	if err != nil {
		serverError(w, "Failed to update profile", err)
		return
	}

	a.changed(r.Context(), "profile", notify.ActionUpdated, profile.ID)
	writeJSON(w, http.StatusOK, Response{Success: true, Data: profile, Message: "Profile updated successfully"})
}

// settingsView is the nested shape the dashboard reads settings in.
type settingsView struct {
	ID            uint      `json:"id"`
	UserID        uint      `json:"user_id"`
	Theme         string    `json:"theme"`
	Language      string    `json:"language"`
	Notifications struct {
		Email bool `json:"email"`
		Push  bool `json:"push"`
	} `json:"notifications"`
	Privacy struct {
		ProfileVisibility string `json:"profileVisibility"`
	} `json:"privacy"`
	Security struct {
		SessionTimeout int `json:"sessionTimeout"`
	} `json:"security"`
	Display struct {
		PostsPerPage   int  `json:"postsPerPage"`
		ShowAnimations bool `json:"showAnimations"`
	} `json:"display"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newSettingsView(s *models.Settings) settingsView {
	v := settingsView{
		ID:        s.ID,
		UserID:    s.UserID,
		Theme:     s.Theme,
		Language:  s.Language,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	v.Notifications.Email = s.NotificationsEmail
	v.Notifications.Push = s.NotificationsPush
	v.Privacy.ProfileVisibility = s.PrivacyProfileVisibility
	v.Security.SessionTimeout = s.SecuritySessionTimeout
	if v.Security.SessionTimeout == 0 {
		v.Security.SessionTimeout = defaultSessionTimeout
	}
	v.Display.PostsPerPage = s.DisplayPostsPerPage
	v.Display.ShowAnimations = s.DisplayAnimations
	return v
}

const (
	defaultSessionTimeout = 30
	defaultPostsPerPage   = 10
)

func (a *API) getSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := a.store.Site.Settings(r.Context())
	if err != nil {
		serverError(w, "Failed to load settings", err)
		return
	}
	writeData(w, http.StatusOK, newSettingsView(settings))
}

// settingsRequest mirrors settingsView. Omitted groups fall back to the
// defaults seeded on first read.
type settingsRequest struct {
	Theme         string `json:"theme" validate:"required"`
	Language      string `json:"language" validate:"required"`
	Notifications *struct {
		Email *bool `json:"email"`
		Push  *bool `json:"push"`
	} `json:"notifications"`
	Privacy *struct {
		ProfileVisibility string `json:"profileVisibility"`
	} `json:"privacy"`
	Security *struct {
		SessionTimeout flexInt `json:"sessionTimeout" validate:"min=0"`
	} `json:"security"`
	Display *struct {
		PostsPerPage   flexInt `json:"postsPerPage" validate:"min=0"`
		ShowAnimations *bool   `json:"showAnimations"`
	} `json:"display"`
}

func (s *settingsRequest) messages() map[string]string {
	return map[string]string{
		"theme":    "Theme and language are required",
		"language": "Theme and language are required",
	}
}

func (s *settingsRequest) model() *models.Settings {
	out := &models.Settings{
		Theme:                    s.Theme,
		Language:                 s.Language,
		NotificationsEmail:       true,
		NotificationsPush:        true,
		PrivacyProfileVisibility: "public",
		SecuritySessionTimeout:   defaultSessionTimeout,
		DisplayPostsPerPage:      defaultPostsPerPage,
		DisplayAnimations:        true,
	}
	if n := s.Notifications; n != nil {
		if n.Email != nil {
			out.NotificationsEmail = *n.Email
		}
		if n.Push != nil {
			out.NotificationsPush = *n.Push
		}
	}
	if p := s.Privacy; p != nil && p.ProfileVisibility != "" {
		out.PrivacyProfileVisibility = p.ProfileVisibility
	}
	if sec := s.Security; sec != nil && sec.SessionTimeout > 0 {
		out.SecuritySessionTimeout = int(sec.SessionTimeout)
	}
	if d := s.Display; d != nil {
		if d.PostsPerPage > 0 {
			out.DisplayPostsPerPage = int(d.PostsPerPage)
		}
		if d.ShowAnimations != nil {
			out.DisplayAnimations = *d.ShowAnimations
		}
	}
	return out
}

func (a *API) updateSettings(w http.ResponseWriter, r *http.Request) {
	var in settingsRequest
	if err := decode(r, &in); err != nil {
		fail(w, "Failed to save settings", err)
		return
	}

	settings, err := a.store.Site.UpdateSettings(r.Context(), in.model())
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Settings not found")
		return
	}
	if err != nil {
		serverError(w, "Failed to save settings", err)
		return
	}

	a.changed(r.Context(), "settings", notify.ActionUpdated, settings.ID)
	writeJSON(w, http.StatusOK, Response{Success: true, Data: newSettingsView(settings), Message: "Settings saved successfully"})
}
