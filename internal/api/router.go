package api

import (
	"log"
	"net/http"
	"runtime/debug"

	"github.com/gorilla/mux"

	"github.com/Ibrohimov-Zafar/DevVibe/internal/auth"
	"github.com/Ibrohimov-Zafar/DevVibe/internal/models"
)

const (
	// DashboardPrefix is the admin area guarded by the session cookie.
	DashboardPrefix = "/pages/dashboard"
	// LoginPath is where unauthenticated dashboard visits are sent.
	LoginPath = "/login"
)

type registrar interface {
	register(r *mux.Router)
}

func (a *API) resources() []registrar {
	s := a.store
	return []registrar{
		&resource[models.Post]{
			api: a, name: "posts", noun: "Post", store: s.Posts, created: http.StatusOK,
			filters: []listFilter{
				{param: "status", column: "status"},
				{param: "featured", column: "featured", boolean: true},
			},
			decodeC: func() input[models.Post] { return &postRequest{} },
			decodeU: func() updateInput[models.Post] { return &postUpdate{} },
		},
		&resource[models.PortfolioItem]{
			api: a, name: "portfolio", noun: "Portfolio item", store: s.Portfolio, created: http.StatusOK,
			filters: []listFilter{
				{param: "featured", column: "featured", boolean: true},
			},
			decodeC: func() input[models.PortfolioItem] { return &portfolioRequest{} },
			decodeU: func() updateInput[models.PortfolioItem] { return &portfolioUpdate{} },
		},
		&resource[models.Project]{
			api: a, name: "projects", noun: "Project", store: s.Projects, created: http.StatusOK,
			decodeC: func() input[models.Project] { return &projectRequest{} },
			decodeU: func() updateInput[models.Project] { return &projectUpdate{} },
		},
		&resource[models.Skill]{
			api: a, name: "skills", noun: "Skill", store: s.Skills, created: http.StatusCreated,
			filters: []listFilter{
				{param: "featured", column: "featured", boolean: true},
			},
			decodeC: func() input[models.Skill] { return &skillRequest{} },
			decodeU: func() updateInput[models.Skill] { return &skillUpdate{} },
		},
		&resource[models.Testimonial]{
			api: a, name: "testimonials", noun: "Testimonial", store: s.Testimonials, created: http.StatusOK,
			filters: []listFilter{
				{param: "approved", column: "approved", boolean: true},
			},
			decodeC: func() input[models.Testimonial] { return &testimonialRequest{} },
			decodeU: func() updateInput[models.Testimonial] { return &testimonialUpdate{} },
		},
		&resource[models.ExperienceEntry]{
			api: a, name: "experience", noun: "Experience entry", store: s.Experience, created: http.StatusOK,
			decodeC: func() input[models.ExperienceEntry] { return &experienceRequest{} },
			decodeU: func() updateInput[models.ExperienceEntry] { return &experienceUpdate{} },
		},
	}
}

// Router returns the complete handler: API routes, the guarded dashboard
// and panic recovery.
func (a *API) Router() http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	r.HandleFunc("/health", a.health).Methods(http.MethodGet)

	for _, res := range a.resources() {
		res.register(r)
	}

	r.HandleFunc("/api/profile", a.getProfile).Methods(http.MethodGet)
	r.HandleFunc("/api/profile", a.updateProfile).Methods(http.MethodPut)
	r.HandleFunc("/api/settings", a.getSettings).Methods(http.MethodGet)
	r.HandleFunc("/api/settings", a.updateSettings).Methods(http.MethodPut)
	r.HandleFunc("/api/contact", a.contact).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", a.login).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/logout", a.logout).Methods(http.MethodPost)
	r.Handle("/api/auth/me", auth.Authenticate(a.tokens)(http.HandlerFunc(a.me))).Methods(http.MethodGet)
	r.HandleFunc("/api/uploads", a.upload).Methods(http.MethodPost)
	r.HandleFunc("/api/uploads", a.deleteUpload).Methods(http.MethodDelete)

	if a.dashboardDir != "" {
		r.PathPrefix(DashboardPrefix).
			Handler(http.StripPrefix(DashboardPrefix, http.FileServer(http.Dir(a.dashboardDir)))).
			Methods(http.MethodGet, http.MethodHead)
	}

	guard := auth.Guard(a.tokens, DashboardPrefix, LoginPath)
	return recoverer(guard(r))
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, "Route not found")
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
}

// recoverer turns a panicking handler into a 500 envelope.
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Printf("panic serving %s %s: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
