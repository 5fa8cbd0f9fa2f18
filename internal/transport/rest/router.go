package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/spars/crm-backend/internal/auth"
	"github.com/spars/crm-backend/internal/config"
	"github.com/spars/crm-backend/internal/transport/middleware"
)

// Handlers bundles every REST handler the router mounts.
type Handlers struct {
	Health     *HealthHandler
	Auth       *AuthHandler
	User       *UserHandler
	Role       *RoleHandler
	Lead       *LeadHandler
	CallLog    *CallLogHandler
	Reminder   *ReminderHandler
	Calendar   *CalendarHandler
	Activity   *ActivityHandler
	Submission *SubmissionHandler
	Newsletter *NewsletterHandler
	Tag        *TagHandler
	Report     *ReportHandler
}

// NewRouter assembles the HTTP routing table. Login, form intake and
// newsletter signup are public and rate limited; everything else
// requires a valid bearer token.
func NewRouter(
	log *slog.Logger,
	cfg config.CORSConfig,
	rl *middleware.RateLimiter,
	publicPerMinute int,
	tokens *auth.JWTManager,
	h Handlers,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.Auth(tokens))

	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.Health.Health)
		r.Get("/live", h.Health.Live)
		r.Get("/ready", h.Health.Ready)
	})

	limitPublic := rl.Limit(publicPerMinute)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(limitPublic).Post("/login", h.Auth.Login)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireUser)
				r.Get("/me", h.Auth.Me)
				r.Post("/change-password", h.Auth.ChangePassword)
			})
		})

		r.Route("/form-submissions", func(r chi.Router) {
			r.With(limitPublic).Post("/", h.Submission.Intake)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireUser)
				r.Get("/", h.Submission.List)
				r.Get("/type/{formType}", h.Submission.ListByType)
				r.Get("/{id}", h.Submission.Get)
				r.Post("/{id}/archive", h.Submission.Archive)
				r.Delete("/{id}", h.Submission.Delete)
			})
		})

		r.Route("/newsletter", func(r chi.Router) {
			r.With(limitPublic).Post("/", h.Newsletter.Subscribe)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireUser)
				r.Get("/", h.Newsletter.List)
				r.Patch("/{id}", h.Newsletter.SetActive)
				r.Delete("/{id}", h.Newsletter.Delete)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser)

			r.Route("/users", func(r chi.Router) {
				r.Get("/", h.User.List)
				r.Post("/", h.User.Create)
				r.Get("/assignable", h.User.Assignable)
				r.Get("/hierarchy", h.User.Hierarchy)
				r.Get("/{id}", h.User.Get)
				r.Patch("/{id}", h.User.Update)
				r.Delete("/{id}", h.User.Delete)
			})

			r.Route("/roles", func(r chi.Router) {
				r.Get("/", h.Role.List)
				r.Post("/", h.Role.Create)
				r.Get("/{id}", h.Role.Get)
				r.Patch("/{id}", h.Role.Update)
				r.Delete("/{id}", h.Role.Delete)
			})

			r.Route("/leads", func(r chi.Router) {
				r.Get("/", h.Lead.List)
				r.Post("/", h.Lead.Create)
				r.Post("/convert/{submissionID}", h.Lead.Convert)
				r.Get("/{id}", h.Lead.Get)
				r.Patch("/{id}", h.Lead.Update)
				r.Delete("/{id}", h.Lead.Delete)
			})

			r.Route("/comments", func(r chi.Router) {
				r.Post("/", h.Lead.AddComment)
				r.Get("/{leadID}", h.Lead.ListComments)
			})

			r.Route("/call-logs", func(r chi.Router) {
				r.Get("/", h.CallLog.List)
				r.Post("/", h.CallLog.Create)
				r.Get("/{id}", h.CallLog.Get)
				r.Patch("/{id}", h.CallLog.Update)
				r.Delete("/{id}", h.CallLog.Delete)
			})

			r.Route("/reminders", func(r chi.Router) {
				r.Get("/", h.Reminder.List)
				r.Post("/", h.Reminder.Create)
				r.Get("/my/upcoming", h.Reminder.MyUpcoming)
				r.Get("/{id}", h.Reminder.Get)
				r.Patch("/{id}", h.Reminder.Update)
				r.Delete("/{id}", h.Reminder.Delete)
			})

			r.Get("/calendar/feed", h.Calendar.Feed)

			r.Route("/activities", func(r chi.Router) {
				r.Get("/", h.Activity.List)
				r.Get("/recent", h.Activity.Recent)
				r.Get("/lead/{id}", h.Activity.ForLead)
				r.Get("/user/{id}", h.Activity.ForUser)
			})

			r.Route("/tags", func(r chi.Router) {
				r.Get("/", h.Tag.List)
				r.Post("/", h.Tag.Create)
				r.Patch("/{id}", h.Tag.Update)
				r.Delete("/{id}", h.Tag.Delete)
				r.Route("/entity/{entityType}/{entityID}", func(r chi.Router) {
					r.Get("/", h.Tag.ForEntity)
					r.Post("/", h.Tag.Attach)
					r.Delete("/{tagID}", h.Tag.Detach)
				})
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/team-performance", h.Report.TeamPerformance)
				r.Get("/org-performance", h.Report.OrgPerformance)
			})
		})
	})

	return r
}
