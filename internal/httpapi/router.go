package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/thevarp19/rams-tech-task/internal/api"
	"github.com/thevarp19/rams-tech-task/internal/calculator"
	"github.com/thevarp19/rams-tech-task/pkg/config"
)

type Dependencies struct {
	Cfg   config.Config
	Store *calculator.Store
	Log   *logrus.Logger
}

func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	h := calculator.Handlers{Store: deps.Store, Log: deps.Log}

	r.Route("/v1", func(r chi.Router) {
		r.Use(api.CORSMiddleware(api.CORSOptions{
			AllowedOrigins: deps.Cfg.AllowedOrigins,
		}))
		r.Use(api.TokenAuth(deps.Cfg.AuthSecret))

		r.Post("/sessions", h.CreateSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", h.GetSession)
			r.Patch("/form", h.PatchForm)

			r.Post("/payments", h.AddInstallment)
			r.Post("/payments/{paymentID}/amount", h.EditAmount)
			r.Delete("/payments/{paymentID}", h.RemoveInstallment)
			r.Post("/reorder", h.Reorder)

			r.Get("/summary", h.Summary)
			r.Get("/notifications", h.Notifications)
		})
	})

	return r
}
