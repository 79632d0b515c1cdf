package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/finebook/finebook/internal/infra"
)

// RouterConfig holds the optional parts of the router. A nil Limiter disables
// rate limiting and a nil Gatherer leaves /metrics unmounted.
type RouterConfig struct {
	Verifier TokenVerifier
	Limiter  Limiter
	Metrics  *infra.Metrics
	Gatherer prometheus.Gatherer
}

func NewRouter(h *Handlers, cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", h.Health).Methods("GET")
	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})).Methods("GET")
	}

	rpc := r.Methods("POST").Subrouter()
	if cfg.Metrics != nil {
		rpc.Use(Instrument(cfg.Metrics))
	}
	rpc.Use(Authenticate(cfg.Verifier))
	if cfg.Limiter != nil {
		rpc.Use(RateLimit(cfg.Limiter, h.Log))
	}

	rpc.HandleFunc("/team.new", h.TeamNew)
	rpc.HandleFunc("/paypalMe.edit", h.PaypalMeEdit)
	rpc.HandleFunc("/person.add", h.PersonAdd)
	rpc.HandleFunc("/person.update", h.PersonUpdate)
	rpc.HandleFunc("/person.delete", h.PersonDelete)
	rpc.HandleFunc("/fineTemplate.add", h.FineTemplateAdd)
	rpc.HandleFunc("/fineTemplate.update", h.FineTemplateUpdate)
	rpc.HandleFunc("/fineTemplate.delete", h.FineTemplateDelete)
	rpc.HandleFunc("/fine.add", h.FineAdd)
	rpc.HandleFunc("/fine.update", h.FineUpdate)
	rpc.HandleFunc("/fine.delete", h.FineDelete)
	rpc.HandleFunc("/user.login", h.UserLogin)
	rpc.HandleFunc("/user.register", h.UserRegister)
	rpc.HandleFunc("/user.roleEdit", h.UserRoleEdit)
	rpc.HandleFunc("/invitation.invite", h.InvitationInvite)
	rpc.HandleFunc("/invitation.withdraw", h.InvitationWithdraw)
	rpc.HandleFunc("/invitation.getPerson", h.InvitationGetPerson)
	rpc.HandleFunc("/invitation.register", h.InvitationRegister)
	rpc.HandleFunc("/notification.register", h.NotificationRegister)
	rpc.HandleFunc("/notification.subscribe", h.NotificationSubscribe)
	return r
}
