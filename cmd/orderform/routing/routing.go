package routing

import (
	"net/http"
	"time"

	"orderform/cmd/orderform/config"
	"orderform/cmd/orderform/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func InitMiddleware(r *chi.Mux, conf *config.Config, ctrl *handlers.Controller) {
	r.Use(ctrl.PanicRecoveryMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(time.Duration(conf.Timeout) * time.Second))
	r.Use(ctrl.RequestIDMiddleware)
	r.Use(ctrl.LoggingMiddleware)
	r.Use(ctrl.GzipEncodeMiddleware)
	r.Use(ctrl.GzipDecodeMiddleware)
}

func Routing(r *chi.Mux, ctrl *handlers.Controller) {
	r.Get("/", ctrl.Index())
	r.Get(handlers.OrderFormPath, ctrl.OrderForm())
	r.Post(handlers.OrdersPath, ctrl.OrdersStore())
	r.Get("/ping", ctrl.Ping())

	r.MethodNotAllowed(func(res http.ResponseWriter, _ *http.Request) {
		http.Error(res, "Method not allowed", http.StatusMethodNotAllowed)
	})
}
