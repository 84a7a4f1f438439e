package handlers

import (
	"errors"
	"net/http"

	"orderform/cmd/orderform/config"
	"orderform/cmd/orderform/models"
	"orderform/cmd/orderform/order"
	"orderform/cmd/orderform/session"
	"orderform/cmd/orderform/storage"
	"orderform/cmd/orderform/views"

	"go.uber.org/zap"
)

const (
	OrderFormPath = "/order-form"
	OrdersPath    = "/orders"
)

type Controller struct {
	conf           *config.Config
	storageService storage.StorageService
	sessionService session.SessionService
	orderService   *order.Service
	sugar          *zap.SugaredLogger
}

func NewController(
	conf *config.Config,
	storageService storage.StorageService,
	sessionService session.SessionService,
	orderService *order.Service,
	logger *zap.SugaredLogger,
) *Controller {
	return &Controller{
		conf:           conf,
		storageService: storageService,
		sessionService: sessionService,
		orderService:   orderService,
		sugar:          logger,
	}
}

func (con *Controller) Index() http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		http.Redirect(res, req, OrderFormPath, http.StatusFound)
	}
}

func (con *Controller) OrderForm() http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		flash, err := con.sessionService.PopFlash(res, req)
		if err != nil {
			con.sugar.Debugf("(OrderForm) discarding unreadable flash: %v", err)
		}

		page := views.OrderFormPage{
			Action:  OrdersPath,
			Success: flash.Success,
			Errors:  flash.Errors,
			Old:     flash.Old,
		}

		res.Header().Set("Content-Type", "text/html; charset=utf-8")
		res.Header().Set("Cache-Control", "no-store")
		if err := views.RenderOrderForm(res, page); err != nil {
			con.sugar.Errorf("(OrderForm) render: %v", err)
			http.Error(res, "Internal server error", http.StatusInternalServerError)
		}
	}
}

func (con *Controller) OrdersStore() http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		if err := req.ParseForm(); err != nil {
			http.Error(res, "Bad request", http.StatusBadRequest)
			return
		}

		submission := submissionFromForm(req.PostForm)

		created, err := con.orderService.Submit(req.Context(), submission)

		var verr *order.ValidationError
		switch {
		case errors.As(err, &verr):
			con.sugar.Debugf("(OrdersStore) %v", verr)
			con.flashAndRedirect(res, req, models.Flash{
				Errors: verr.Fields,
				Old:    oldInput(submission),
			})
		case err != nil:
			con.sugar.Errorf("(OrdersStore) %v", err)
			http.Error(res, "Internal server error", http.StatusInternalServerError)
		default:
			con.sugar.Infof("(OrdersStore) order %d created", created.Order.ID)
			con.flashAndRedirect(res, req, models.Flash{Success: created.Message})
		}
	}
}

func (con *Controller) Ping() http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {
		if err := con.storageService.Ping(req.Context()); err != nil {
			con.sugar.Errorf("(Ping) %v", err)
			http.Error(res, "Internal server error", http.StatusInternalServerError)
			return
		}
		res.WriteHeader(http.StatusOK)
	}
}

func (con *Controller) flashAndRedirect(res http.ResponseWriter, req *http.Request, flash models.Flash) {
	if err := con.sessionService.SetFlash(res, flash); err != nil {
		con.sugar.Errorf("(flashAndRedirect) set flash: %v", err)
		http.Error(res, "Internal server error", http.StatusInternalServerError)
		return
	}
	http.Redirect(res, req, backURL(req), http.StatusFound)
}
