package main

import (
	"context"
	"fmt"

	"github.com/govalues/decimal"
	"github.com/pequenoleitor/ordercore/internal/adapter/auth"
	"github.com/pequenoleitor/ordercore/internal/adapter/config"
	"github.com/pequenoleitor/ordercore/internal/adapter/gateway"
	"github.com/pequenoleitor/ordercore/internal/adapter/handler/http"
	"github.com/pequenoleitor/ordercore/internal/adapter/logger"
	"github.com/pequenoleitor/ordercore/internal/adapter/notify"
	"github.com/pequenoleitor/ordercore/internal/adapter/storage"
	"github.com/pequenoleitor/ordercore/internal/adapter/storage/repository"
	"github.com/pequenoleitor/ordercore/internal/core/domain"
	"github.com/pequenoleitor/ordercore/internal/core/service"
	"go.uber.org/zap"
)

func main() {
	conf, err := config.NewConfig()
	if err != nil {
		fmt.Printf("config error:%s", err)
		return
	}

	log := logger.NewLogger(conf.App)
	if log == nil {
		fmt.Printf("error creating log")
		return
	}
	defer func() {
		err := log.Sync()
		if err != nil {
			fmt.Printf("log error: %s", err)
		}
	}()

	ctx := context.Background()

	db, err := storage.NewDBStorage(ctx, conf.Database)
	if err != nil {
		log.Error("database error", zap.Error(err))
		return
	}
	err = db.RunMigrations()
	if err != nil {
		log.Error("database migration error", zap.Error(err))
		return
	}

	repo, err := repository.NewRepository(db)
	if err != nil {
		log.Error("repository creating error", zap.Error(err))
		return
	}

	tokenService, err := auth.New(conf.Auth)
	if err != nil {
		log.Error("token service creating error", zap.Error(err))
		return
	}

	pixClient, err := gateway.NewPIXClient(conf.Gateway, log.Named("PIX"))
	if err != nil {
		log.Error("pix gateway creating error", zap.Error(err))
		return
	}
	cardClient, err := gateway.NewCardClient(conf.Gateway, log.Named("Card"))
	if err != nil {
		log.Error("card gateway creating error", zap.Error(err))
		return
	}
	gateways := gateway.NewRegistry()
	gateways.Register(domain.PaymentMethodPIX, pixClient)
	gateways.Register(domain.PaymentMethodCard, cardClient)

	shippingFee, err := decimal.Parse(conf.App.ShippingFee)
	if err != nil {
		log.Error("shipping fee parse error", zap.Error(err))
		return
	}

	poller := gateway.NewPoller(log.Named("Poller"))
	notifier := notify.NewLogNotifier(log.Named("Notify"))

	svc, err := service.NewService(repo, gateways, poller, notifier, shippingFee, log.Named("Service"))
	if err != nil {
		log.Error("order service creating error", zap.Error(err))
		return
	}

	poller.Run(ctx, svc, conf.Gateway.PollWorkers)
	if err := gateway.RecallPendingPayments(ctx, repo, poller); err != nil {
		log.Error("recall pending payments error", zap.Error(err))
	}

	orderHandler, err := http.NewOrderHandler(svc, log.Named("Order handler"))
	if err != nil {
		log.Error("order handler creating error", zap.Error(err))
		return
	}
	paymentHandler, err := http.NewPaymentHandler(svc, log.Named("Payment handler"))
	if err != nil {
		log.Error("payment handler creating error", zap.Error(err))
		return
	}
	webhookHandler, err := http.NewWebhookHandler(svc, log.Named("Webhook handler"))
	if err != nil {
		log.Error("webhook handler creating error", zap.Error(err))
		return
	}
	adminHandler, err := http.NewAdminHandler(svc, log.Named("Admin handler"))
	if err != nil {
		log.Error("admin handler creating error", zap.Error(err))
		return
	}

	r, err := http.NewRouter(conf.HTTP, tokenService,
		orderHandler, paymentHandler, webhookHandler, adminHandler)
	if err != nil {
		log.Error("router creating error", zap.Error(err))
		return
	}

	err = r.Serve(conf.HTTP.HostString)
	if err != nil {
		log.Error("router serve error", zap.Error(err))
		return
	}
}
