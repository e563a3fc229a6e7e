package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/mewicrm/mewi/internal/auth"
	"github.com/mewicrm/mewi/internal/client"
	clientStore "github.com/mewicrm/mewi/internal/client/store"
	"github.com/mewicrm/mewi/internal/communication"
	commStore "github.com/mewicrm/mewi/internal/communication/store"
	"github.com/mewicrm/mewi/internal/config"
	"github.com/mewicrm/mewi/internal/database"
	"github.com/mewicrm/mewi/internal/debtor"
	debtorStore "github.com/mewicrm/mewi/internal/debtor/store"
	"github.com/mewicrm/mewi/internal/dunning"
	dunningStore "github.com/mewicrm/mewi/internal/dunning/store"
	mewiHttp "github.com/mewicrm/mewi/internal/http"
	clientHandler "github.com/mewicrm/mewi/internal/http/client"
	commHandler "github.com/mewicrm/mewi/internal/http/communication"
	debtorHandler "github.com/mewicrm/mewi/internal/http/debtor"
	dunningHandler "github.com/mewicrm/mewi/internal/http/dunning"
	historyHandler "github.com/mewicrm/mewi/internal/http/history"
	importHandler "github.com/mewicrm/mewi/internal/http/importcsv"
	invoiceHandler "github.com/mewicrm/mewi/internal/http/invoice"
	paymentHandler "github.com/mewicrm/mewi/internal/http/payment"
	sessionHandler "github.com/mewicrm/mewi/internal/http/session"
	"github.com/mewicrm/mewi/internal/importer"
	"github.com/mewicrm/mewi/internal/invoice"
	invoiceStore "github.com/mewicrm/mewi/internal/invoice/store"
	"github.com/mewicrm/mewi/internal/payment"
	paymentStore "github.com/mewicrm/mewi/internal/payment/store"
	"github.com/mewicrm/mewi/internal/user"
	userStore "github.com/mewicrm/mewi/internal/user/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	tokens := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	var (
		userService    = user.NewService(userStore.New(db))
		clientService  = client.NewService(clientStore.New(db))
		debtorService  = debtor.NewService(debtorStore.New(db))
		invoiceService = invoice.NewService(invoiceStore.New(db))
		paymentService = payment.NewService(paymentStore.New(db))
		commService    = communication.NewService(commStore.New(db))
		dunningService = dunning.NewService(dunningStore.New(db))
		importService  = importer.NewService()
	)

	var (
		sessionH = sessionHandler.NewHandler(userService, tokens)
		clientH  = clientHandler.NewHandler(clientService, debtorService)
		debtorH  = debtorHandler.NewHandler(debtorService, invoiceService, paymentService)
		invoiceH = invoiceHandler.NewHandler(invoiceService)
		paymentH = paymentHandler.NewHandler(paymentService)
		commH    = commHandler.NewHandler(commService)
		historyH = historyHandler.NewHandler(debtorService, invoiceService, paymentService, commService)
		dunningH = dunningHandler.NewHandler(dunningService, debtorService, invoiceService)
		importH  = importHandler.NewHandler(importService, debtorService, invoiceService)
	)

	router := mewiHttp.New(
		tokens,
		cfg.Server.AllowedOrigins,
		sessionH,
		clientH,
		debtorH,
		invoiceH,
		paymentH,
		commH,
		historyH,
		dunningH,
		importH,
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	slog.Info("starting server", "addr", srv.Addr)

	if err := srv.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
