package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsdevblog/groph-settle/internal/config"
	"github.com/fsdevblog/groph-settle/internal/repository/pgrepo"
	"github.com/fsdevblog/groph-settle/internal/repository/repoargs"
	"github.com/fsdevblog/groph-settle/internal/service"
	"github.com/fsdevblog/groph-settle/internal/transport/api"
	"github.com/fsdevblog/groph-settle/internal/transport/notify"
	"github.com/fsdevblog/groph-settle/pkg/uow"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	// driver for migration applying postgres.
	_ "github.com/golang-migrate/migrate/v4/database/postgres" //nolint:revive
	// driver to get migrations from files (*.sql in our case).
	_ "github.com/golang-migrate/migrate/v4/source/file" //nolint:revive
)

const (
	shutdownTimeout              = 10 * time.Second
	readHeaderTimeout            = 5 * time.Second
	notifyLimitPerIteration uint = 50
)

type App struct {
	Config *config.Config
	Logger *logrus.Logger
}

func New(conf *config.Config, l *logrus.Logger) *App {
	return &App{
		Config: conf,
		Logger: l,
	}
}

// Run поднимает подключение к БД, http сервер и, если задан webhook, отправитель уведомлений о комиссиях.
// Работает до SIGINT/SIGTERM или до ошибки любой из частей.
func (a *App) Run() error {
	notifyCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.Logger.WithFields(logrus.Fields{
		"runAddress":    a.Config.RunAddress,
		"migrationsDir": a.Config.MigrationsDir,
		"notifyWebhook": a.Config.NotifyWebhookURL != "",
		"notifyWorkers": a.Config.NotifyWorkers,
	}).Info("Starting app")

	conn, connErr := pgrepo.Connect(notifyCtx, a.Config.MigrationsDir, a.Config.DatabaseDSN, a.Logger)
	if connErr != nil {
		return fmt.Errorf("app run: %s", connErr.Error())
	}
	defer conn.Close()

	unitOfWork, uowErr := initUOW(conn)
	if uowErr != nil {
		return fmt.Errorf("app run: %s", uowErr.Error())
	}

	services, sErr := service.Factory(unitOfWork, a.Logger)
	if sErr != nil {
		return fmt.Errorf("app run: %s", sErr.Error())
	}

	router, routerErr := api.New(api.RouterArgs{
		Logger:            a.Logger,
		SettlementService: services.SettlementService,
		LedgerService:     services.LedgerService,
	})
	if routerErr != nil {
		return fmt.Errorf("app run: %s", routerErr.Error())
	}

	server := &http.Server{
		Addr:              a.Config.RunAddress,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gCtx := errgroup.WithContext(notifyCtx)

	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		return nil
	})

	if a.Config.NotifyWebhookURL != "" {
		processor := notify.NewProcessor(services.NotificationService, a.Config.NotifyWebhookURL, a.Logger).
			SetWorkers(a.Config.NotifyWorkers).
			SetLimitPerIteration(notifyLimitPerIteration)

		g.Go(func() error {
			processor.Run(gCtx)
			return nil
		})
	} else {
		a.Logger.Warn("NOTIFY_WEBHOOK_URL is not set, commission notifications stay in outbox")
	}

	if err := g.Wait(); err != nil {
		return err //nolint:wrapcheck
	}
	return notifyCtx.Err() //nolint:wrapcheck
}

func initUOW(conn *pgxpool.Pool) (*uow.UnitOfWork, error) {
	unitOfWork := uow.NewUnitOfWork(conn)

	factories := map[repoargs.RepositoryName]uow.RepositoryFactory{
		repoargs.AccountRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewAccountRepository(dbtx)
		},
		repoargs.TransactionRequestRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewTransactionRequestRepository(dbtx)
		},
		repoargs.ReferralLedgerRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewReferralLedgerRepository(dbtx)
		},
		repoargs.NotificationRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewNotificationRepository(dbtx)
		},
	}

	for name, factory := range factories {
		if regErr := unitOfWork.Register(uow.RepositoryName(name), factory); regErr != nil {
			return nil, fmt.Errorf("init UOW: %s", regErr.Error())
		}
	}
	return unitOfWork, nil
}
