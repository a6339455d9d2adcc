package main

import (
	"context"
	"fmt"

	"github.com/eksporyuk/service-wallet/config"
	"github.com/eksporyuk/service-wallet/service/business"
	"github.com/eksporyuk/service-wallet/service/events"
	"github.com/eksporyuk/service-wallet/service/handlers"
	"github.com/eksporyuk/service-wallet/service/models"
	"github.com/eksporyuk/service-wallet/service/repository"
	"github.com/pitabwire/frame"
)

func main() {
	serviceName := "service_wallet"
	ctx := context.Background()
	walletConfig, err := frame.ConfigFromEnv[config.WalletConfig]()
	if err != nil {
		fmt.Printf("could not load config: %v\n", err)
	}
	ctx, service := frame.NewServiceWithContext(ctx, serviceName, frame.WithConfig(&walletConfig))

	logger := service.Log(ctx).WithField("type", "main")

	defer service.Stop(ctx)

	logger.Info("starting service...")
	service.Init(ctx, frame.WithDatastore())

	if walletConfig.DoDatabaseMigrate() {
		err = service.MigrateDatastore(ctx, walletConfig.GetDatabaseMigrationPath(),
			&models.Account{}, &models.LedgerEntry{}, &models.PendingRevenue{}, &models.Transaction{})
		if err != nil {
			logger.WithError(err).Fatal("could not migrate successfully")
		}
		return
	}

	workManager := repository.NewWorkManager(ctx, service)
	repos := business.Repositories{
		Account:     repository.NewAccountRepository(ctx, service),
		LedgerEntry: repository.NewLedgerEntryRepository(ctx, service),
		Revenue:     repository.NewPendingRevenueRepository(ctx, service),
		Transaction: repository.NewTransactionRepository(ctx, service),
	}

	registry := business.NewConfigBeneficiaryRegistry(&walletConfig)
	notifier := business.NewEventNotifier(service)

	distributionBusiness, err := business.NewDistributionBusiness(ctx, service, &walletConfig, registry, notifier, workManager, repos)
	if err != nil {
		logger.WithError(err).Fatal("could not setup distribution business")
	}

	approvalBusiness, err := business.NewApprovalBusiness(ctx, service, notifier, workManager, repos)
	if err != nil {
		logger.WithError(err).Fatal("could not setup approval business")
	}

	settlementHandler := handlers.NewSettlementQueueHandler(service, distributionBusiness)
	approveHandler := handlers.NewRevenueApproveHandler(service, approvalBusiness)
	rejectHandler := handlers.NewRevenueRejectHandler(service, approvalBusiness)

	queueURL := walletConfig.QueueURL
	serviceOptions := []frame.Option{
		frame.WithRegisterEvents(
			&events.BeneficiaryNotify{Service: service, Topic: walletConfig.NotificationTopic},
		),
		frame.WithRegisterPublisher(walletConfig.NotificationTopic, queueURL+walletConfig.NotificationTopic),
		frame.WithRegisterSubscriber(walletConfig.SettlementTopic, queueURL+walletConfig.SettlementTopic, settlementHandler),
		frame.WithRegisterSubscriber(walletConfig.RevenueApproveTopic, queueURL+walletConfig.RevenueApproveTopic, approveHandler),
		frame.WithRegisterSubscriber(walletConfig.RevenueRejectTopic, queueURL+walletConfig.RevenueRejectTopic, rejectHandler),
	}

	service.Init(ctx, serviceOptions...)

	logger.WithField("server http port", walletConfig.HTTPServerPort).
		Info("Initiating server operations")

	err = service.Run(ctx, "")
	if err != nil {
		logger.WithError(err).Fatal("could not run Server")
	}
}
