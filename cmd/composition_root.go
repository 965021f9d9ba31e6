package cmd

import (
	"context"
	"fmt"
	"strings"

	httpadapter "dispatch/internal/adapters/in/http"
	inkafka "dispatch/internal/adapters/in/kafka"
	outkafka "dispatch/internal/adapters/out/kafka"
	"dispatch/internal/adapters/out/notify"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use case handlers. It owns the
// singletons holding external connections; handlers are cheap and built
// fresh for whoever asks.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	pricing    services.DistancePricingEngine
	codes      services.HandoffCodeService
	notifier   ports.Notifier
	publisher  *outkafka.Publisher
	logger     *zap.Logger
}

func NewCompositionRoot(
	ctx context.Context,
	config Config,
	gormDB *gorm.DB,
	logger *zap.Logger,
) (CompositionRoot, error) {
	pricing, err := services.NewDistancePricingEngine(
		decimal.NewFromInt(config.MinimumTransportCharge))
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("create pricing engine: %w", err)
	}

	codes, err := services.NewHandoffCodeService(pricing, config.CodeExpirySlack)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("create handoff code service: %w", err)
	}

	notifier, err := notify.NewSESNotifier(ctx, config.SESRegion, config.SESFromEmail, logger)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("create notifier: %w", err)
	}

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		pricing:    pricing,
		codes:      codes,
		notifier:   notifier,
		publisher:  outkafka.NewPublisher(strings.Split(config.KafkaHost, ",")),
		logger:     logger,
	}, nil
}

// Close releases broker connections owned by the root.
func (c *CompositionRoot) Close() error {
	return c.publisher.Close()
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.pricing)
}

func (c *CompositionRoot) CreateCreatePilotCommandHandler() commands.CreatePilotCommandHandler {
	var f commands.PilotUoWFactory = FuncPilotUoWFactory(func() commands.PilotUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreatePilotCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdatePilotProfileCommandHandler() commands.UpdatePilotProfileCommandHandler {
	var f commands.PilotUoWFactory = FuncPilotUoWFactory(func() commands.PilotUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdatePilotProfileCommandHandler(f)
}

func (c *CompositionRoot) CreateAdvanceOrderCommandHandler() commands.AdvanceOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvanceOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateClaimOrderCommandHandler() commands.ClaimOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewClaimOrderCommandHandler(f, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateIssueHandoffCodeCommandHandler() commands.IssueHandoffCodeCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewIssueHandoffCodeCommandHandler(f, c.codes)
}

func (c *CompositionRoot) CreateStartJourneyCommandHandler() commands.StartJourneyCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewStartJourneyCommandHandler(f, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteDeliveryCommandHandler(f, c.codes, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateReportLocationCommandHandler() commands.ReportLocationCommandHandler {
	var f commands.PilotUoWFactory = FuncPilotUoWFactory(func() commands.PilotUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReportLocationCommandHandler(f)
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler() commands.RelayOutboxCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRelayOutboxCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateSweepExpiredCodesCommandHandler() commands.SweepExpiredCodesCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSweepExpiredCodesCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrderSummaryQueryHandler() queries.GetOrderSummaryQueryHandler {
	return queries.NewGetOrderSummaryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDispatchableOrdersQueryHandler() queries.GetDispatchableOrdersQueryHandler {
	return queries.NewGetDispatchableOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPilotHistoryQueryHandler() queries.GetPilotHistoryQueryHandler {
	return queries.NewGetPilotHistoryQueryHandler(c.gormDB)
}

// CreateHTTPServer wires every REST endpoint to its handlers.
func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateAdvanceOrderCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateCreatePilotCommandHandler(),
		c.CreateUpdatePilotProfileCommandHandler(),
		c.CreateIssueHandoffCodeCommandHandler(),
		c.CreateClaimOrderCommandHandler(),
		c.CreateStartJourneyCommandHandler(),
		c.CreateCompleteDeliveryCommandHandler(),
		c.CreateReportLocationCommandHandler(),
		c.CreateGetOrderSummaryQueryHandler(),
		c.CreateGetDispatchableOrdersQueryHandler(),
		c.CreateGetPilotHistoryQueryHandler(),
	)
}

// CreateJobManager wires the background jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateRelayOutboxCommandHandler(),
		c.CreateSweepExpiredCodesCommandHandler(),
		c.config.OutboxRelayBatchSize,
		c.logger,
	)
}

// CreatePaymentConsumer wires the inbound payment event stream.
func (c *CompositionRoot) CreatePaymentConsumer() *inkafka.PaymentConsumer {
	return inkafka.NewPaymentConsumer(
		strings.Split(c.config.KafkaHost, ","),
		c.config.KafkaPaymentTopic,
		c.config.KafkaConsumerGroup,
		c.CreateCreateOrderCommandHandler(),
		c.CreateAdvanceOrderCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncPilotUoWFactory func() commands.PilotUoW

func (f FuncPilotUoWFactory) Create() commands.PilotUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
