package cmd

import (
	httpadapter "parcelmatch/internal/adapters/in/http"
	"parcelmatch/internal/adapters/in/ws"
	"parcelmatch/internal/adapters/out/postgres"
	"parcelmatch/internal/core/application/usecases/commands"
	"parcelmatch/internal/core/application/usecases/queries"
	"parcelmatch/internal/core/ports"
	"parcelmatch/internal/jobs"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// CompositionRoot wires repositories, command and query handlers, the HTTP
// server and the background jobs over one database connection and one event
// publisher.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	publisher  ports.EventPublisher
	logger     zerolog.Logger
}

// NewCompositionRoot builds the root over the given connections.
func NewCompositionRoot(_ Config, gormDB *gorm.DB, publisher ports.EventPublisher, logger zerolog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
		logger:     logger,
	}
}

func (c *CompositionRoot) parcelUoWFactory() commands.ParcelUoWFactory {
	return FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) biddingUoWFactory() commands.BiddingUoWFactory {
	return FuncBiddingUoWFactory(func() commands.BiddingUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) notificationUoWFactory() commands.NotificationUoWFactory {
	return FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreatePostParcelCommandHandler() commands.PostParcelCommandHandler {
	return commands.NewPostParcelCommandHandler(c.parcelUoWFactory())
}

func (c *CompositionRoot) CreatePlaceBidCommandHandler() commands.PlaceBidCommandHandler {
	return commands.NewPlaceBidCommandHandler(c.biddingUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateWithdrawBidCommandHandler() commands.WithdrawBidCommandHandler {
	return commands.NewWithdrawBidCommandHandler(c.biddingUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateSelectBidCommandHandler() commands.SelectBidCommandHandler {
	return commands.NewSelectBidCommandHandler(c.biddingUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateCancelParcelCommandHandler() commands.CancelParcelCommandHandler {
	return commands.NewCancelParcelCommandHandler(c.biddingUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateUpdateProgressCommandHandler() commands.UpdateProgressCommandHandler {
	return commands.NewUpdateProgressCommandHandler(c.parcelUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateExpireBidsCommandHandler() commands.ExpireBidsCommandHandler {
	return commands.NewExpireBidsCommandHandler(c.biddingUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateMarkNotificationReadCommandHandler() commands.MarkNotificationReadCommandHandler {
	return commands.NewMarkNotificationReadCommandHandler(c.notificationUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateDeleteNotificationCommandHandler() commands.DeleteNotificationCommandHandler {
	return commands.NewDeleteNotificationCommandHandler(c.notificationUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateGetUserParcelsQueryHandler() queries.GetUserParcelsQueryHandler {
	return queries.NewGetUserParcelsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetParcelBidsQueryHandler() queries.GetParcelBidsQueryHandler {
	return queries.NewGetParcelBidsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetNotificationsQueryHandler() queries.GetNotificationsQueryHandler {
	return queries.NewGetNotificationsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUnreadCountQueryHandler() queries.GetUnreadCountQueryHandler {
	return queries.NewGetUnreadCountQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetVerificationProfileQueryHandler() queries.GetVerificationProfileQueryHandler {
	return queries.NewGetVerificationProfileQueryHandler(c.gormDB)
}

// CreateServer wires the HTTP server with every handler.
func (c *CompositionRoot) CreateServer() *httpadapter.Server {
	return httpadapter.NewServer(
		c.CreatePostParcelCommandHandler(),
		c.CreatePlaceBidCommandHandler(),
		c.CreateWithdrawBidCommandHandler(),
		c.CreateSelectBidCommandHandler(),
		c.CreateCancelParcelCommandHandler(),
		c.CreateUpdateProgressCommandHandler(),
		c.CreateMarkNotificationReadCommandHandler(),
		c.CreateDeleteNotificationCommandHandler(),
		c.CreateGetUserParcelsQueryHandler(),
		c.CreateGetParcelBidsQueryHandler(),
		c.CreateGetNotificationsQueryHandler(),
		c.CreateGetUnreadCountQueryHandler(),
		c.CreateGetVerificationProfileQueryHandler(),
	)
}

// CreateActionRouter wires the router for client WebSocket actions.
func (c *CompositionRoot) CreateActionRouter() ws.CommandActionRouter {
	return ws.NewCommandActionRouter(
		c.CreateMarkNotificationReadCommandHandler(),
		c.CreateGetUnreadCountQueryHandler(),
	)
}

// CreateJobManager wires the scheduled jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateExpireBidsCommandHandler(), c.logger)
}

type FuncParcelUoWFactory func() commands.ParcelUoW

func (f FuncParcelUoWFactory) Create() commands.ParcelUoW {
	return f()
}

type FuncBiddingUoWFactory func() commands.BiddingUoW

func (f FuncBiddingUoWFactory) Create() commands.BiddingUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}
