package cmd

import (
	"fmt"
	"log/slog"

	"fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/jobs"
	"fulfillment/internal/pkg/metrics"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	ids        *snowflake.Node
	metrics    *metrics.Metrics
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB) (CompositionRoot, error) {
	ids, err := snowflake.NewNode(cfg.SnowflakeNode)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("snowflake node %d: %w", cfg.SnowflakeNode, err)
	}

	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		ids:        ids,
		metrics:    metrics.New(),
	}, nil
}

func (c *CompositionRoot) Metrics() *metrics.Metrics {
	return c.metrics
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) inventoryUoWFactory() commands.InventoryUoWFactory {
	return FuncInventoryUoWFactory(func() commands.InventoryUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateProcessOrderCommandHandler() commands.ProcessOrderCommandHandler {
	return commands.NewProcessOrderCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	return commands.NewCompleteOrderCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateClaimLotCommandHandler() commands.ClaimLotCommandHandler {
	return commands.NewClaimLotCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreatePerformPickingCommandHandler() commands.PerformPickingCommandHandler {
	return commands.NewPerformPickingCommandHandler(c.fullUoWFactory(), c.ids)
}

func (c *CompositionRoot) CreateCompleteLotCommandHandler() commands.CompleteLotCommandHandler {
	return commands.NewCompleteLotCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateConfirmTransferCommandHandler() commands.ConfirmTransferCommandHandler {
	return commands.NewConfirmTransferCommandHandler(c.inventoryUoWFactory(), c.ids)
}

func (c *CompositionRoot) CreateConfirmAllTransfersForSKUCommandHandler() commands.ConfirmAllTransfersForSKUCommandHandler {
	return commands.NewConfirmAllTransfersForSKUCommandHandler(c.inventoryUoWFactory(), c.CreateConfirmTransferCommandHandler())
}

func (c *CompositionRoot) CreateCheckPickingAvailabilityCommandHandler() commands.CheckPickingAvailabilityCommandHandler {
	return commands.NewCheckPickingAvailabilityCommandHandler(c.inventoryUoWFactory())
}

func (c *CompositionRoot) CreateReceivePalletCommandHandler() commands.ReceivePalletCommandHandler {
	return commands.NewReceivePalletCommandHandler(c.inventoryUoWFactory())
}

func (c *CompositionRoot) CreateAdjustPalletCommandHandler() commands.AdjustPalletCommandHandler {
	return commands.NewAdjustPalletCommandHandler(c.inventoryUoWFactory())
}

func (c *CompositionRoot) CreateRemovePalletCommandHandler() commands.RemovePalletCommandHandler {
	return commands.NewRemovePalletCommandHandler(c.inventoryUoWFactory())
}

func (c *CompositionRoot) CreateSaveProductCommandHandler() commands.SaveProductCommandHandler {
	return commands.NewSaveProductCommandHandler(c.inventoryUoWFactory())
}

func (c *CompositionRoot) CreateAssignPickingLocationCommandHandler() commands.AssignPickingLocationCommandHandler {
	return commands.NewAssignPickingLocationCommandHandler(c.inventoryUoWFactory())
}

func (c *CompositionRoot) CreateSetRowTemperatureCommandHandler() commands.SetRowTemperatureCommandHandler {
	return commands.NewSetRowTemperatureCommandHandler(c.inventoryUoWFactory())
}

func (c *CompositionRoot) CreateGetAvailableLotsQueryHandler() queries.GetAvailableLotsQueryHandler {
	return queries.NewGetAvailableLotsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPendingTransfersQueryHandler() queries.GetPendingTransfersQueryHandler {
	return queries.NewGetPendingTransfersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCustomerStockQueryHandler() queries.GetCustomerStockQueryHandler {
	return queries.NewGetCustomerStockQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetWarehouseStockQueryHandler() queries.GetWarehouseStockQueryHandler {
	return queries.NewGetWarehouseStockQueryHandler(c.gormDB)
}

// CreateHTTPHandlers collects every use case the HTTP adapter exposes.
func (c *CompositionRoot) CreateHTTPHandlers() http.Handlers {
	return http.Handlers{
		CreateOrder:               c.CreateCreateOrderCommandHandler(),
		ProcessOrder:              c.CreateProcessOrderCommandHandler(),
		CompleteOrder:             c.CreateCompleteOrderCommandHandler(),
		CancelOrder:               c.CreateCancelOrderCommandHandler(),
		ClaimLot:                  c.CreateClaimLotCommandHandler(),
		PerformPicking:            c.CreatePerformPickingCommandHandler(),
		CompleteLot:               c.CreateCompleteLotCommandHandler(),
		ConfirmTransfer:           c.CreateConfirmTransferCommandHandler(),
		ConfirmAllTransfersForSKU: c.CreateConfirmAllTransfersForSKUCommandHandler(),
		CheckPickingAvailability:  c.CreateCheckPickingAvailabilityCommandHandler(),
		ReceivePallet:             c.CreateReceivePalletCommandHandler(),
		AdjustPallet:              c.CreateAdjustPalletCommandHandler(),
		RemovePallet:              c.CreateRemovePalletCommandHandler(),
		SaveProduct:               c.CreateSaveProductCommandHandler(),
		AssignPickingLocation:     c.CreateAssignPickingLocationCommandHandler(),
		SetRowTemperature:         c.CreateSetRowTemperatureCommandHandler(),
		GetAvailableLots:          c.CreateGetAvailableLotsQueryHandler(),
		GetPendingTransfers:       c.CreateGetPendingTransfersQueryHandler(),
		GetCustomerStock:          c.CreateGetCustomerStockQueryHandler(),
		GetWarehouseStock:         c.CreateGetWarehouseStockQueryHandler(),
	}
}

func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateGetPendingTransfersQueryHandler(),
		c.CreateGetAvailableLotsQueryHandler(),
		c.metrics,
		jobs.Schedules{TransferReport: c.cfg.TransferReportSchedule, LotReport: c.cfg.LotReportSchedule},
		logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncInventoryUoWFactory func() commands.InventoryUoW

func (f FuncInventoryUoWFactory) Create() commands.InventoryUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
