package locationrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/catalogrepo"
	"fulfillment/internal/adapters/out/postgres/locationrepo"
	"fulfillment/internal/adapters/out/postgres/palletrepo"
	"fulfillment/internal/adapters/out/postgres/pgtest"
	"fulfillment/internal/adapters/out/postgres/stockrepo"
	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type LocationRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *locationrepo.GormLocationRepository
}

func (suite *LocationRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.container = container
	suite.Require().NoError(err)
	suite.db = db
	suite.repository = locationrepo.NewGormLocationRepository(db)
}

func (suite *LocationRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Truncate(suite.db))
}

func (suite *LocationRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *LocationRepositoryIntegrationTestSuite) location(cell string, level kernel.Level) kernel.Location {
	l, err := kernel.NewLocation("D", cell, level)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Ensure(context.Background(), l))
	return l
}

func (suite *LocationRepositoryIntegrationTestSuite) TestEnsure_IsIdempotent() {
	ctx := context.Background()
	l := suite.location("01", kernel.GroundLevel)
	suite.Require().NoError(suite.repository.Ensure(ctx, l))

	var count int64
	suite.Require().NoError(suite.db.Model(&locationrepo.StorageLocationDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *LocationRepositoryIntegrationTestSuite) TestAssignPickingLocation_Replaces() {
	ctx := context.Background()
	product, err := catalog.NewProduct("SKU-1", "Rice", catalog.Dimensions{}, catalog.Piece, 6)
	suite.Require().NoError(err)
	suite.Require().NoError(catalogrepo.NewGormCatalogRepository(suite.db).Save(ctx, product))

	assigned, err := suite.repository.AssignedPickingLocation(ctx, "SKU-1")
	suite.Require().NoError(err)
	suite.Nil(assigned)

	suite.Require().NoError(suite.repository.AssignPickingLocation(ctx, "SKU-1", suite.location("01", kernel.GroundLevel)))
	suite.Require().NoError(suite.repository.AssignPickingLocation(ctx, "SKU-1", suite.location("02", kernel.GroundLevel)))

	assigned, err = suite.repository.AssignedPickingLocation(ctx, "SKU-1")
	suite.Require().NoError(err)
	suite.Require().NotNil(assigned)
	suite.Equal("D-02-1", assigned.Code())
}

func (suite *LocationRepositoryIntegrationTestSuite) TestFindEmptyGroundLocation() {
	ctx := context.Background()
	at := time.Date(2026, 10, 1, 6, 0, 0, 0, time.UTC)

	withPallet := suite.location("01", kernel.GroundLevel)
	withStock := suite.location("02", kernel.GroundLevel)
	suite.location("03", 2)
	emptiedPallet := suite.location("04", kernel.GroundLevel)
	suite.location("05", kernel.GroundLevel)

	pallets := palletrepo.NewGormPalletRepository(suite.db)
	for id, seed := range map[string]struct {
		location kernel.Location
		boxes    int
	}{
		"046000000000000001": {withPallet, 5},
		"046000000000000002": {emptiedPallet, 0},
	} {
		p, err := inventory.NewPallet(inventory.PalletState{
			ID: id, SKU: "SKU-1", Location: seed.location, BoxCount: seed.boxes,
			NetWeight: decimal.Zero, ReceivedAt: at,
		})
		suite.Require().NoError(err)
		suite.Require().NoError(pallets.Add(ctx, p))
	}

	stock := stockrepo.NewGormStockRepository(suite.db)
	ledger, err := stock.GetLedger(ctx, "SKU-2")
	suite.Require().NoError(err)
	_, err = ledger.Receive(withStock, 3, at)
	suite.Require().NoError(err)
	suite.Require().NoError(stock.SaveLedger(ctx, ledger))

	found, err := suite.repository.FindEmptyGroundLocation(ctx)
	suite.Require().NoError(err)
	suite.Require().NotNil(found)
	suite.Equal("D-04-1", found.Code())
}

func (suite *LocationRepositoryIntegrationTestSuite) TestFindEmptyGroundLocation_TierFull() {
	suite.location("01", 3)

	found, err := suite.repository.FindEmptyGroundLocation(context.Background())
	suite.Require().NoError(err)
	suite.Nil(found)
}

func (suite *LocationRepositoryIntegrationTestSuite) TestHeldByOtherSKU() {
	ctx := context.Background()
	at := time.Date(2026, 10, 1, 6, 0, 0, 0, time.UTC)
	shared := suite.location("01", kernel.GroundLevel)
	free := suite.location("02", kernel.GroundLevel)

	p, err := inventory.NewPallet(inventory.PalletState{
		ID: "046000000000000009", SKU: "SKU-1", Location: shared, BoxCount: 2,
		NetWeight: decimal.Zero, ReceivedAt: at,
	})
	suite.Require().NoError(err)
	suite.Require().NoError(palletrepo.NewGormPalletRepository(suite.db).Add(ctx, p))

	held, err := suite.repository.HeldByOtherSKU(ctx, shared, "SKU-1")
	suite.Require().NoError(err)
	suite.False(held, "own stock does not block")

	held, err = suite.repository.HeldByOtherSKU(ctx, shared, "SKU-2")
	suite.Require().NoError(err)
	suite.True(held)

	held, err = suite.repository.HeldByOtherSKU(ctx, free, "SKU-2")
	suite.Require().NoError(err)
	suite.False(held)
}

func (suite *LocationRepositoryIntegrationTestSuite) TestRowTemperature() {
	ctx := context.Background()

	none, err := suite.repository.RowTemperature(ctx, "D")
	suite.Require().NoError(err)
	suite.Nil(none)

	frozen, err := kernel.NewTemperatureRange(-25, -18)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.SetRowTemperature(ctx, "D", frozen))
	chilled, err := kernel.NewTemperatureRange(0, 4)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.SetRowTemperature(ctx, "D", chilled))

	stored, err := suite.repository.RowTemperature(ctx, "D")
	suite.Require().NoError(err)
	suite.Require().NotNil(stored)
	suite.InDelta(0.0, stored.Lowest(), 0.001)
	suite.InDelta(4.0, stored.Highest(), 0.001)
}

func TestLocationRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(LocationRepositoryIntegrationTestSuite))
}
