package palletrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/palletrepo"
	"fulfillment/internal/adapters/out/postgres/pgtest"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type PalletRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *palletrepo.GormPalletRepository
}

func (suite *PalletRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.container = container
	suite.Require().NoError(err)
	suite.db = db
	suite.repository = palletrepo.NewGormPalletRepository(db)
}

func (suite *PalletRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Truncate(suite.db))
}

func (suite *PalletRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *PalletRepositoryIntegrationTestSuite) pallet(id, sku string, boxes int, weight string, expiry *time.Time) *inventory.Pallet {
	location, err := kernel.NewLocation("C", "04", kernel.GroundLevel)
	suite.Require().NoError(err)
	p, err := inventory.NewPallet(inventory.PalletState{
		ID:            id,
		SKU:           sku,
		ProductName:   "Frozen peas",
		Location:      location,
		BoxCount:      boxes,
		NetWeight:     decimal.RequireFromString(weight),
		ExpiryDate:    expiry,
		InvoiceNumber: "INV-7",
		ReceivedAt:    time.Date(2026, 10, 1, 6, 0, 0, 0, time.UTC),
	})
	suite.Require().NoError(err)
	return p
}

func (suite *PalletRepositoryIntegrationTestSuite) TestAddAndGet() {
	ctx := context.Background()
	expiry := time.Date(2027, 1, 15, 0, 0, 0, 0, time.UTC)
	suite.Require().NoError(suite.repository.Add(ctx, suite.pallet("046000000000000001", "SKU-1", 20, "180.500", &expiry)))

	loaded, err := suite.repository.Get(ctx, "046000000000000001")
	suite.Require().NoError(err)
	suite.Equal("SKU-1", loaded.SKU())
	suite.Equal("C-04-1", loaded.Location().Code())
	suite.Equal(20, loaded.BoxCount())
	suite.True(decimal.RequireFromString("180.5").Equal(loaded.NetWeight()))
	suite.Require().NotNil(loaded.ExpiryDate())
	suite.True(expiry.Equal(*loaded.ExpiryDate()))
	suite.Equal("INV-7", loaded.InvoiceNumber())
}

func (suite *PalletRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), "046000000000009999")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *PalletRepositoryIntegrationTestSuite) TestUpdate_WritesPickedContents() {
	ctx := context.Background()
	p := suite.pallet("046000000000000002", "SKU-1", 4, "40", nil)
	suite.Require().NoError(suite.repository.Add(ctx, p))

	_, err := p.Pick(4)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, p))

	loaded, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.True(loaded.IsEmpty())
	suite.True(loaded.NetWeight().IsZero())
}

func (suite *PalletRepositoryIntegrationTestSuite) TestUpdate_UnknownPallet() {
	err := suite.repository.Update(context.Background(), suite.pallet("046000000000000003", "SKU-1", 1, "1", nil))
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *PalletRepositoryIntegrationTestSuite) TestListBySKU_SkipsEmptyPallets() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.pallet("046000000000000012", "SKU-1", 3, "30", nil)))
	suite.Require().NoError(suite.repository.Add(ctx, suite.pallet("046000000000000011", "SKU-1", 5, "50", nil)))
	suite.Require().NoError(suite.repository.Add(ctx, suite.pallet("046000000000000013", "SKU-1", 0, "0", nil)))
	suite.Require().NoError(suite.repository.Add(ctx, suite.pallet("046000000000000014", "SKU-2", 5, "50", nil)))

	pallets, err := suite.repository.ListBySKU(ctx, "SKU-1")
	suite.Require().NoError(err)
	suite.Require().Len(pallets, 2)
	suite.Equal("046000000000000011", pallets[0].ID())
	suite.Equal("046000000000000012", pallets[1].ID())
}

func (suite *PalletRepositoryIntegrationTestSuite) TestDelete() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.pallet("046000000000000021", "SKU-1", 3, "30", nil)))
	suite.Require().NoError(suite.repository.Delete(ctx, "046000000000000021"))

	_, err := suite.repository.Get(ctx, "046000000000000021")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestPalletRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(PalletRepositoryIntegrationTestSuite))
}
