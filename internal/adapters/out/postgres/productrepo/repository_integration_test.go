package productrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"commerce/internal/adapters/out/postgres/productrepo"
	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/product"
	"commerce/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ProductRepositoryIntegrationTestSuite provides integration tests for
// ProductRepository using PostgreSQL containers, including the atomic stock
// ledger behavior under concurrent reservations.
type ProductRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *productrepo.GormProductRepository
}

func (suite *ProductRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&productrepo.ProductDTO{}))
}

func (suite *ProductRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE products").Error)
	suite.repository = productrepo.NewGormProductRepository(suite.db)
}

func (suite *ProductRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ProductRepositoryIntegrationTestSuite) TestAdd_ValidProduct_Success() {
	ctx := context.Background()

	testProduct := suite.createTestProduct("WIDGET-001", 10)

	err := suite.repository.Add(ctx, testProduct)
	suite.Require().NoError(err)

	retrieved, err := suite.repository.Get(ctx, testProduct.ID())
	suite.Require().NoError(err)
	suite.Equal(testProduct.ID(), retrieved.ID())
	suite.Equal("WIDGET-001", retrieved.SKU())
	suite.Equal(10, retrieved.QuantityInStock())
	suite.True(retrieved.IsActive())
	suite.True(testProduct.Price().Equal(retrieved.Price()))
}

func (suite *ProductRepositoryIntegrationTestSuite) TestAdd_DuplicateSKU_ReturnsError() {
	ctx := context.Background()

	first := suite.createTestProduct("WIDGET-001", 10)
	suite.Require().NoError(suite.repository.Add(ctx, first))

	duplicate := suite.createTestProduct("WIDGET-001", 5)
	err := suite.repository.Add(ctx, duplicate)
	suite.Require().Error(err)
}

func (suite *ProductRepositoryIntegrationTestSuite) TestGetBySKU_ExistingProduct_ReturnsProduct() {
	ctx := context.Background()

	testProduct := suite.createTestProduct("WIDGET-002", 7)
	suite.Require().NoError(suite.repository.Add(ctx, testProduct))

	retrieved, err := suite.repository.GetBySKU(ctx, "WIDGET-002")
	suite.Require().NoError(err)
	suite.Equal(testProduct.ID(), retrieved.ID())
}

func (suite *ProductRepositoryIntegrationTestSuite) TestGet_NonExistentProduct_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *ProductRepositoryIntegrationTestSuite) TestReserve_SufficientStock_DecrementsBalance() {
	ctx := context.Background()

	testProduct := suite.createTestProduct("WIDGET-003", 10)
	suite.Require().NoError(suite.repository.Add(ctx, testProduct))

	err := suite.repository.Reserve(ctx, testProduct.ID(), 4)
	suite.Require().NoError(err)

	suite.assertStock(testProduct.ID(), 6)
}

func (suite *ProductRepositoryIntegrationTestSuite) TestReserve_InsufficientStock_ReturnsErrorAndKeepsBalance() {
	ctx := context.Background()

	testProduct := suite.createTestProduct("WIDGET-004", 3)
	suite.Require().NoError(suite.repository.Add(ctx, testProduct))

	err := suite.repository.Reserve(ctx, testProduct.ID(), 5)
	suite.Require().Error(err)

	var stockErr *errs.InsufficientStockError
	suite.Require().ErrorAs(err, &stockErr)
	suite.Equal(5, stockErr.Requested)
	suite.Equal(3, stockErr.Available)

	suite.assertStock(testProduct.ID(), 3)
}

func (suite *ProductRepositoryIntegrationTestSuite) TestReserve_ExactBalance_DrainsToZero() {
	ctx := context.Background()

	testProduct := suite.createTestProduct("WIDGET-005", 5)
	suite.Require().NoError(suite.repository.Add(ctx, testProduct))

	err := suite.repository.Reserve(ctx, testProduct.ID(), 5)
	suite.Require().NoError(err)

	suite.assertStock(testProduct.ID(), 0)

	err = suite.repository.Reserve(ctx, testProduct.ID(), 1)
	var stockErr *errs.InsufficientStockError
	suite.Require().ErrorAs(err, &stockErr)
}

func (suite *ProductRepositoryIntegrationTestSuite) TestReserve_NonExistentProduct_ReturnsNotFoundError() {
	ctx := context.Background()

	err := suite.repository.Reserve(ctx, kernel.NewUUID(), 1)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

// TestReserve_ConcurrentLastUnit_ExactlyOneWins drives N goroutines at a
// single remaining unit. Exactly one reservation may land; the balance must
// end at zero, never negative.
func (suite *ProductRepositoryIntegrationTestSuite) TestReserve_ConcurrentLastUnit_ExactlyOneWins() {
	ctx := context.Background()

	testProduct := suite.createTestProduct("WIDGET-006", 1)
	suite.Require().NoError(suite.repository.Add(ctx, testProduct))

	const workers = 20
	var wg sync.WaitGroup
	results := make(chan error, workers)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- suite.repository.Reserve(ctx, testProduct.ID(), 1)
		}()
	}
	wg.Wait()
	close(results)

	successes := 0
	insufficient := 0
	for err := range results {
		if err == nil {
			successes++
			continue
		}
		var stockErr *errs.InsufficientStockError
		suite.Require().ErrorAs(err, &stockErr)
		insufficient++
	}

	suite.Equal(1, successes)
	suite.Equal(workers-1, insufficient)
	suite.assertStock(testProduct.ID(), 0)
}

// TestReserve_ConcurrentPartialDrain_NeverOversells races reservations whose
// total demand exceeds supply and checks the sum of granted units never goes
// past the starting balance.
func (suite *ProductRepositoryIntegrationTestSuite) TestReserve_ConcurrentPartialDrain_NeverOversells() {
	ctx := context.Background()

	const initialStock = 10
	const workers = 15
	const perWorker = 2

	testProduct := suite.createTestProduct("WIDGET-007", initialStock)
	suite.Require().NoError(suite.repository.Add(ctx, testProduct))

	var wg sync.WaitGroup
	results := make(chan error, workers)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- suite.repository.Reserve(ctx, testProduct.ID(), perWorker)
		}()
	}
	wg.Wait()
	close(results)

	granted := 0
	for err := range results {
		if err == nil {
			granted += perWorker
		}
	}

	suite.Equal(initialStock, granted)
	suite.assertStock(testProduct.ID(), 0)
}

func (suite *ProductRepositoryIntegrationTestSuite) TestRelease_ReturnsUnitsToBalance() {
	ctx := context.Background()

	testProduct := suite.createTestProduct("WIDGET-008", 10)
	suite.Require().NoError(suite.repository.Add(ctx, testProduct))

	suite.Require().NoError(suite.repository.Reserve(ctx, testProduct.ID(), 6))
	suite.Require().NoError(suite.repository.Release(ctx, testProduct.ID(), 6))

	suite.assertStock(testProduct.ID(), 10)
}

func (suite *ProductRepositoryIntegrationTestSuite) TestRelease_NonExistentProduct_ReturnsNotFoundError() {
	ctx := context.Background()

	err := suite.repository.Release(ctx, kernel.NewUUID(), 1)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *ProductRepositoryIntegrationTestSuite) TestSetStock_ReplacesBalance() {
	ctx := context.Background()

	testProduct := suite.createTestProduct("WIDGET-009", 3)
	suite.Require().NoError(suite.repository.Add(ctx, testProduct))

	suite.Require().NoError(suite.repository.SetStock(ctx, testProduct.ID(), 42))
	suite.assertStock(testProduct.ID(), 42)

	suite.Require().NoError(suite.repository.SetStock(ctx, testProduct.ID(), 0))
	suite.assertStock(testProduct.ID(), 0)
}

func (suite *ProductRepositoryIntegrationTestSuite) TestSetStock_NegativeQuantity_ReturnsValidationError() {
	ctx := context.Background()

	testProduct := suite.createTestProduct("WIDGET-010", 3)
	suite.Require().NoError(suite.repository.Add(ctx, testProduct))

	err := suite.repository.SetStock(ctx, testProduct.ID(), -1)

	var invalidErr *errs.ValueIsInvalidError
	suite.Require().ErrorAs(err, &invalidErr)
	suite.assertStock(testProduct.ID(), 3)
}

// createTestProduct creates a product with the given SKU and stock.
func (suite *ProductRepositoryIntegrationTestSuite) createTestProduct(sku string, stock int) *product.Product {
	testProduct, err := product.NewProduct(
		kernel.NewUUID(),
		sku,
		"Test Widget",
		decimal.RequireFromString("19.99"),
		stock,
	)
	suite.Require().NoError(err)
	return testProduct
}

// assertStock verifies the persisted stock balance of a product.
func (suite *ProductRepositoryIntegrationTestSuite) assertStock(id kernel.UUID, expected int) {
	retrieved, err := suite.repository.Get(context.Background(), id)
	suite.Require().NoError(err)
	suite.Equal(expected, retrieved.QuantityInStock())
}

func TestProductRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ProductRepositoryIntegrationTestSuite))
}
