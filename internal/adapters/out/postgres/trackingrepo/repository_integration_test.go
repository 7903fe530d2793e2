package trackingrepo_test

import (
	"context"
	"testing"
	"time"

	"printflow/internal/adapters/out/postgres/orderrepo"
	"printflow/internal/adapters/out/postgres/trackingrepo"
	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/domain/model/order"
	"printflow/internal/core/domain/model/tracking"
	"printflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type TrackingRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	orders     *orderrepo.GormOrderRepository
	repository *trackingrepo.GormTrackingRepository
	tracker    *MockAggregateTracker
}

func (suite *TrackingRepositoryIntegrationTestSuite) SetupSuite() {
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

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &trackingrepo.TrackingDTO{}))
}

func (suite *TrackingRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE order_trackings, orders CASCADE").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.orders = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
	suite.repository = trackingrepo.NewGormTrackingRepository(suite.db, suite.tracker)
}

func (suite *TrackingRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

// addOrder stores an order and a tracking record with the first completed
// stages done, an hour apart.
func (suite *TrackingRepositoryIntegrationTestSuite) addOrder(
	code string,
	withFiles bool,
	createdAt time.Time,
	completed int,
) (*order.Order, *tracking.Tracking) {
	ctx := context.Background()

	credential, err := order.NewAccessCredential("s3cret")
	suite.Require().NoError(err)
	delivery, err := order.NewDelivery("Rahim", "01700000000", "House 5", "Dhaka", "Mirpur", credential)
	suite.Require().NoError(err)
	files := order.EmptyFileSet()
	if withFiles {
		files, err = order.ParseFileSet(
			"https://drive.google.com/file/d/1AbCdEf/view",
			"https://res.cloudinary.com/demo/image/upload/v1/covers/front-1.jpg",
			"https://res.cloudinary.com/demo/image/upload/v1/covers/back-1.jpg",
		)
		suite.Require().NoError(err)
	}
	payment, err := order.NewPayment("bkash", "TX-"+code, decimal.NewFromInt(300), "")
	suite.Require().NoError(err)
	o, err := order.NewOrder(kernel.NewUUID(), kernel.MustOrderCode(code), delivery, files,
		payment, order.Preferences{Quantity: 1}, "", createdAt)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orders.Add(ctx, o))

	records := make([]tracking.StageRecord, 0, completed)
	for i, stage := range tracking.Stages()[:completed] {
		at := createdAt.Add(time.Duration(i) * time.Hour)
		records = append(records, tracking.StageRecord{Stage: stage, Completed: true, CompletedAt: &at})
	}
	t, err := tracking.RestoreTracking(o.Code(), o.ID(), records, 1)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, t))

	return o, t
}

func codes(records []*tracking.Tracking) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Code().String())
	}
	return out
}

func (suite *TrackingRepositoryIntegrationTestSuite) TestAdd_RoundTrip() {
	created := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	_, t := suite.addOrder("PF-1", true, created, 3)

	loaded, err := suite.repository.GetByCode(context.Background(), t.Code())
	suite.Require().NoError(err)
	suite.Equal(t.Records(), loaded.Records())
	suite.Equal(1, loaded.Version())
	stage, ok := loaded.CurrentStage()
	suite.True(ok)
	suite.Equal(tracking.PrintingStarted, stage)
}

func (suite *TrackingRepositoryIntegrationTestSuite) TestAdd_Duplicate() {
	o, t := suite.addOrder("PF-2", true, time.Now(), 1)

	again, err := tracking.NewTracking(t.Code(), o.ID(), time.Now())
	suite.Require().NoError(err)
	err = suite.repository.Add(context.Background(), again)
	suite.ErrorIs(err, errs.ErrObjectAlreadyExists)
}

func (suite *TrackingRepositoryIntegrationTestSuite) TestAdd_UnknownOrder() {
	t, err := tracking.NewTracking(kernel.MustOrderCode("PF-404"), kernel.NewUUID(), time.Now())
	suite.Require().NoError(err)

	err = suite.repository.Add(context.Background(), t)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *TrackingRepositoryIntegrationTestSuite) TestUpdate_BumpsVersion() {
	ctx := context.Background()
	_, t := suite.addOrder("PF-3", true, time.Now().Add(-time.Hour), 1)

	progress, err := tracking.NewProgress(map[tracking.Stage]tracking.StageProposal{
		tracking.PaymentVerified: {Completed: true},
	})
	suite.Require().NoError(err)
	applied, err := t.Advance(progress, time.Now())
	suite.Require().NoError(err)
	suite.Equal([]tracking.Stage{tracking.PaymentVerified}, applied)

	suite.Require().NoError(suite.repository.Update(ctx, t))

	loaded, err := suite.repository.GetByCode(ctx, t.Code())
	suite.Require().NoError(err)
	suite.Equal(2, loaded.Version())
	suite.True(loaded.IsCompleted(tracking.PaymentVerified))
	_, stamped := loaded.CompletedAt(tracking.PaymentVerified)
	suite.True(stamped)
}

func (suite *TrackingRepositoryIntegrationTestSuite) TestUpdate_StaleVersion() {
	ctx := context.Background()
	_, t := suite.addOrder("PF-4", true, time.Now().Add(-time.Hour), 1)

	first, err := suite.repository.GetByCode(ctx, t.Code())
	suite.Require().NoError(err)
	second, err := suite.repository.GetByCode(ctx, t.Code())
	suite.Require().NoError(err)

	progress, err := tracking.NewProgress(map[tracking.Stage]tracking.StageProposal{
		tracking.PaymentVerified: {Completed: true},
	})
	suite.Require().NoError(err)

	_, err = first.Advance(progress, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, first))

	_, err = second.Advance(progress, time.Now())
	suite.Require().NoError(err)
	err = suite.repository.Update(ctx, second)
	suite.ErrorIs(err, errs.ErrVersionIsInvalid)
}

func (suite *TrackingRepositoryIntegrationTestSuite) TestUpdate_Missing() {
	t, err := tracking.NewTracking(kernel.MustOrderCode("PF-404"), kernel.NewUUID(), time.Now())
	suite.Require().NoError(err)

	err = suite.repository.Update(context.Background(), t)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *TrackingRepositoryIntegrationTestSuite) TestGetByCode_Missing() {
	_, err := suite.repository.GetByCode(context.Background(), kernel.MustOrderCode("PF-404"))
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *TrackingRepositoryIntegrationTestSuite) TestFindCandidates_Fulfilled() {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	suite.addOrder("PF-NEWER", true, base.Add(time.Hour), 8)
	suite.addOrder("PF-OLDER", true, base, 8)
	suite.addOrder("PF-NOFILES", false, base, 8)
	suite.addOrder("PF-PARTIAL", true, base, 7)

	found, err := suite.repository.FindCandidates(context.Background(), tracking.NewFulfilledFilter())
	suite.Require().NoError(err)
	suite.Equal([]string{"PF-OLDER", "PF-NEWER"}, codes(found))
}

func (suite *TrackingRepositoryIntegrationTestSuite) TestFindCandidates_Abandoned() {
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	suite.addOrder("PF-OLD", true, now.Add(-72*time.Hour), 1)
	suite.addOrder("PF-OLD-NOFILES", false, now.Add(-50*time.Hour), 1)
	suite.addOrder("PF-FRESH", true, now.Add(-time.Hour), 1)
	suite.addOrder("PF-PAID", true, now.Add(-72*time.Hour), 2)

	filter := tracking.NewAbandonedFilter(now.Add(-48 * time.Hour))
	found, err := suite.repository.FindCandidates(context.Background(), filter)
	suite.Require().NoError(err)
	suite.Equal([]string{"PF-OLD", "PF-OLD-NOFILES"}, codes(found))
}

func (suite *TrackingRepositoryIntegrationTestSuite) TestDelete() {
	ctx := context.Background()
	_, t := suite.addOrder("PF-5", true, time.Now(), 1)

	suite.Require().NoError(suite.repository.Delete(ctx, t))

	_, err := suite.repository.GetByCode(ctx, t.Code())
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	err = suite.repository.Delete(ctx, t)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *TrackingRepositoryIntegrationTestSuite) TestDelete_StaleVersionKeepsRecord() {
	ctx := context.Background()
	_, t := suite.addOrder("PF-7", true, time.Now().Add(-time.Hour), 1)

	stale, err := suite.repository.GetByCode(ctx, t.Code())
	suite.Require().NoError(err)

	progress, err := tracking.NewProgress(map[tracking.Stage]tracking.StageProposal{
		tracking.PaymentVerified: {Completed: true},
	})
	suite.Require().NoError(err)
	_, err = t.Advance(progress, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, t))

	err = suite.repository.Delete(ctx, stale)
	suite.ErrorIs(err, errs.ErrVersionIsInvalid)

	kept, err := suite.repository.GetByCode(ctx, t.Code())
	suite.Require().NoError(err)
	suite.True(kept.IsCompleted(tracking.PaymentVerified))
	suite.Equal(2, kept.Version())
}

func (suite *TrackingRepositoryIntegrationTestSuite) TestOrderCannotBeDeletedBeforeTracking() {
	ctx := context.Background()
	o, _ := suite.addOrder("PF-6", true, time.Now(), 1)

	err := suite.orders.Delete(ctx, o.ID())
	suite.Error(err)
}

func TestTrackingRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(TrackingRepositoryIntegrationTestSuite))
}
