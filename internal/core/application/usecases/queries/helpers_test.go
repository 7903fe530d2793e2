package queries_test

import (
	"context"
	"time"

	"printflow/internal/adapters/out/postgres/orderrepo"
	"printflow/internal/adapters/out/postgres/trackingrepo"
	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/domain/model/order"
	"printflow/internal/core/domain/model/tracking"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

// postgresSuite owns one container and the orders/tracking schema.
type postgresSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
}

func (s *postgresSuite) SetupSuite() {
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
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	s.Require().NoError(err)
	s.db = db

	s.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &trackingrepo.TrackingDTO{}))
}

func (s *postgresSuite) TearDownSuite() {
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(context.Background()))
	}
}

func (s *postgresSuite) SetupTest() {
	s.Require().NoError(s.db.Exec("TRUNCATE TABLE order_trackings, orders CASCADE").Error)
}

type seed struct {
	code       string
	phone      string
	credential string
	withFiles  bool
	createdAt  time.Time
	completed  int
	deleted    bool
}

// add stores an order and its tracking record with the first completed stages
// done, an hour apart.
func (s *postgresSuite) add(in seed) *order.Order {
	ctx := context.Background()
	if in.phone == "" {
		in.phone = "01700000000"
	}
	if in.credential == "" {
		in.credential = "s3cret"
	}

	credential, err := order.NewAccessCredential(in.credential)
	s.Require().NoError(err)
	delivery, err := order.NewDelivery("Rahim", in.phone, "House 5", "Dhaka", "Mirpur", credential)
	s.Require().NoError(err)
	files := order.EmptyFileSet()
	if in.withFiles {
		files, err = order.ParseFileSet(
			"https://drive.google.com/file/d/1AbCdEf/view",
			"https://res.cloudinary.com/demo/image/upload/v1/covers/front-1.jpg",
			"https://res.cloudinary.com/demo/image/upload/v1/covers/back-1.jpg",
		)
		s.Require().NoError(err)
	}
	payment, err := order.NewPayment("bkash", "TX-SECRET-"+in.code, decimal.RequireFromString("450.50"), "EID10")
	s.Require().NoError(err)
	preferences := order.Preferences{Binding: "spiral", BookName: "Thesis", PageType: "A4", Quantity: 2}

	o, err := order.NewOrder(kernel.NewUUID(), kernel.MustOrderCode(in.code), delivery, files,
		payment, preferences, "", in.createdAt)
	s.Require().NoError(err)
	if in.deleted {
		o.MarkDeleted()
	}
	s.Require().NoError(orderrepo.NewGormOrderRepository(s.db, &mockAggregateTracker{}).Add(ctx, o))

	records := make([]tracking.StageRecord, 0, in.completed)
	for i, stage := range tracking.Stages()[:in.completed] {
		at := in.createdAt.Add(time.Duration(i) * time.Hour)
		records = append(records, tracking.StageRecord{Stage: stage, Completed: true, CompletedAt: &at})
	}
	t, err := tracking.RestoreTracking(o.Code(), o.ID(), records, 1)
	s.Require().NoError(err)
	s.Require().NoError(trackingrepo.NewGormTrackingRepository(s.db, &mockAggregateTracker{}).Add(ctx, t))

	return o
}
