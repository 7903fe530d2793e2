package commands_test

import (
	"context"
	"testing"
	"time"

	"printflow/internal/core/application/usecases/commands"
	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/core/domain/model/order"
	"printflow/internal/core/domain/model/tracking"
	"printflow/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetByCode(ctx context.Context, code kernel.OrderCode) (*order.Order, error) {
	args := m.Called(ctx, code)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) FindByPhone(ctx context.Context, phone string) ([]*order.Order, error) {
	args := m.Called(ctx, phone)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockTrackingRepository struct{ mock.Mock }

func (m *MockTrackingRepository) Add(ctx context.Context, t *tracking.Tracking) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTrackingRepository) Update(ctx context.Context, t *tracking.Tracking) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTrackingRepository) GetByCode(ctx context.Context, code kernel.OrderCode) (*tracking.Tracking, error) {
	args := m.Called(ctx, code)
	t, _ := args.Get(0).(*tracking.Tracking)
	return t, args.Error(1)
}

func (m *MockTrackingRepository) FindCandidates(
	ctx context.Context,
	filter tracking.CandidateFilter,
) ([]*tracking.Tracking, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]*tracking.Tracking)
	return list, args.Error(1)
}

func (m *MockTrackingRepository) Delete(ctx context.Context, aggregate *tracking.Tracking) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

// MockUoW satisfies UoW and OrderUoW.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) TrackingRepository() ports.TrackingRepository {
	args := m.Called()
	return args.Get(0).(ports.TrackingRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockFileStorage struct{ mock.Mock }

func (m *MockFileStorage) Delete(ctx context.Context, ref kernel.FileReference) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

const (
	docURL   = "https://drive.google.com/file/d/1AbCdEf/view"
	frontURL = "https://res.cloudinary.com/demo/image/upload/v1700000000/covers/front-1.jpg"
	backURL  = "https://res.cloudinary.com/demo/image/upload/v1700000000/covers/back-1.jpg"
)

var testNow = time.Date(2026, 3, 10, 3, 0, 0, 0, time.UTC)

type orderParts struct {
	delivery    order.Delivery
	files       order.FileSet
	payment     order.Payment
	preferences order.Preferences
}

func newOrderParts(t *testing.T, withFiles bool) orderParts {
	t.Helper()
	credential, err := order.NewAccessCredential("s3cret")
	require.NoError(t, err)
	delivery, err := order.NewDelivery("Rahim", "01700000000", "House 5", "Dhaka", "Mirpur", credential)
	require.NoError(t, err)
	files := order.EmptyFileSet()
	if withFiles {
		files, err = order.ParseFileSet(docURL, frontURL, backURL)
		require.NoError(t, err)
	}
	payment, err := order.NewPayment("bkash", "TX-1", decimal.NewFromInt(450), "")
	require.NoError(t, err)
	return orderParts{
		delivery:    delivery,
		files:       files,
		payment:     payment,
		preferences: order.Preferences{BookName: "Thesis", Quantity: 1},
	}
}

func newTestOrder(t *testing.T, code string, withFiles bool, createdAt time.Time) *order.Order {
	t.Helper()
	p := newOrderParts(t, withFiles)
	o, err := order.NewOrder(kernel.NewUUID(), kernel.MustOrderCode(code), p.delivery, p.files,
		p.payment, p.preferences, "", createdAt)
	require.NoError(t, err)
	return o
}

// newTestTracking returns the record of o with the first completed stages done.
func newTestTracking(t *testing.T, o *order.Order, completed int) *tracking.Tracking {
	t.Helper()
	records := make([]tracking.StageRecord, 0, completed)
	for i, stage := range tracking.Stages()[:completed] {
		at := o.CreatedAt().Add(time.Duration(i) * time.Hour)
		records = append(records, tracking.StageRecord{Stage: stage, Completed: true, CompletedAt: &at})
	}
	record, err := tracking.RestoreTracking(o.Code(), o.ID(), records, 1)
	require.NoError(t, err)
	return record
}
