package cmd

import (
	"context"
	"fmt"
	"log/slog"

	httpadapter "printflow/internal/adapters/in/http"
	"printflow/internal/adapters/out/postgres"
	"printflow/internal/adapters/out/storage/cloudinary"
	"printflow/internal/adapters/out/storage/drive"
	storageobs "printflow/internal/adapters/out/storage/observability"
	"printflow/internal/adapters/out/storage/routing"
	"printflow/internal/adapters/out/storage/s3"
	"printflow/internal/core/application/usecases/commands"
	"printflow/internal/core/application/usecases/queries"
	"printflow/internal/core/domain/model/cleanup"
	"printflow/internal/core/domain/services"
	"printflow/internal/core/ports"
	"printflow/internal/jobs"
	"printflow/internal/platform/observability"

	"gorm.io/gorm"
)

const instrumentationName = "printflow/internal/adapters/out/storage"

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	purger     *services.FilePurger
	clock      ports.Clock
	logger     *slog.Logger
}

// NewStorages builds the document store and the Cloudinary image CDN. Documents
// live in the S3 bucket; Drive links are also accepted when Drive credentials
// are configured. Every backend is wrapped with spans, warn logs and delete
// counters.
func NewStorages(
	ctx context.Context,
	cfg Config,
	telemetry *observability.Telemetry,
	logger *slog.Logger,
) (documents, images ports.FileStorage, err error) {
	tracer := telemetry.Tracer(instrumentationName)
	meter := telemetry.Meter(instrumentationName)
	observe := func(inner ports.FileStorage, backend string) ports.FileStorage {
		return storageobs.New(inner, backend,
			storageobs.WithLogger(logger), storageobs.WithTracer(tracer), storageobs.WithMeter(meter))
	}

	bucket, err := s3.NewFromConfig(ctx, cfg.AWSBucketName, cfg.AWSBucketRegion,
		cfg.AWSBucketAccessKey, cfg.AWSBucketSecretKey)
	if err != nil {
		return nil, nil, fmt.Errorf("s3 storage: %w", err)
	}
	routes := []routing.Route{{Name: "s3", Owns: bucket.Owns, Storage: observe(bucket, "s3")}}

	if cfg.GoogleDriveCredentialsFile != "" {
		driveStorage, err := drive.NewFromCredentialsFile(ctx, cfg.GoogleDriveCredentialsFile)
		if err != nil {
			return nil, nil, fmt.Errorf("google drive storage: %w", err)
		}
		routes = append(routes, routing.Route{
			Name: "google_drive", Owns: driveStorage.Owns, Storage: observe(driveStorage, "google_drive"),
		})
	}

	documents, err = routing.New(routes...)
	if err != nil {
		return nil, nil, fmt.Errorf("document storage: %w", err)
	}

	cloudinaryStorage, err := cloudinary.NewFromURL(cfg.CloudinaryURL)
	if err != nil {
		return nil, nil, fmt.Errorf("cloudinary storage: %w", err)
	}
	return documents, observe(cloudinaryStorage, "cloudinary"), nil
}

func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	documents, images ports.FileStorage,
	logger *slog.Logger,
) (CompositionRoot, error) {
	purger, err := services.NewFilePurger(documents, images)
	if err != nil {
		return CompositionRoot{}, err
	}
	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		purger:     purger,
		clock:      ports.SystemClock{},
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(c.uowFactoryFunc(), c.clock)
}

func (c *CompositionRoot) CreateSoftDeleteOrderCommandHandler() commands.SoftDeleteOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSoftDeleteOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateTrackingCommandHandler() commands.CreateTrackingCommandHandler {
	return commands.NewCreateTrackingCommandHandler(c.uowFactoryFunc(), c.clock)
}

func (c *CompositionRoot) CreateAdvanceTrackingCommandHandler() commands.AdvanceTrackingCommandHandler {
	return commands.NewAdvanceTrackingCommandHandler(c.uowFactoryFunc(), c.clock)
}

func (c *CompositionRoot) CreateCleanupOrdersCommandHandler() commands.CleanupOrdersCommandHandler {
	return commands.NewCleanupOrdersCommandHandler(
		c.uowFactoryFunc(), c.purger, c.clock, c.logger, c.cfg.CleanupConcurrency)
}

func (c *CompositionRoot) CreateGetCurrentStageQueryHandler() queries.GetCurrentStageQueryHandler {
	return queries.NewGetCurrentStageQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateDescribeTrackingQueryHandler() queries.DescribeTrackingQueryHandler {
	return queries.NewDescribeTrackingQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateVerifyOrderAccessQueryHandler() queries.VerifyOrderAccessQueryHandler {
	return queries.NewVerifyOrderAccessQueryHandler(c.gormDB)
}

// CreateHTTPServer wires every use case into the echo adapter.
func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	placeOrder := c.CreatePlaceOrderCommandHandler()
	softDelete := c.CreateSoftDeleteOrderCommandHandler()
	createTracking := c.CreateCreateTrackingCommandHandler()
	advanceTracking := c.CreateAdvanceTrackingCommandHandler()

	return httpadapter.NewServer(httpadapter.Handlers{
		PlaceOrder:        &placeOrder,
		SoftDeleteOrder:   &softDelete,
		CreateTracking:    &createTracking,
		AdvanceTracking:   &advanceTracking,
		GetCurrentStage:   c.CreateGetCurrentStageQueryHandler(),
		DescribeTracking:  c.CreateDescribeTrackingQueryHandler(),
		VerifyOrderAccess: c.CreateVerifyOrderAccessQueryHandler(),
	}, c.logger)
}

// CreateCleanupJobs returns the fulfilled and abandoned cleanup jobs. Both
// share one handler; each job serialises its own runs.
func (c *CompositionRoot) CreateCleanupJobs() ([]*jobs.CleanupJob, error) {
	abandoned, err := cleanup.NewAbandonedPolicy(c.cfg.AbandonedRetention)
	if err != nil {
		return nil, err
	}
	handler := c.CreateCleanupOrdersCommandHandler()

	return []*jobs.CleanupJob{
		jobs.NewCleanupJob(cleanup.NewFulfilledPolicy(), c.cfg.FulfilledCleanupSchedule,
			&handler, c.cfg.CleanupTimeout, c.logger),
		jobs.NewCleanupJob(abandoned, c.cfg.AbandonedCleanupSchedule,
			&handler, c.cfg.CleanupTimeout, c.logger),
	}, nil
}

func (c *CompositionRoot) uowFactoryFunc() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
