package commands

import (
	"context"
	"fmt"
	"log/slog"

	"printflow/internal/core/domain/model/cleanup"
	"printflow/internal/core/domain/model/order"
	"printflow/internal/core/domain/model/tracking"
	"printflow/internal/core/domain/services"
	"printflow/internal/core/ports"

	"golang.org/x/sync/errgroup"
)

// DefaultCleanupConcurrency is the number of candidates processed at once.
const DefaultCleanupConcurrency = 4

// FilePurger deletes an order's files from external storage.
type FilePurger interface {
	Purge(ctx context.Context, set order.FileSet) services.PurgeReport
}

// CleanupOrdersCommandHandler reclaims external files of the orders a policy
// selects, then applies the policy's terminal action.
//
// Each candidate goes through:
//
//	selected -> rechecked -> files deleting -> all deleted -> finalized
//	         -> superseded                  -> partial failure -> untouched, logged
//
// The tracking record is reloaded before any file is touched, and a record
// that no longer matches the policy filter is left alone. Deletion always
// happens before the candidate's transaction opens, and every candidate gets
// its own transaction. Nothing is persisted mid-run, so a failed candidate is
// simply selected again by the next run.
type CleanupOrdersCommandHandler struct {
	uowFactory  UoWFactory
	purger      FilePurger
	clock       ports.Clock
	logger      *slog.Logger
	concurrency int
}

func NewCleanupOrdersCommandHandler(
	uowFactory UoWFactory,
	purger FilePurger,
	clock ports.Clock,
	logger *slog.Logger,
	concurrency int,
) CleanupOrdersCommandHandler {
	if concurrency < 1 {
		concurrency = DefaultCleanupConcurrency
	}
	return CleanupOrdersCommandHandler{
		uowFactory:  uowFactory,
		purger:      purger,
		clock:       clock,
		logger:      logger.With("component", "cleanup"),
		concurrency: concurrency,
	}
}

// Handle returns a summary of the run. Candidate failures are reported in the
// summary, never as an error; an error means no candidate was processed.
func (h *CleanupOrdersCommandHandler) Handle(ctx context.Context, cmd CleanupOrdersCommand) (cleanup.Summary, error) {
	if err := cmd.Validate(); err != nil {
		return cleanup.Summary{}, err
	}

	policy := cmd.Policy()
	startedAt := h.clock.Now()
	filter := policy.Filter(startedAt)

	candidates, err := h.uowFactory.Create().TrackingRepository().FindCandidates(ctx, filter)
	if err != nil {
		return cleanup.Summary{}, fmt.Errorf("list %s candidates: %w", policy.Name(), err)
	}

	results := make([]cleanup.CandidateResult, len(candidates))
	var g errgroup.Group
	g.SetLimit(h.concurrency)
	for i, candidate := range candidates {
		g.Go(func() error {
			results[i] = h.processCandidate(ctx, policy, filter, candidate)
			return nil
		})
	}
	_ = g.Wait()

	return cleanup.NewSummary(policy, startedAt, h.clock.Now(), results), nil
}

func (h *CleanupOrdersCommandHandler) processCandidate(
	ctx context.Context,
	policy cleanup.Policy,
	filter tracking.CandidateFilter,
	candidate *tracking.Tracking,
) cleanup.CandidateResult {
	result := cleanup.CandidateResult{OrderCode: candidate.Code()}
	logger := h.logger.With("policy", policy.Name(), "order_code", candidate.Code().String())

	reader := h.uowFactory.Create()
	aggregate, err := reader.OrderRepository().Get(ctx, candidate.OrderID())
	if err != nil {
		logger.Error("failed to load order", "error", err)
		result.Outcome = cleanup.Errored
		result.Err = err
		return result
	}

	if policy.IsAlreadyApplied(aggregate) {
		result.Outcome = cleanup.AlreadyClean
		return result
	}

	current, err := reader.TrackingRepository().GetByCode(ctx, candidate.Code())
	if err != nil {
		logger.Error("failed to reload tracking record", "error", err)
		result.Outcome = cleanup.Errored
		result.Err = err
		return result
	}
	if !filter.Matches(current, aggregate.CreatedAt()) {
		logger.Info("record changed since selection, skipped",
			"stage", current.CurrentStageName(),
		)
		result.Outcome = cleanup.Superseded
		return result
	}

	report := h.purger.Purge(ctx, aggregate.Files())
	if !report.AllDeleted() {
		failed := report.FailedRoles()
		logger.Warn("file deletion failed, order left untouched",
			"file_roles", fileRoleNames(failed),
			"error", report.Err(),
		)
		result.Outcome = cleanup.Skipped
		result.FailedRoles = failed
		result.Err = report.Err()
		return result
	}
	result.FilesDeleted = true

	if err = h.finalize(ctx, policy, current, aggregate); err != nil {
		logger.Error("files deleted but records not finalized",
			"action", policy.Action().String(),
			"error", err,
		)
		result.Outcome = cleanup.Errored
		result.Err = err
		return result
	}

	result.Outcome = cleanup.Finalized
	return result
}

// finalize applies the policy action in a transaction scoped to one candidate.
// The order is reloaded inside the transaction so a concurrent soft delete is
// not overwritten. Records are deleted only at the version that was rechecked;
// a stage written in between fails the delete and rolls the transaction back.
func (h *CleanupOrdersCommandHandler) finalize(
	ctx context.Context,
	policy cleanup.Policy,
	current *tracking.Tracking,
	loaded *order.Order,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	switch policy.Action() {
	case cleanup.ClearFiles:
		current, err := orderRepo.Get(ctx, loaded.ID())
		if err != nil {
			return err
		}
		if !current.ClearFiles() {
			return nil
		}
		if err = orderRepo.Update(ctx, current); err != nil {
			return err
		}
	case cleanup.DeleteRecords:
		if err := uow.TrackingRepository().Delete(ctx, current); err != nil {
			return err
		}
		if err := orderRepo.Delete(ctx, loaded.ID()); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported cleanup action %s", policy.Action())
	}

	return uow.Commit(ctx)
}

func fileRoleNames(roles []order.FileRole) []string {
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, role.String())
	}
	return names
}
