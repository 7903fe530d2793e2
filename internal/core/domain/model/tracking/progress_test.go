package tracking_test

import (
	"testing"
	"time"

	"printflow/internal/core/domain/model/tracking"
	"printflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProgress(t *testing.T) {
	t.Run("should drop fields outside the stage whitelist", func(t *testing.T) {
		p, err := tracking.ParseProgress(map[string]tracking.StageProposal{
			"PaymentVerified": {Completed: true},
			"isDelete":        {Completed: true},
			"orderRealId":     {Completed: true},
		})

		require.NoError(t, err)
		assert.Equal(t, []tracking.Stage{tracking.PaymentVerified}, p.Stages())
	})

	t.Run("should reject payload with no known stage", func(t *testing.T) {
		_, err := tracking.ParseProgress(map[string]tracking.StageProposal{"isDelete": {Completed: true}})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should order stages canonically", func(t *testing.T) {
		p, err := tracking.ParseProgress(map[string]tracking.StageProposal{
			"Delivered":       {Completed: true},
			"OrderPlaced":     {Completed: true},
			"PrintingStarted": {Completed: true},
		})

		require.NoError(t, err)
		assert.Equal(t,
			[]tracking.Stage{tracking.OrderPlaced, tracking.PrintingStarted, tracking.Delivered},
			p.Stages())
	})
}

func TestNewProgress(t *testing.T) {
	t.Run("should reject invalid stage", func(t *testing.T) {
		_, err := tracking.NewProgress(map[tracking.Stage]tracking.StageProposal{tracking.Unknown: {Completed: true}})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should not alias the caller's map", func(t *testing.T) {
		in := map[tracking.Stage]tracking.StageProposal{tracking.PaymentVerified: {Completed: true}}
		p, err := tracking.NewProgress(in)
		require.NoError(t, err)

		in[tracking.Delivered] = tracking.StageProposal{Completed: true}

		assert.Len(t, p.Stages(), 1)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var p tracking.Progress
		require.ErrorIs(t, p.Validate(), tracking.ErrProgressIsNotConstructed)
	})
}

func TestCandidateFilter_Matches(t *testing.T) {
	tr := newTracking(t)
	cutoff := placedAt.Add(48 * time.Hour)

	abandoned := tracking.NewAbandonedFilter(cutoff)
	assert.Equal(t, tracking.AbandonedCandidates, abandoned.Kind())
	assert.True(t, abandoned.Matches(tr, placedAt))
	assert.False(t, abandoned.Matches(tr, cutoff), "cutoff is exclusive")
	assert.False(t, tracking.NewFulfilledFilter().Matches(tr, placedAt))

	_, err := tr.Advance(progressOf(t, true, tracking.PaymentVerified), placedAt)
	require.NoError(t, err)
	assert.False(t, abandoned.Matches(tr, placedAt))
}
