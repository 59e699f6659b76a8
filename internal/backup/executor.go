// Copyright (c) 2026 First Light
// Gearbase - inventory & asset management for construction sites
// This source code is licensed under the MIT license found in the LICENSE file.

package backup

import (
	"context"
	"sync/atomic"

	"github.com/firstlight/gearbase/internal/logging"
)

// executeRun applies a plan's operations in order, honoring cancellation
// between operations. Individual failures are recorded and the run keeps
// going; the in-flight operation is never interrupted mid-write.
func executeRun(ctx context.Context, src DataSource, plan *Plan, rep *reporter, cancelled *atomic.Bool) Result {
	for _, op := range plan.Operations {
		if cancelled.Load() || ctx.Err() != nil {
			logging.Infof("restore %s cancelled after %d of %d operations",
				rep.result.RunID, rep.result.Completed+rep.result.Failed, rep.result.TotalPlanned)
			return rep.finalize(true)
		}

		rep.opStarted(op)
		rep.opCompleted(op, applyOperation(ctx, src, op))
	}
	return rep.finalize(cancelled.Load())
}

func applyOperation(ctx context.Context, src DataSource, op Operation) error {
	switch op.Kind {
	case OpUpdate:
		return src.Update(ctx, op.Section, op.Record)
	default:
		return src.Create(ctx, op.Section, op.Record)
	}
}
