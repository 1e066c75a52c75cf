package worker

import "context"

func (w *Sweeper) Sweep(ctx context.Context) error {
	return w.sweep(ctx)
}
