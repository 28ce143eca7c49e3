package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/failsafe-go/failsafe-go/bulkhead"
	"github.com/rs/zerolog/log"
)

var (
	ErrPoolSaturated = errors.New("worker pool saturated")
	ErrTaskPanicked  = errors.New("worker task panicked")
)

// Task là một đơn vị công việc blocking (thường là 1 câu query)
type Task func(ctx context.Context) error

// Pool chạy các blocking task trên goroutine riêng, giới hạn số task đồng thời bằng bulkhead.
type Pool struct {
	bulkhead     bulkhead.Bulkhead[any]
	size         int
	queueTimeout time.Duration
}

// NewPool tạo worker pool với tối đa size task chạy đồng thời.
// queueTimeout là thời gian tối đa một submission chờ slot trống.
func NewPool(size int, queueTimeout time.Duration) *Pool {
	if size < 1 {
		size = 1
	}

	log.Info().
		Str("component", "worker").
		Int("size", size).
		Dur("queue_timeout", queueTimeout).
		Msg("Worker pool initialized")

	return &Pool{
		bulkhead:     bulkhead.With[any](uint(size)),
		size:         size,
		queueTimeout: queueTimeout,
	}
}

// Size returns the maximum number of concurrently running tasks.
func (p *Pool) Size() int {
	return p.size
}

// Submit chờ slot trống (tối đa queueTimeout), chạy task trên goroutine khác
// và đợi kết quả. Task nhận context không bị cancel khi caller bỏ đi,
// nên query đang chạy sẽ chạy đến hết.
func (p *Pool) Submit(ctx context.Context, task Task) error {
	if err := p.acquire(ctx); err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		defer p.bulkhead.ReleasePermit()
		done <- runTask(context.WithoutCancel(ctx), task)
	}()

	return <-done
}

func (p *Pool) acquire(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	waitCtx := ctx
	if p.queueTimeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, p.queueTimeout)
		defer cancel()
	}

	if err := p.bulkhead.AcquirePermit(waitCtx); err != nil {
		// caller tự cancel thì trả về lỗi của caller, không phải saturated
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		log.Warn().
			Str("component", "worker").
			Int("size", p.size).
			Dur("waited", p.queueTimeout).
			Msg("No free worker slot")
		return fmt.Errorf("%w: %w", ErrPoolSaturated, err)
	}

	return nil
}

func runTask(ctx context.Context, task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("component", "worker").
				Interface("panic", r).
				Msg("Recovered from task panic")
			err = fmt.Errorf("%w: %v", ErrTaskPanicked, r)
		}
	}()

	return task(ctx)
}
