package utils

import (
	"context"
	"fmt"
	"sync"
)

// WorkerPool 控制并发任务的执行
type WorkerPool interface {
	// Execute 提交任务,ctx 取消后尚未开始的任务直接跳过
	Execute(ctx context.Context, task func(ctx context.Context))
	Wait()
}

type defaultWorkerPool struct {
	limit        chan struct{}
	wg           sync.WaitGroup
	panicHandler func(any)
}

type Option func(*defaultWorkerPool)

// WithPanicHandler 任务 panic 时调用,不设置时 panic 照常向上抛出
func WithPanicHandler(handler func(any)) Option {
	return func(wp *defaultWorkerPool) {
		wp.panicHandler = handler
	}
}

// DefaultConcurrency maxConcurrent 为 0 时使用的并发数
const DefaultConcurrency = 5

func NewWorkerPool(maxConcurrent uint, options ...Option) WorkerPool {
	if maxConcurrent == 0 {
		maxConcurrent = DefaultConcurrency
	}
	wp := &defaultWorkerPool{
		limit: make(chan struct{}, maxConcurrent),
	}
	for _, option := range options {
		option(wp)
	}
	return wp
}

func (wp *defaultWorkerPool) Execute(ctx context.Context, task func(ctx context.Context)) {
	wp.wg.Go(func() {
		select {
		case wp.limit <- struct{}{}:
		case <-ctx.Done():
			return
		}
		defer func() { <-wp.limit }()
		if wp.panicHandler != nil {
			defer func() {
				if r := recover(); r != nil {
					wp.panicHandler(r)
				}
			}()
		}
		task(ctx)
	})
}

func (wp *defaultWorkerPool) Wait() {
	wp.wg.Wait()
}

// PanicError 把 recover 得到的值包装成 error
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("task panicked: %v", e.Value)
}
