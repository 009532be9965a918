package utils

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkerPool_RunsAllTasks(t *testing.T) {
	wp := NewWorkerPool(0)
	var count atomic.Int32
	for range 20 {
		wp.Execute(context.Background(), func(context.Context) { count.Add(1) })
	}
	wp.Wait()
	assert.Equal(t, int32(20), count.Load())
}

func TestWorkerPool_PanicHandler(t *testing.T) {
	var recovered atomic.Value
	wp := NewWorkerPool(1, WithPanicHandler(func(r any) { recovered.Store(r) }))
	wp.Execute(context.Background(), func(context.Context) { panic("oops") })
	wp.Wait()
	assert.Equal(t, "oops", recovered.Load())
}

func TestPanicError(t *testing.T) {
	assert.EqualError(t, &PanicError{Value: "x"}, "task panicked: x")
}
