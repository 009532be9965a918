package runner

import (
	"context"

	"github.com/wentf9/mesh-wizard/pkg/models"
	"github.com/wentf9/mesh-wizard/pkg/utils"
)

type TaskFunc[T any] func(ctx context.Context, node *models.Node) (T, error)

type Result[T any] struct {
	Node  *models.Node
	Value T
	Err   error
}

// RunParallel 在工作池中对每个节点执行 task,结果顺序与输入一致。
// 任务 panic 时记为 *utils.PanicError,ctx 取消后未开始的节点 Err 为 ctx.Err()
func RunParallel[T any](ctx context.Context, nodes []*models.Node, concurrency uint, task TaskFunc[T]) []Result[T] {
	results := make([]Result[T], len(nodes))
	started := make([]bool, len(nodes))

	wp := utils.NewWorkerPool(concurrency)
	for i, node := range nodes {
		results[i].Node = node
		// 每个任务只写自己的下标,无需加锁
		wp.Execute(ctx, func(ctx context.Context) {
			started[i] = true
			defer func() {
				if r := recover(); r != nil {
					results[i].Err = &utils.PanicError{Value: r}
				}
			}()
			results[i].Value, results[i].Err = task(ctx, node)
		})
	}
	wp.Wait()

	for i := range results {
		if !started[i] {
			results[i].Err = ctx.Err()
		}
	}
	return results
}
