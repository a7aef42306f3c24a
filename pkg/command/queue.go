package command

import (
	"context"
	"log"
)

// DefaultQueueSize 命令队列默认容量
const DefaultQueueSize = 256

// Queue 跨 goroutine 的命令队列
//
// 外部来源（MQTT 回调等）在任意 goroutine 中 Push，
// 主循环在两个 tick 之间调用 Drain 顺序执行，纸娃娃系统本身保持单线程。
type Queue struct {
	ch chan Command
}

// NewQueue 创建命令队列，size <= 0 时使用 DefaultQueueSize
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{ch: make(chan Command, size)}
}

// Push 非阻塞入队，队列已满时丢弃命令并返回 false
func (q *Queue) Push(cmd Command) bool {
	select {
	case q.ch <- cmd:
		return true
	default:
		log.Printf("[CommandQueue] Warning: queue full, dropping %v", cmd.Kind)
		return false
	}
}

// PushContext 阻塞入队，直到成功或 ctx 结束
func (q *Queue) PushContext(ctx context.Context, cmd Command) error {
	select {
	case q.ch <- cmd:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Drain 取出调用时已排队的命令并依次调用 fn，不等待新命令
// 返回处理的命令数
func (q *Queue) Drain(fn func(Command)) int {
	pending := len(q.ch)
	for i := 0; i < pending; i++ {
		fn(<-q.ch)
	}
	return pending
}

// Len 返回排队中的命令数
func (q *Queue) Len() int {
	return len(q.ch)
}
