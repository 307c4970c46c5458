//go:build linux

// Package affinity 提供把 worker 绑定到 CPU 核心的平台实现
package affinity

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/unix"
)

// ThreadPinner Linux 下基于 sched_setaffinity 的实现
// Pin 必须在 worker 自己的 goroutine 中调用：先锁定 OS 线程，
// 再把该线程的 CPU 掩码收缩到单个核心
type ThreadPinner struct{}

// NewThreadPinner 创建 ThreadPinner
func NewThreadPinner() *ThreadPinner {
	return &ThreadPinner{}
}

// Pin 把当前 goroutine 绑定到 coreID
func (p *ThreadPinner) Pin(coreID int) error {
	numCPU := runtime.NumCPU()
	if coreID < 0 || coreID >= numCPU {
		return fmt.Errorf("invalid core index %d, host has %d cores", coreID, numCPU)
	}

	runtime.LockOSThread()

	var set unix.CPUSet
	set.Zero()
	set.Set(coreID)
	// pid 0 表示当前线程
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		runtime.UnlockOSThread()
		return fmt.Errorf("sched_setaffinity to core %d failed: %w", coreID, err)
	}

	return nil
}

// Unpin 恢复全核掩码并解除线程锁定
func (p *ThreadPinner) Unpin() error {
	var set unix.CPUSet
	set.Zero()
	for i := 0; i < runtime.NumCPU(); i++ {
		set.Set(i)
	}
	err := unix.SchedSetaffinity(0, &set)
	runtime.UnlockOSThread()
	if err != nil {
		return fmt.Errorf("failed to restore cpu mask: %w", err)
	}
	return nil
}
