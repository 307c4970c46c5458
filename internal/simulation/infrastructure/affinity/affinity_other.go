//go:build !linux

package affinity

import "fmt"

// ThreadPinner 非 Linux 平台的占位实现
// 绑定请求返回 unsupported 错误，由调用方按不致命处理，worker 继续运行
type ThreadPinner struct{}

// NewThreadPinner 创建 ThreadPinner
func NewThreadPinner() *ThreadPinner {
	return &ThreadPinner{}
}

// Pin 当前平台不支持 CPU 绑定
func (p *ThreadPinner) Pin(coreID int) error {
	return fmt.Errorf("cpu affinity is not supported on this platform")
}

// Unpin 无操作
func (p *ThreadPinner) Unpin() error {
	return nil
}
