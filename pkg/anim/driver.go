// Package anim 动画驱动：测量相邻两次调度之间的真实经过时间并回调帧函数
package anim

import (
	"context"
	"time"
)

// DriverState 驱动器状态
type DriverState int

const (
	Stopped DriverState = iota
	Running
)

// String 返回状态名称
func (s DriverState) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// FrameFunc 每帧回调，elapsedMs 为距上一帧的毫秒数
type FrameFunc func(elapsedMs float64)

// Clock 时间源，测试时可替换
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock 返回系统时钟
func SystemClock() Clock { return systemClock{} }

// Driver 帧调度器
//
// 状态机：Stopped → Running，Running 没有终止态，Stop 只是停止后续回调。
// 每次 Tick 都是同步执行的，不存在需要取消的进行中任务。
type Driver struct {
	clock    Clock
	callback FrameFunc
	state    DriverState
	last     time.Time
	frames   uint64
}

// NewDriver 创建驱动器；clock 为 nil 时使用系统时钟
func NewDriver(clock Clock, callback FrameFunc) *Driver {
	if clock == nil {
		clock = SystemClock()
	}
	return &Driver{
		clock:    clock,
		callback: callback,
		state:    Stopped,
	}
}

// Start 进入运行态
// 从停止态启动后的第一帧经过时间为 0，停止期间不计入动画时间
func (d *Driver) Start() {
	if d.state == Running {
		return
	}
	d.state = Running
	d.last = d.clock.Now()
	d.frames = 0
}

// Stop 停止后续回调
func (d *Driver) Stop() {
	d.state = Stopped
}

// State 返回当前状态
func (d *Driver) State() DriverState {
	return d.state
}

// Frames 返回本次运行以来的帧数
func (d *Driver) Frames() uint64 {
	return d.frames
}

// Tick 由外部调度器每帧调用一次
// 停止态下不做任何事；运行态下测量经过时间并调用回调
func (d *Driver) Tick() {
	if d.state != Running {
		return
	}
	now := d.clock.Now()
	elapsed := now.Sub(d.last)
	d.last = now
	if elapsed < 0 {
		elapsed = 0
	}

	d.frames++
	if d.callback != nil {
		d.callback(float64(elapsed) / float64(time.Millisecond))
	}
}

// Run 无窗口环境下的调度循环：每隔 interval 调用一次 Tick，直到 ctx 取消
func (d *Driver) Run(ctx context.Context, interval time.Duration) error {
	d.Start()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.Stop()
			return ctx.Err()
		case <-ticker.C:
			d.Tick()
		}
	}
}
