// Package kinematics 行星轮系运动学求解
//
// 给定太阳轮、内齿圈的齿数与三个构件（太阳轮、行星架、内齿圈）的角速度，
// 每帧推进各构件角度，并求出每个行星轮的公转位置与自转角，使齿面保持无滑动啮合。
// 所有角度均为角度制。
package kinematics

import (
	"math"

	"github.com/decker502/planetary/pkg/geometry"
)

// DefaultPlanetCount 默认显示的行星轮数量
const DefaultPlanetCount = 8

// Teeth 三类齿轮的齿数
type Teeth struct {
	Sun    int
	Planet int
	Ring   int
}

// Speeds 三个构件的角速度（单位：每毫秒 2π/1000 的倍数）
// 各分量相互独立，可任意为 0
type Speeds struct {
	Sun     float64
	Carrier float64
	Ring    float64
}

// IsZero 三个速度是否全为 0
func (s Speeds) IsZero() bool {
	return s.Sun == 0 && s.Carrier == 0 && s.Ring == 0
}

// State 轮系状态：按经过时间单调推进，跨帧保持
type State struct {
	Sun     float64
	Carrier float64
	Ring    float64
}

// PlanetPose 单个行星轮的位姿
type PlanetPose struct {
	Orbital float64 // 公转角（放置位置）
	Self    float64 // 自转角（齿的朝向）
}

// Frame 一帧的求解结果（显示角度）
type Frame struct {
	Sun     float64 // 太阳轮显示角度
	Ring    float64 // 内齿圈显示角度（含奇偶相位修正）
	Carrier float64 // 行星架角度
	Planets []PlanetPose
}

// Normalized 返回所有角度规范化到 [0, 360) 后的副本
func (f Frame) Normalized() Frame {
	out := Frame{
		Sun:     geometry.NormalizeDegrees(f.Sun),
		Ring:    geometry.NormalizeDegrees(f.Ring),
		Carrier: geometry.NormalizeDegrees(f.Carrier),
		Planets: make([]PlanetPose, len(f.Planets)),
	}
	for i, p := range f.Planets {
		out.Planets[i] = PlanetPose{
			Orbital: geometry.NormalizeDegrees(p.Orbital),
			Self:    geometry.NormalizeDegrees(p.Self),
		}
	}
	return out
}

// Solver 行星轮系求解器，独占持有 State
type Solver struct {
	teeth  Teeth
	speeds Speeds
	state  State

	last    Frame
	hasLast bool
}

// NewSolver 创建求解器，初始状态全为 0
// 齿数关系 ring = sun + 2·planet 由调用方预先校验，此处不强制
func NewSolver(teeth Teeth, speeds Speeds) *Solver {
	return &Solver{teeth: teeth, speeds: speeds}
}

// Teeth 返回齿数配置
func (s *Solver) Teeth() Teeth { return s.teeth }

// Speeds 返回当前角速度
func (s *Solver) Speeds() Speeds { return s.speeds }

// SetSpeeds 修改角速度，不影响已累计的状态
func (s *Solver) SetSpeeds(speeds Speeds) { s.speeds = speeds }

// State 返回当前轮系状态
func (s *Solver) State() State { return s.state }

// SetState 直接设置轮系状态（用于恢复会话）
func (s *Solver) SetState(state State) {
	s.state = state
	s.hasLast = false
}

// Update 推进 elapsedMs 毫秒并求解 planetCount 个行星轮
//
// 若三个速度均为 0 且自上一帧以来没有结构变化（structural=false），
// 直接返回上一帧结果，changed=false，调用方可跳过重绘。
func (s *Solver) Update(elapsedMs float64, planetCount int, structural bool) (frame Frame, changed bool) {
	if s.hasLast && s.speeds.IsZero() && !structural {
		return s.last, false
	}

	s.Advance(elapsedMs)
	s.last = s.Solve(planetCount)
	s.hasLast = true
	return s.last, true
}

// Advance 按经过时间推进三个构件角度
// 增量 = 2π/1000 × elapsedMs × 速度
func (s *Solver) Advance(elapsedMs float64) {
	inc := 2 * math.Pi / 1000 * elapsedMs
	s.state.Sun += inc * s.speeds.Sun
	s.state.Carrier += inc * s.speeds.Carrier
	s.state.Ring += inc * s.speeds.Ring
}

// Solve 由当前状态求出本帧所有构件的显示角度，不修改状态
func (s *Solver) Solve(planetCount int) Frame {
	return SolveState(s.teeth, s.state, planetCount)
}

// SolveState 纯函数形式的求解
func SolveState(teeth Teeth, state State, planetCount int) Frame {
	sunTeeth := float64(teeth.Sun)
	planetTeeth := float64(teeth.Planet)
	ringTeeth := float64(teeth.Ring)

	frame := Frame{
		Sun:     state.Sun - 90,
		Ring:    state.Ring - 90 - float64(1-teeth.Planet%2)*180/ringTeeth,
		Carrier: state.Carrier,
	}
	if planetCount <= 0 {
		return frame
	}

	frame.Planets = make([]PlanetPose, planetCount)
	for i := 0; i < planetCount; i++ {
		position := state.Carrier + 360*float64(i)/float64(planetCount)

		// 从太阳轮与内齿圈分别推算的啮合相位，差值折算为公转修正量
		fromSun := sunTeeth * (position - state.Sun)
		fromRing := ringTeeth * (state.Ring - position)
		position += normalizeOffset(math.Mod(fromRing-fromSun, 360)) / (ringTeeth + sunTeeth)

		frame.Planets[i] = PlanetPose{
			Orbital: position,
			Self:    ringTeeth/planetTeeth*(state.Ring-position) + 90 + 180/planetTeeth,
		}
	}
	return frame
}

// normalizeOffset 将相位差规范化到 [-180, 180]
func normalizeOffset(offset float64) float64 {
	for offset > 180 {
		offset -= 360
	}
	for offset < -180 {
		offset += 360
	}
	return offset
}

// OrbitRadius 行星公转半径 = (sun + planet) × 齿距 / 2π
func OrbitRadius(teeth Teeth, toothPitch float64) float64 {
	return float64(teeth.Sun+teeth.Planet) * toothPitch / (2 * math.Pi)
}
