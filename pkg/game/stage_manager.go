package game

import (
	"fmt"
	"log"
	"math"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/planetary/pkg/config"
	"github.com/decker502/planetary/pkg/geometry"
	"github.com/decker502/planetary/pkg/render/screen"
	"github.com/decker502/planetary/pkg/scene"
)

// StageEntry 一个被管理的舞台
type StageEntry struct {
	ID    uuid.UUID
	Stage *scene.Stage

	canvas *ebiten.Image // 离屏画布，边长为舞台画布大小
	dirty  bool          // 需要重绘离屏画布
}

// Cell 舞台在窗口中的网格位置
type Cell struct {
	X, Y  float64
	Scale float64
}

// StageManager 管理多个舞台，在窗口中按网格排列
//
// 所有舞台共用同一个动画时钟；单个舞台构建失败只影响它自己。
type StageManager struct {
	entries  []*StageEntry
	renderer *screen.Renderer
}

// NewStageManager 创建空的舞台管理器
func NewStageManager() *StageManager {
	return &StageManager{renderer: screen.NewRenderer()}
}

// Add 根据配置新建舞台并分配 UUID
func (sm *StageManager) Add(sc config.StageConfig) (uuid.UUID, error) {
	return sm.AddWithID(uuid.New(), sc)
}

// AddWithID 以指定 UUID 新建舞台（从预设恢复时使用）
func (sm *StageManager) AddWithID(id uuid.UUID, sc config.StageConfig) (uuid.UUID, error) {
	if sm.find(id) >= 0 {
		return uuid.Nil, fmt.Errorf("stage %s already exists", id)
	}
	stage, err := scene.NewStageFromConfig(sc)
	if err != nil {
		return uuid.Nil, err
	}
	sm.entries = append(sm.entries, &StageEntry{ID: id, Stage: stage, dirty: true})
	log.Printf("[StageManager] 添加舞台 %s (%s)，共 %d 个", stage.Name(), id, len(sm.entries))
	return id, nil
}

// AddAll 依次添加多个配置，失败的舞台记录日志并跳过
// 返回成功添加的数量
func (sm *StageManager) AddAll(configs []config.StageConfig) int {
	added := 0
	for _, sc := range configs {
		if _, err := sm.Add(sc); err != nil {
			log.Printf("[StageManager] 错误: 无法创建舞台 %s: %v", sc.Name, err)
			continue
		}
		added++
	}
	return added
}

// Remove 移除指定舞台
func (sm *StageManager) Remove(id uuid.UUID) bool {
	i := sm.find(id)
	if i < 0 {
		return false
	}
	sm.removeAt(i)
	return true
}

// RemoveLast 移除最后添加的舞台
func (sm *StageManager) RemoveLast() bool {
	if len(sm.entries) == 0 {
		return false
	}
	sm.removeAt(len(sm.entries) - 1)
	return true
}

func (sm *StageManager) removeAt(i int) {
	e := sm.entries[i]
	if e.canvas != nil {
		e.canvas.Deallocate()
	}
	sm.entries = append(sm.entries[:i], sm.entries[i+1:]...)
	log.Printf("[StageManager] 移除舞台 %s (%s)，剩余 %d 个", e.Stage.Name(), e.ID, len(sm.entries))
}

func (sm *StageManager) find(id uuid.UUID) int {
	for i, e := range sm.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Get 按 UUID 查找舞台
func (sm *StageManager) Get(id uuid.UUID) (*scene.Stage, bool) {
	if i := sm.find(id); i >= 0 {
		return sm.entries[i].Stage, true
	}
	return nil, false
}

// Entries 返回全部舞台（按添加顺序）
func (sm *StageManager) Entries() []*StageEntry {
	return sm.entries
}

// Len 舞台数量
func (sm *StageManager) Len() int {
	return len(sm.entries)
}

// Update 推进所有舞台
func (sm *StageManager) Update(elapsedMs float64) {
	for _, e := range sm.entries {
		if e.Stage.Update(elapsedMs) {
			e.dirty = true
		}
	}
}

// AdjustPlanets 调整所有舞台的行星数量，结果限制在 [0, config.MaxPlanetCount]
func (sm *StageManager) AdjustPlanets(delta int) {
	for _, e := range sm.entries {
		n := e.Stage.PlanetCount() + delta
		n = max(0, min(n, config.MaxPlanetCount))
		e.Stage.SetPlanetCount(n)
		// 暂停时也要立即生效
		e.Stage.Update(0)
		e.dirty = true
	}
}

// Presets 导出当前所有舞台为预设
func (sm *StageManager) Presets() []Preset {
	presets := make([]Preset, 0, len(sm.entries))
	for _, e := range sm.entries {
		presets = append(presets, Preset{
			ID:    e.ID,
			Stage: e.Stage.Config(),
			State: e.Stage.State(),
		})
	}
	return presets
}

// Restore 用预设替换当前舞台，返回成功恢复的数量
func (sm *StageManager) Restore(presets []Preset) int {
	for len(sm.entries) > 0 {
		sm.RemoveLast()
	}
	restored := 0
	for _, p := range presets {
		if _, err := sm.AddWithID(p.ID, p.Stage); err != nil {
			log.Printf("[StageManager] 错误: 无法恢复预设 %s: %v", p.ID, err)
			continue
		}
		stage, _ := sm.Get(p.ID)
		stage.SetState(p.State)
		stage.Update(0)
		restored++
	}
	return restored
}

// Layout 计算每个舞台在 width×height 区域内的网格位置
// 网格列数为 ceil(sqrt(n))，每个舞台等比缩放到单元格内并居中
func (sm *StageManager) Layout(width, height float64) []Cell {
	n := len(sm.entries)
	if n == 0 {
		return nil
	}
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	rows := (n + cols - 1) / cols
	cellW := width / float64(cols)
	cellH := height / float64(rows)

	cells := make([]Cell, n)
	for i, e := range sm.entries {
		size := e.Stage.CanvasSize()
		scale := math.Min(cellW, cellH) / size
		col, row := i%cols, i/cols
		cells[i] = Cell{
			X:     float64(col)*cellW + (cellW-size*scale)/2,
			Y:     float64(row)*cellH + (cellH-size*scale)/2,
			Scale: scale,
		}
	}
	return cells
}

// Draw 将所有舞台绘制到屏幕
func (sm *StageManager) Draw(dst *ebiten.Image) {
	b := dst.Bounds()
	cells := sm.Layout(float64(b.Dx()), float64(b.Dy()))

	for i, e := range sm.entries {
		size := int(math.Ceil(e.Stage.CanvasSize()))
		if e.canvas == nil {
			e.canvas = ebiten.NewImage(size, size)
			e.dirty = true
		}
		if e.dirty {
			e.canvas.Clear()
			sm.renderer.Draw(e.canvas, e.Stage.Snapshot(), geometry.Point{})
			e.dirty = false
		}

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(cells[i].Scale, cells[i].Scale)
		op.GeoM.Translate(cells[i].X, cells[i].Y)
		op.Filter = ebiten.FilterLinear
		dst.DrawImage(e.canvas, op)
	}
}
