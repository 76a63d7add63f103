package game

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/decker502/planetary/pkg/config"
	"github.com/decker502/planetary/pkg/kinematics"
)

// Preset 一个已保存的舞台：配置 + 轮系状态
type Preset struct {
	ID    uuid.UUID          `yaml:"id"`
	Stage config.StageConfig `yaml:"stage"`
	State kinematics.State   `yaml:"state"`
}

// PresetStore 舞台预设存储
// 每个预设以 UUID 为键单独保存，另有一个索引记录保存顺序
type PresetStore struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	memory       []Preset       // 降级模式下的内存副本
}

// 存储路径常量
const (
	presetObject  = "presets"
	presetIndex   = "index"
	presetAppName = "planetary_gears"
)

// OpenGdata 打开应用数据目录；失败时返回 nil，调用方进入降级模式
func OpenGdata() *gdata.Manager {
	manager, err := gdata.Open(gdata.Config{AppName: presetAppName})
	if err != nil {
		log.Printf("[PresetStore] Warning: gdata unavailable: %v (presets kept in memory)", err)
		return nil
	}
	return manager
}

// NewPresetStore 创建预设存储
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存）
func NewPresetStore(gdataManager *gdata.Manager) *PresetStore {
	return &PresetStore{gdataManager: gdataManager}
}

// Persistent 是否能够持久化
func (ps *PresetStore) Persistent() bool {
	return ps.gdataManager != nil
}

// Save 保存全部预设，覆盖之前的索引
//
// 返回：
//   - error: 序列化或写入失败时返回错误
func (ps *PresetStore) Save(presets []Preset) error {
	if ps.gdataManager == nil {
		ps.memory = append(ps.memory[:0], presets...)
		return nil
	}

	ids := make([]string, 0, len(presets))
	for _, p := range presets {
		data, err := yaml.Marshal(p)
		if err != nil {
			return fmt.Errorf("failed to marshal preset %s: %w", p.ID, err)
		}
		if err := ps.gdataManager.SaveObjectProp(presetObject, p.ID.String(), data); err != nil {
			return fmt.Errorf("failed to save preset %s: %w", p.ID, err)
		}
		ids = append(ids, p.ID.String())
	}

	data, err := yaml.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to marshal preset index: %w", err)
	}
	if err := ps.gdataManager.SaveObjectProp(presetObject, presetIndex, data); err != nil {
		return fmt.Errorf("failed to save preset index: %w", err)
	}
	if err := ps.prune(ids); err != nil {
		return err
	}

	log.Printf("[PresetStore] Saved %d presets", len(presets))
	return nil
}

// prune 删除不在索引中的预设数据（已移除的舞台）
func (ps *PresetStore) prune(ids []string) error {
	keep := make(map[string]bool, len(ids)+1)
	keep[presetIndex] = true
	for _, id := range ids {
		keep[id] = true
	}

	props, err := ps.gdataManager.ListObjectProps(presetObject)
	if err != nil {
		return fmt.Errorf("failed to list presets: %w", err)
	}
	for _, prop := range props {
		if keep[prop] {
			continue
		}
		if err := ps.gdataManager.DeleteObjectProp(presetObject, prop); err != nil {
			return fmt.Errorf("failed to delete stale preset %s: %w", prop, err)
		}
		log.Printf("[PresetStore] Deleted stale preset %s", prop)
	}
	return nil
}

// Load 按索引顺序读取全部预设
// 单个预设损坏时记录警告并跳过，不影响其他预设
//
// 返回：
//   - []Preset: 读取到的预设（无索引时为空）
//   - error: 索引损坏时返回错误
func (ps *PresetStore) Load() ([]Preset, error) {
	if ps.gdataManager == nil {
		return append([]Preset(nil), ps.memory...), nil
	}
	if !ps.gdataManager.ObjectPropExists(presetObject, presetIndex) {
		return nil, nil
	}

	data, err := ps.gdataManager.LoadObjectProp(presetObject, presetIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to load preset index: %w", err)
	}
	var ids []string
	if err := yaml.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("failed to unmarshal preset index: %w", err)
	}

	presets := make([]Preset, 0, len(ids))
	for _, id := range ids {
		p, err := ps.loadOne(id)
		if err != nil {
			log.Printf("[PresetStore] Warning: skipping preset %s: %v", id, err)
			continue
		}
		presets = append(presets, p)
	}
	log.Printf("[PresetStore] Loaded %d presets", len(presets))
	return presets, nil
}

func (ps *PresetStore) loadOne(id string) (Preset, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Preset{}, fmt.Errorf("invalid preset id: %w", err)
	}
	if !ps.gdataManager.ObjectPropExists(presetObject, id) {
		return Preset{}, fmt.Errorf("preset data missing")
	}
	data, err := ps.gdataManager.LoadObjectProp(presetObject, id)
	if err != nil {
		return Preset{}, err
	}
	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Preset{}, fmt.Errorf("failed to unmarshal preset: %w", err)
	}
	if err := p.Stage.Normalize(); err != nil {
		return Preset{}, err
	}
	return p, nil
}
