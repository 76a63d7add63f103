package game

import (
	"testing"

	"github.com/google/uuid"

	"github.com/decker502/planetary/pkg/config"
	"github.com/decker502/planetary/pkg/kinematics"
)

func TestStageManagerAddRemove(t *testing.T) {
	sm := NewStageManager()

	id1, err := sm.Add(config.DefaultStageConfig())
	if err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	id2, err := sm.Add(config.DefaultStageConfig())
	if err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if id1 == id2 || id1 == uuid.Nil {
		t.Errorf("Stages should get distinct IDs: %s, %s", id1, id2)
	}
	if sm.Len() != 2 {
		t.Fatalf("Expected 2 stages, got %d", sm.Len())
	}

	if _, err := sm.AddWithID(id1, config.DefaultStageConfig()); err == nil {
		t.Error("Duplicate ID should be rejected")
	}

	if !sm.Remove(id1) || sm.Len() != 1 {
		t.Error("Remove(id1) should succeed")
	}
	if sm.Remove(id1) {
		t.Error("Removing twice should fail")
	}
	if _, ok := sm.Get(id2); !ok {
		t.Error("Second stage should remain")
	}
	if !sm.RemoveLast() || sm.RemoveLast() {
		t.Error("RemoveLast should remove exactly one stage")
	}
}

func TestStageManagerAddAllSkipsInvalid(t *testing.T) {
	sm := NewStageManager()
	bad := config.DefaultStageConfig()
	bad.Teeth.Ring = 99

	if added := sm.AddAll([]config.StageConfig{config.DefaultStageConfig(), bad}); added != 1 {
		t.Errorf("Expected 1 stage added, got %d", added)
	}
	if sm.Len() != 1 {
		t.Errorf("Invalid stage should be skipped, have %d", sm.Len())
	}
}

func TestStageManagerAdjustPlanets(t *testing.T) {
	sm := NewStageManager()
	sm.Add(config.DefaultStageConfig())

	sm.AdjustPlanets(-100)
	sm.Update(16)
	stage := sm.Entries()[0].Stage
	if stage.PlanetCount() != 0 || stage.Snapshot().Planets() != 0 {
		t.Errorf("Planet count should clamp to 0, got %d", stage.PlanetCount())
	}

	sm.AdjustPlanets(3)
	sm.Update(16)
	if stage.Snapshot().Planets() != 3 {
		t.Errorf("Expected 3 planets, got %d", stage.Snapshot().Planets())
	}

	// 暂停时（没有 Update）也立即生效
	sm.AdjustPlanets(1)
	if got := stage.Snapshot().Planets(); got != 4 {
		t.Errorf("Expected 4 planets without an update, got %d", got)
	}
}

func TestStageManagerLayout(t *testing.T) {
	sm := NewStageManager()
	if sm.Layout(800, 600) != nil {
		t.Error("Empty manager should have no cells")
	}

	for i := 0; i < 3; i++ {
		sm.Add(config.DefaultStageConfig())
	}
	cells := sm.Layout(1200, 1200)
	if len(cells) != 3 {
		t.Fatalf("Expected 3 cells, got %d", len(cells))
	}
	// 3 个舞台：2 列 2 行，单元格 600×600，画布 600 不缩放
	if cells[0].Scale != 1 || cells[0].X != 0 || cells[0].Y != 0 {
		t.Errorf("Cell 0 mismatch: %+v", cells[0])
	}
	if cells[1].X != 600 || cells[1].Y != 0 {
		t.Errorf("Cell 1 mismatch: %+v", cells[1])
	}
	if cells[2].X != 0 || cells[2].Y != 600 {
		t.Errorf("Cell 2 mismatch: %+v", cells[2])
	}

	// 单个舞台在宽屏中居中
	sm2 := NewStageManager()
	sm2.Add(config.DefaultStageConfig())
	c := sm2.Layout(1000, 300)[0]
	if c.Scale != 0.5 || c.X != 350 || c.Y != 0 {
		t.Errorf("Single stage should be centered and scaled: %+v", c)
	}
}

func TestStageManagerPresetsRoundTrip(t *testing.T) {
	sm := NewStageManager()
	sc := config.DefaultStageConfig()
	sc.SetPlanets(4)
	id, _ := sm.Add(sc)
	for i := 0; i < 5; i++ {
		sm.Update(100)
	}
	stage, _ := sm.Get(id)
	state := stage.State()

	presets := sm.Presets()
	if len(presets) != 1 || presets[0].ID != id || presets[0].State != state {
		t.Fatalf("Unexpected presets: %+v", presets)
	}

	other := NewStageManager()
	other.Add(config.DefaultStageConfig())
	if restored := other.Restore(presets); restored != 1 {
		t.Fatalf("Expected 1 restored stage, got %d", restored)
	}
	if other.Len() != 1 {
		t.Fatalf("Restore should replace existing stages, have %d", other.Len())
	}
	restored, ok := other.Get(id)
	if !ok {
		t.Fatal("Restored stage should keep its ID")
	}
	if restored.State() != state || restored.PlanetCount() != 4 {
		t.Errorf("Restored stage mismatch: state %+v, planets %d", restored.State(), restored.PlanetCount())
	}
	if restored.Speeds() != (kinematics.Speeds{Sun: 8, Carrier: 4, Ring: 2}) {
		t.Errorf("Restored speeds mismatch: %+v", restored.Speeds())
	}
}
