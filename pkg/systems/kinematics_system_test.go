package systems

import (
	"image/color"
	"math"
	"testing"

	"github.com/decker502/planetary/pkg/components"
	"github.com/decker502/planetary/pkg/ecs"
	"github.com/decker502/planetary/pkg/entities"
	"github.com/decker502/planetary/pkg/gear"
	"github.com/decker502/planetary/pkg/kinematics"
)

var trainTeeth = kinematics.Teeth{Sun: 20, Planet: 16, Ring: 52}

// trainWorld 组装一个完整的行星轮系
type trainWorld struct {
	em        *ecs.EntityManager
	trainID   ecs.EntityID
	sunID     ecs.EntityID
	ringID    ecs.EntityID
	carrierID ecs.EntityID
	reconcile *PlanetReconcileSystem
	kin       *KinematicsSystem
}

func newTrainWorld(t *testing.T, speeds kinematics.Speeds, planets int) *trainWorld {
	t.Helper()
	params := gear.DefaultParams()
	em := ecs.NewEntityManager()

	mk := func(n int, internal bool) *gear.Shape {
		return gear.Make(gear.Spec{ToothCount: n, Internal: internal, Color: color.White}, params)
	}

	ringID, err := entities.NewGearEntity(em, mk(trainTeeth.Ring, true), components.RoleRing)
	if err != nil {
		t.Fatalf("ring: %v", err)
	}
	carrierID := entities.NewCarrierEntity(em, entities.CarrierStyle{StrokeWidth: 2})
	sunID, err := entities.NewGearEntity(em, mk(trainTeeth.Sun, false), components.RoleSun)
	if err != nil {
		t.Fatalf("sun: %v", err)
	}
	solver := kinematics.NewSolver(trainTeeth, speeds)
	trainID, err := entities.NewTrainEntity(em, solver, planets, kinematics.OrbitRadius(trainTeeth, params.ToothPitch))
	if err != nil {
		t.Fatalf("train: %v", err)
	}

	return &trainWorld{
		em:        em,
		trainID:   trainID,
		sunID:     sunID,
		ringID:    ringID,
		carrierID: carrierID,
		reconcile: NewPlanetReconcileSystem(em, mk(trainTeeth.Planet, false)),
		kin:       NewKinematicsSystem(em),
	}
}

func (w *trainWorld) step(elapsedMs float64) bool {
	w.reconcile.Update()
	return w.kin.Update(elapsedMs)
}

func (w *trainWorld) train() *components.TrainComponent {
	train, _ := ecs.GetComponent[*components.TrainComponent](w.em, w.trainID)
	return train
}

func TestReconcileCreatesAndRemovesPlanets(t *testing.T) {
	w := newTrainWorld(t, kinematics.Speeds{}, 3)

	if !w.reconcile.Update() {
		t.Fatal("First reconcile should create planets")
	}
	if got := len(planetsByIndex(w.em)); got != 3 {
		t.Fatalf("Expected 3 planets, got %d", got)
	}
	if w.reconcile.Update() {
		t.Error("Reconcile with matching count should be a no-op")
	}

	w.train().TargetPlanets = 5
	w.reconcile.Update()
	planets := planetsByIndex(w.em)
	if len(planets) != 5 {
		t.Fatalf("Expected 5 planets, got %d", len(planets))
	}
	for i, id := range planets {
		p, _ := ecs.GetComponent[*components.PlanetComponent](w.em, id)
		if p.Index != i {
			t.Errorf("Planet at position %d has index %d", i, p.Index)
		}
	}

	w.train().TargetPlanets = 1
	w.reconcile.Update()
	planets = planetsByIndex(w.em)
	if len(planets) != 1 {
		t.Fatalf("Expected 1 planet, got %d", len(planets))
	}
	if p, _ := ecs.GetComponent[*components.PlanetComponent](w.em, planets[0]); p.Index != 0 {
		t.Errorf("Remaining planet should be index 0, got %d", p.Index)
	}
	if !w.train().Structural {
		t.Error("Count change should mark the train as structurally changed")
	}
}

func TestKinematicsWritesTransforms(t *testing.T) {
	w := newTrainWorld(t, kinematics.Speeds{Sun: 8, Carrier: 4, Ring: 2}, 4)

	if !w.step(100) {
		t.Fatal("First step should produce a frame")
	}
	frame := w.train().Frame
	if len(frame.Planets) != 4 {
		t.Fatalf("Expected 4 planet poses, got %d", len(frame.Planets))
	}

	sun, _ := ecs.GetComponent[*components.TransformComponent](w.em, w.sunID)
	if sun.Rotation != frame.Sun || sun.Offset != 0 {
		t.Errorf("Sun transform mismatch: %+v vs %f", sun, frame.Sun)
	}
	ring, _ := ecs.GetComponent[*components.TransformComponent](w.em, w.ringID)
	if ring.Rotation != frame.Ring {
		t.Errorf("Ring rotation: expected %f, got %f", frame.Ring, ring.Rotation)
	}

	orbit := w.train().OrbitRadius
	for i, id := range planetsByIndex(w.em) {
		tr, _ := ecs.GetComponent[*components.TransformComponent](w.em, id)
		if tr.Orbital != frame.Planets[i].Orbital || tr.Rotation != frame.Planets[i].Self {
			t.Errorf("Planet %d transform mismatch", i)
		}
		center := tr.Matrix().Origin()
		if math.Abs(center.Length()-orbit) > 1e-9 {
			t.Errorf("Planet %d should sit on the orbit radius %f, got %f", i, orbit, center.Length())
		}
	}

	c, _ := ecs.GetComponent[*components.CarrierComponent](w.em, w.carrierID)
	if c.Path.Empty || len(c.Path.Arcs) != 4 {
		t.Errorf("Carrier should have 4 arcs, got %+v", c.Path)
	}
}

func TestKinematicsSkipsRedundantFrames(t *testing.T) {
	w := newTrainWorld(t, kinematics.Speeds{}, 3)

	if !w.step(16) {
		t.Fatal("First frame should always be produced")
	}
	if w.step(16) {
		t.Error("Zero speed without structural change should not produce a frame")
	}

	// 行星数量变化：即使速度为 0 也必须重新求解
	w.train().TargetPlanets = 6
	if !w.step(16) {
		t.Error("Planet count change should force a new frame")
	}
	if got := len(w.train().Frame.Planets); got != 6 {
		t.Errorf("Expected 6 poses after change, got %d", got)
	}
	c, _ := ecs.GetComponent[*components.CarrierComponent](w.em, w.carrierID)
	if len(c.Path.Arcs) != 6 {
		t.Errorf("Carrier should follow the new planet count, got %d arcs", len(c.Path.Arcs))
	}
}

func TestPlanetCountChangeKeepsTrainState(t *testing.T) {
	w := newTrainWorld(t, kinematics.Speeds{Sun: 8, Carrier: 4, Ring: 2}, 8)
	for i := 0; i < 5; i++ {
		w.step(100)
	}
	before := w.train().Solver.State()

	w.train().TargetPlanets = 3
	w.reconcile.Update()
	if after := w.train().Solver.State(); after != before {
		t.Errorf("Reconciling planets should not touch train state: %+v -> %+v", before, after)
	}
}

func TestZeroPlanetsLeavesCarrierEmpty(t *testing.T) {
	w := newTrainWorld(t, kinematics.Speeds{Sun: 1}, 0)
	w.step(10)

	c, _ := ecs.GetComponent[*components.CarrierComponent](w.em, w.carrierID)
	if !c.Path.Empty {
		t.Error("Carrier path should be empty without planets")
	}
}
