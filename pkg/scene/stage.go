// Package scene 组装一个完整的行星轮系舞台：静态齿轮图形、行星实例与运动学系统
package scene

import (
	"fmt"
	"image/color"
	"log"

	"github.com/decker502/planetary/pkg/components"
	"github.com/decker502/planetary/pkg/ecs"
	"github.com/decker502/planetary/pkg/entities"
	"github.com/decker502/planetary/pkg/gear"
	"github.com/decker502/planetary/pkg/kinematics"
	"github.com/decker502/planetary/pkg/systems"
)

// DefaultCanvasSize 默认画布边长（像素）
const DefaultCanvasSize = 600.0

// CarrierStrokeWidth 行星架描边宽度
const CarrierStrokeWidth = 2.0

// Palette 舞台配色
type Palette struct {
	Sun           color.Color
	Planet        color.Color
	Ring          color.Color
	CarrierFill   color.Color
	CarrierStroke color.Color
	Background    color.Color
}

// DefaultPalette 返回默认配色
func DefaultPalette() Palette {
	return Palette{
		Sun:           color.RGBA{R: 0x44, G: 0xdd, B: 0xdd, A: 0xff},
		Planet:        color.NRGBA{R: 0xff, G: 0x00, B: 0xff, A: 0x88},
		Ring:          color.RGBA{R: 0x88, G: 0xff, B: 0x88, A: 0xff},
		CarrierFill:   color.RGBA{R: 0xff, G: 0x88, B: 0x88, A: 0xff},
		CarrierStroke: color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff},
		Background:    gear.BackgroundColor,
	}
}

// Options 舞台构建参数
type Options struct {
	Name          string
	Teeth         kinematics.Teeth
	Speeds        kinematics.Speeds
	PlanetCount   int
	CanvasSize    float64
	AllowMismatch bool
	Palette       Palette
}

// DefaultOptions 返回默认舞台：太阳轮 20、行星轮 16、内齿圈 52，速度 8/4/2，8 个行星
func DefaultOptions() Options {
	return Options{
		Name:        "default",
		Teeth:       kinematics.Teeth{Sun: 20, Planet: 16, Ring: 52},
		Speeds:      kinematics.Speeds{Sun: 8, Carrier: 4, Ring: 2},
		PlanetCount: kinematics.DefaultPlanetCount,
		CanvasSize:  DefaultCanvasSize,
		Palette:     DefaultPalette(),
	}
}

// Stage 一个行星轮系舞台
//
// 齿数在构建时确定；修改齿数需要重新构建 Stage。
// 行星数量与速度可随时修改，不会重置轮系状态。
type Stage struct {
	opts   Options
	params gear.Params

	entityManager *ecs.EntityManager
	ringShape     *gear.Shape
	sunShape      *gear.Shape
	planetShape   *gear.Shape

	trainID   ecs.EntityID
	carrierID ecs.EntityID

	reconcileSystem  *systems.PlanetReconcileSystem
	kinematicsSystem *systems.KinematicsSystem
}

// NewStage 构建舞台
//
// 返回:
//   - *Stage: 已完成第一帧求解的舞台
//   - error: 齿数不合法时返回错误
func NewStage(opts Options) (*Stage, error) {
	if err := kinematics.ValidateTrain(opts.Teeth, opts.AllowMismatch); err != nil {
		return nil, fmt.Errorf("stage %q: %w", opts.Name, err)
	}
	if opts.CanvasSize <= 0 {
		opts.CanvasSize = DefaultCanvasSize
	}
	if opts.PlanetCount < 0 {
		opts.PlanetCount = 0
	}
	opts.Palette = opts.Palette.withDefaults()

	s := &Stage{
		opts:          opts,
		params:        gear.ParamsForCanvas(opts.CanvasSize, opts.Teeth.Ring),
		entityManager: ecs.NewEntityManager(),
	}

	s.ringShape = gear.Make(gear.Spec{ToothCount: opts.Teeth.Ring, Internal: true, Color: opts.Palette.Ring}, s.params)
	s.sunShape = gear.Make(gear.Spec{ToothCount: opts.Teeth.Sun, Color: opts.Palette.Sun}, s.params)
	s.planetShape = gear.Make(gear.Spec{ToothCount: opts.Teeth.Planet, Color: opts.Palette.Planet}, s.params)
	for _, sh := range []*gear.Shape{s.ringShape, s.sunShape, s.planetShape} {
		sh.OutlineFill = fillOrBackground(sh, opts.Palette.Background)
		if sh.Axle != nil {
			sh.Axle.Fill = opts.Palette.Background
		}
	}

	// 创建顺序即绘制顺序：内齿圈、行星架、太阳轮，行星由协调系统追加
	if _, err := entities.NewGearEntity(s.entityManager, s.ringShape, components.RoleRing); err != nil {
		return nil, fmt.Errorf("stage %q: %w", opts.Name, err)
	}
	s.carrierID = entities.NewCarrierEntity(s.entityManager, entities.CarrierStyle{
		Fill:        opts.Palette.CarrierFill,
		Stroke:      opts.Palette.CarrierStroke,
		StrokeWidth: CarrierStrokeWidth,
	})
	if _, err := entities.NewGearEntity(s.entityManager, s.sunShape, components.RoleSun); err != nil {
		return nil, fmt.Errorf("stage %q: %w", opts.Name, err)
	}

	solver := kinematics.NewSolver(opts.Teeth, opts.Speeds)
	orbit := kinematics.OrbitRadius(opts.Teeth, s.params.ToothPitch)
	trainID, err := entities.NewTrainEntity(s.entityManager, solver, opts.PlanetCount, orbit)
	if err != nil {
		return nil, fmt.Errorf("stage %q: %w", opts.Name, err)
	}
	s.trainID = trainID

	s.reconcileSystem = systems.NewPlanetReconcileSystem(s.entityManager, s.planetShape)
	s.kinematicsSystem = systems.NewKinematicsSystem(s.entityManager)

	s.Update(0)
	log.Printf("[Stage] %s: sun=%d planet=%d ring=%d, %d planets, pitch=%.3f",
		opts.Name, opts.Teeth.Sun, opts.Teeth.Planet, opts.Teeth.Ring, opts.PlanetCount, s.params.ToothPitch)
	return s, nil
}

// fillOrBackground 内齿圈轮廓使用背景色填充，外齿轮保持自身颜色
func fillOrBackground(sh *gear.Shape, background color.Color) color.Color {
	if sh.Spec.Internal {
		return background
	}
	return sh.OutlineFill
}

func (p Palette) withDefaults() Palette {
	def := DefaultPalette()
	if p.Sun == nil {
		p.Sun = def.Sun
	}
	if p.Planet == nil {
		p.Planet = def.Planet
	}
	if p.Ring == nil {
		p.Ring = def.Ring
	}
	if p.CarrierFill == nil {
		p.CarrierFill = def.CarrierFill
	}
	if p.CarrierStroke == nil {
		p.CarrierStroke = def.CarrierStroke
	}
	if p.Background == nil {
		p.Background = def.Background
	}
	return p
}

// Update 推进 elapsedMs 毫秒，返回是否产生了新画面
func (s *Stage) Update(elapsedMs float64) bool {
	s.reconcileSystem.Update()
	return s.kinematicsSystem.Update(elapsedMs)
}

func (s *Stage) train() *components.TrainComponent {
	train, _ := ecs.GetComponent[*components.TrainComponent](s.entityManager, s.trainID)
	return train
}

// SetPlanetCount 修改行星数量，下一次 Update 时生效
func (s *Stage) SetPlanetCount(n int) {
	if n < 0 {
		n = 0
	}
	s.train().TargetPlanets = n
	s.opts.PlanetCount = n
}

// PlanetCount 返回期望的行星数量
func (s *Stage) PlanetCount() int {
	return s.train().TargetPlanets
}

// SetSpeeds 修改角速度
func (s *Stage) SetSpeeds(speeds kinematics.Speeds) {
	s.train().Solver.SetSpeeds(speeds)
	s.opts.Speeds = speeds
}

// Speeds 返回当前角速度
func (s *Stage) Speeds() kinematics.Speeds {
	return s.train().Solver.Speeds()
}

// State 返回轮系状态
func (s *Stage) State() kinematics.State {
	return s.train().Solver.State()
}

// SetState 恢复轮系状态，下一次 Update 时重新求解
func (s *Stage) SetState(state kinematics.State) {
	train := s.train()
	train.Solver.SetState(state)
	train.Structural = true
}

// Frame 返回最近一次求解结果
func (s *Stage) Frame() kinematics.Frame {
	return s.train().Frame
}

// Teeth 返回齿数配置
func (s *Stage) Teeth() kinematics.Teeth {
	return s.opts.Teeth
}

// Name 返回舞台名称
func (s *Stage) Name() string {
	return s.opts.Name
}

// CanvasSize 返回画布边长
func (s *Stage) CanvasSize() float64 {
	return s.opts.CanvasSize
}

// Params 返回齿轮全局参数
func (s *Stage) Params() gear.Params {
	return s.params
}

// Options 返回当前参数（含最新的行星数量与速度）
func (s *Stage) Options() Options {
	return s.opts
}
