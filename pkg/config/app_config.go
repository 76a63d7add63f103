package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/decker502/planetary/pkg/kinematics"
)

const (
	// DefaultCanvasSize 默认画布边长（像素）
	DefaultCanvasSize = 600.0
	// MaxPlanetCount 单个舞台允许的最大行星数量
	MaxPlanetCount = 64

	DefaultWindowWidth  = 640
	DefaultWindowHeight = 640
	DefaultWindowTitle  = "Planetary Gears"
)

// 默认角速度（与默认齿数 20/16/52 搭配）
const (
	DefaultSunSpeed     = 8.0
	DefaultCarrierSpeed = 4.0
	DefaultRingSpeed    = 2.0
)

// AppConfig 应用配置文件（YAML）
type AppConfig struct {
	Window WindowConfig  `yaml:"window"`
	Stages []StageConfig `yaml:"stages"`
}

// WindowConfig 窗口配置
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// TeethConfig 齿数；Derive 指定的成员可以省略
type TeethConfig struct {
	Sun    int `yaml:"sun"`
	Planet int `yaml:"planet"`
	Ring   int `yaml:"ring"`
}

// SpeedsConfig 角速度；省略的分量使用默认值，显式写 0 表示静止
type SpeedsConfig struct {
	Sun     *float64 `yaml:"sun"`
	Carrier *float64 `yaml:"carrier"`
	Ring    *float64 `yaml:"ring"`
}

// StageConfig 单个舞台配置
type StageConfig struct {
	Name          string       `yaml:"name"`
	Teeth         TeethConfig  `yaml:"teeth"`
	Derive        string       `yaml:"derive"` // 由另外两个齿数推导的成员：sun / planet / ring
	Speeds        SpeedsConfig `yaml:"speeds"`
	PlanetCount   *int         `yaml:"planetCount"`
	CanvasSize    float64      `yaml:"canvasSize"`
	AllowMismatch bool         `yaml:"allowMismatch"`
	Colors        ColorsConfig `yaml:"colors"`
}

// DefaultStageConfig 返回默认舞台：20/16/52，速度 8/4/2，8 个行星
func DefaultStageConfig() StageConfig {
	sc := StageConfig{
		Name:  "default",
		Teeth: TeethConfig{Sun: 20, Planet: 16, Ring: 52},
	}
	sc.applyDefaults()
	return sc
}

// DefaultAppConfig 返回只包含一个默认舞台的配置
func DefaultAppConfig() *AppConfig {
	cfg := &AppConfig{Stages: []StageConfig{DefaultStageConfig()}}
	cfg.applyDefaults()
	return cfg
}

// LoadAppConfig 从 YAML 文件加载应用配置
//
// 参数:
//   - filepath: 配置文件路径
//
// 返回:
//   - *AppConfig: 已填充默认值、完成推导与校验的配置
//   - error: 读取、解析或校验失败时返回错误
func LoadAppConfig(filepath string) (*AppConfig, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", filepath, err)
	}
	cfg, err := ParseAppConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid config in %s: %w", filepath, err)
	}
	return cfg, nil
}

// ParseAppConfig 解析 YAML 内容
func ParseAppConfig(data []byte) (*AppConfig, error) {
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	if len(cfg.Stages) == 0 {
		cfg.Stages = []StageConfig{DefaultStageConfig()}
	}
	cfg.applyDefaults()

	for i := range cfg.Stages {
		if err := cfg.Stages[i].Normalize(); err != nil {
			return nil, fmt.Errorf("stage %d (%s): %w", i, cfg.Stages[i].Name, err)
		}
	}
	return &cfg, nil
}

func (cfg *AppConfig) applyDefaults() {
	if cfg.Window.Width <= 0 {
		cfg.Window.Width = DefaultWindowWidth
	}
	if cfg.Window.Height <= 0 {
		cfg.Window.Height = DefaultWindowHeight
	}
	if cfg.Window.Title == "" {
		cfg.Window.Title = DefaultWindowTitle
	}
	for i := range cfg.Stages {
		if cfg.Stages[i].Name == "" {
			cfg.Stages[i].Name = fmt.Sprintf("stage-%d", i+1)
		}
	}
}

// Normalize 填充默认值、推导缺失齿数并校验
// 多次调用结果相同
func (sc *StageConfig) Normalize() error {
	sc.applyDefaults()
	if err := sc.derive(); err != nil {
		return err
	}
	return sc.validate()
}

func (sc *StageConfig) applyDefaults() {
	if sc.Name == "" {
		sc.Name = "stage"
	}
	if sc.Speeds.Sun == nil {
		sc.Speeds.Sun = float64Ptr(DefaultSunSpeed)
	}
	if sc.Speeds.Carrier == nil {
		sc.Speeds.Carrier = float64Ptr(DefaultCarrierSpeed)
	}
	if sc.Speeds.Ring == nil {
		sc.Speeds.Ring = float64Ptr(DefaultRingSpeed)
	}
	if sc.PlanetCount == nil {
		n := kinematics.DefaultPlanetCount
		sc.PlanetCount = &n
	}
	if sc.CanvasSize <= 0 {
		sc.CanvasSize = DefaultCanvasSize
	}
	sc.Colors.applyDefaults()
}

// derive 推导缺失的齿数
// 未指定 Derive 时，若恰好缺一个齿数则自动推导该成员
func (sc *StageConfig) derive() error {
	member, err := kinematics.ParseMember(sc.Derive)
	if err != nil {
		return fmt.Errorf("derive: %w", err)
	}
	if member == kinematics.MemberNone {
		member = missingMember(sc.Teeth)
	}
	if member == kinematics.MemberNone {
		return nil
	}

	teeth, err := kinematics.Derive(sc.Teeth.value(), member)
	if err != nil {
		return fmt.Errorf("derive %s: %w", member, err)
	}
	sc.Teeth = TeethConfig{Sun: teeth.Sun, Planet: teeth.Planet, Ring: teeth.Ring}
	sc.Derive = member.String()
	return nil
}

func missingMember(t TeethConfig) kinematics.Member {
	missing := kinematics.MemberNone
	count := 0
	if t.Sun == 0 {
		missing, count = kinematics.MemberSun, count+1
	}
	if t.Planet == 0 {
		missing, count = kinematics.MemberPlanet, count+1
	}
	if t.Ring == 0 {
		missing, count = kinematics.MemberRing, count+1
	}
	if count != 1 {
		return kinematics.MemberNone
	}
	return missing
}

func (sc *StageConfig) validate() error {
	if err := kinematics.ValidateTrain(sc.Teeth.value(), sc.AllowMismatch); err != nil {
		return fmt.Errorf("teeth: %w", err)
	}
	if n := *sc.PlanetCount; n < 0 || n > MaxPlanetCount {
		return fmt.Errorf("planetCount must be between 0 and %d, got %d", MaxPlanetCount, n)
	}
	if _, err := sc.Colors.Resolve(); err != nil {
		return err
	}
	return nil
}

func (t TeethConfig) value() kinematics.Teeth {
	return kinematics.Teeth{Sun: t.Sun, Planet: t.Planet, Ring: t.Ring}
}

// TeethValue 返回齿数
func (sc *StageConfig) TeethValue() kinematics.Teeth {
	return sc.Teeth.value()
}

// SpeedsValue 返回角速度，未设置的分量为默认值
func (sc *StageConfig) SpeedsValue() kinematics.Speeds {
	return kinematics.Speeds{
		Sun:     float64Or(sc.Speeds.Sun, DefaultSunSpeed),
		Carrier: float64Or(sc.Speeds.Carrier, DefaultCarrierSpeed),
		Ring:    float64Or(sc.Speeds.Ring, DefaultRingSpeed),
	}
}

// SetSpeeds 以具体数值覆盖角速度
func (sc *StageConfig) SetSpeeds(s kinematics.Speeds) {
	sc.Speeds = SpeedsConfig{
		Sun:     float64Ptr(s.Sun),
		Carrier: float64Ptr(s.Carrier),
		Ring:    float64Ptr(s.Ring),
	}
}

// Planets 返回行星数量，未设置时为默认值
func (sc *StageConfig) Planets() int {
	if sc.PlanetCount == nil {
		return kinematics.DefaultPlanetCount
	}
	return *sc.PlanetCount
}

// SetPlanets 设置行星数量
func (sc *StageConfig) SetPlanets(n int) {
	sc.PlanetCount = &n
}

func float64Ptr(v float64) *float64 {
	return &v
}

func float64Or(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}
