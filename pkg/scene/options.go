package scene

import (
	"fmt"

	"github.com/decker502/planetary/pkg/config"
)

// OptionsFromConfig 将舞台配置转换为构建参数
// 配置会先经过 Normalize（填充默认值、推导、校验）
func OptionsFromConfig(sc config.StageConfig) (Options, error) {
	if err := sc.Normalize(); err != nil {
		return Options{}, fmt.Errorf("stage %q: %w", sc.Name, err)
	}
	colors, err := sc.Colors.Resolve()
	if err != nil {
		return Options{}, fmt.Errorf("stage %q: %w", sc.Name, err)
	}

	return Options{
		Name:          sc.Name,
		Teeth:         sc.TeethValue(),
		Speeds:        sc.SpeedsValue(),
		PlanetCount:   sc.Planets(),
		CanvasSize:    sc.CanvasSize,
		AllowMismatch: sc.AllowMismatch,
		Palette: Palette{
			Sun:           colors.Sun,
			Planet:        colors.Planet,
			Ring:          colors.Ring,
			CarrierFill:   colors.Carrier,
			CarrierStroke: colors.CarrierStroke,
			Background:    colors.Background,
		},
	}, nil
}

// NewStageFromConfig 由舞台配置直接构建舞台
func NewStageFromConfig(sc config.StageConfig) (*Stage, error) {
	opts, err := OptionsFromConfig(sc)
	if err != nil {
		return nil, err
	}
	return NewStage(opts)
}

// Config 返回与舞台当前参数对应的配置，用于保存预设
func (s *Stage) Config() config.StageConfig {
	sc := config.StageConfig{
		Name:          s.opts.Name,
		Teeth:         config.TeethConfig{Sun: s.opts.Teeth.Sun, Planet: s.opts.Teeth.Planet, Ring: s.opts.Teeth.Ring},
		CanvasSize:    s.opts.CanvasSize,
		AllowMismatch: s.opts.AllowMismatch,
		Colors: config.ColorsConfig{
			Sun:           config.FormatColor(s.opts.Palette.Sun),
			Planet:        config.FormatColor(s.opts.Palette.Planet),
			Ring:          config.FormatColor(s.opts.Palette.Ring),
			Carrier:       config.FormatColor(s.opts.Palette.CarrierFill),
			CarrierStroke: config.FormatColor(s.opts.Palette.CarrierStroke),
			Background:    config.FormatColor(s.opts.Palette.Background),
		},
	}
	sc.SetSpeeds(s.Speeds())
	sc.SetPlanets(s.PlanetCount())
	return sc
}
