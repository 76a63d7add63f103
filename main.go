package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/planetary/pkg/app"
	"github.com/decker502/planetary/pkg/config"
	"github.com/decker502/planetary/pkg/embedded"
	"github.com/decker502/planetary/pkg/kinematics"
)

const defaultConfigPath = "data/stages.yaml"

var (
	configPath  = flag.String("config", "", "配置文件路径（为空时使用内置配置）")
	verbose     = flag.Bool("verbose", false, "详细日志")
	restore     = flag.Bool("restore", false, "启动时恢复已保存的预设")
	exportDir   = flag.String("export-dir", ".", "快照导出目录")
	sunTeeth    = flag.String("sun", "", "太阳轮齿数")
	planetTeeth = flag.String("planet", "", "行星轮齿数")
	ringTeeth   = flag.String("ring", "", "内齿圈齿数")
)

func main() {
	flag.Parse()
	embedded.Init(dataFS)

	appConfig, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "配置错误: %v\n", err)
		os.Exit(1)
	}

	a, err := app.NewApp(app.Config{
		Verbose:        *verbose,
		AppConfig:      appConfig,
		RestorePresets: *restore,
		ExportDir:      *exportDir,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(appConfig.Window.Width, appConfig.Window.Height)
	ebiten.SetWindowTitle(appConfig.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(a); err != nil {
		fmt.Fprintf(os.Stderr, "运行失败: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig 读取配置文件或内置配置，再应用命令行齿数覆盖
func loadConfig() (*config.AppConfig, error) {
	var (
		cfg *config.AppConfig
		err error
	)
	switch {
	case *configPath != "":
		cfg, err = config.LoadAppConfig(*configPath)
	case !embedded.Exists(defaultConfigPath):
		cfg = config.DefaultAppConfig()
	default:
		var data []byte
		data, err = embedded.ReadFile(defaultConfigPath)
		if err == nil {
			cfg, err = config.ParseAppConfig(data)
		}
	}
	if err != nil {
		return nil, err
	}

	override, ok, err := teethFromFlags()
	if err != nil {
		return nil, err
	}
	if ok {
		sc := config.DefaultStageConfig()
		sc.Name = "command line"
		sc.Teeth = override
		sc.Derive = ""
		if err := sc.Normalize(); err != nil {
			return nil, err
		}
		cfg.Stages = []config.StageConfig{sc}
	}
	return cfg, nil
}

// teethFromFlags 解析 --sun/--planet/--ring；给出两个时推导第三个
func teethFromFlags() (config.TeethConfig, bool, error) {
	var teeth config.TeethConfig
	given := 0
	for _, f := range []struct {
		name  string
		value string
		out   *int
	}{
		{"sun", *sunTeeth, &teeth.Sun},
		{"planet", *planetTeeth, &teeth.Planet},
		{"ring", *ringTeeth, &teeth.Ring},
	} {
		if f.value == "" {
			continue
		}
		n, err := kinematics.ParseToothCount(f.value)
		if err != nil {
			return teeth, false, fmt.Errorf("--%s: %w", f.name, err)
		}
		*f.out = n
		given++
	}
	if given == 0 {
		return teeth, false, nil
	}
	if given == 1 {
		return teeth, false, fmt.Errorf("at least two of --sun, --planet, --ring are required")
	}
	return teeth, true, nil
}
