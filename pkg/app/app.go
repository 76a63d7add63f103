// Package app 提供桌面应用的核心包装器
//
// 该包把窗口循环、键盘交互与舞台管理组合在一起，main 包只负责解析参数。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/planetary/pkg/anim"
	"github.com/decker502/planetary/pkg/config"
	"github.com/decker502/planetary/pkg/game"
	"github.com/decker502/planetary/pkg/render"
)

// backgroundColor 舞台之间的留白
var backgroundColor = color.RGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xff}

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// AppConfig 已加载的应用配置，为 nil 时使用默认配置
	AppConfig *config.AppConfig
	// RestorePresets 启动时优先恢复已保存的预设
	RestorePresets bool
	// ExportDir 快照导出目录，为空时使用当前目录
	ExportDir string
	// Store 预设存储，为 nil 时打开用户数据目录
	Store *game.PresetStore
}

// App 应用包装器，实现 ebiten.Game 接口
type App struct {
	appConfig    *config.AppConfig
	stageManager *game.StageManager
	presetStore  *game.PresetStore
	driver       *anim.Driver
	exportDir    string
	exports      int
	verbose      bool
	status       string
}

// NewApp 创建并初始化应用
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	appConfig := cfg.AppConfig
	if appConfig == nil {
		appConfig = config.DefaultAppConfig()
	}

	store := cfg.Store
	if store == nil {
		store = game.NewPresetStore(game.OpenGdata())
	}

	a := &App{
		appConfig:    appConfig,
		stageManager: game.NewStageManager(),
		presetStore:  store,
		exportDir:    cfg.ExportDir,
		verbose:      cfg.Verbose,
	}

	if cfg.RestorePresets {
		presets, err := store.Load()
		if err != nil {
			log.Printf("[App] Warning: failed to load presets: %v", err)
		}
		if n := a.stageManager.Restore(presets); n > 0 {
			log.Printf("[App] Restored %d stages from presets", n)
		}
	}
	if a.stageManager.Len() == 0 {
		a.stageManager.AddAll(appConfig.Stages)
	}
	if a.stageManager.Len() == 0 {
		return nil, fmt.Errorf("no valid stage in configuration")
	}

	a.driver = anim.NewDriver(nil, a.stageManager.Update)
	a.driver.Start()
	return a, nil
}

// Update 处理输入并推进动画
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	a.handleInput()
	a.driver.Tick()
	return nil
}

func (a *App) handleInput() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual), inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd):
		a.stageManager.AdjustPlanets(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus), inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract):
		a.stageManager.AdjustPlanets(-1)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		a.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		if _, err := a.stageManager.Add(config.DefaultStageConfig()); err != nil {
			a.setStatus("add stage failed: %v", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && a.stageManager.Len() > 1 {
		a.stageManager.RemoveLast()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		if svgPath, pngPath, err := a.Export(); err != nil {
			a.setStatus("export failed: %v", err)
		} else {
			a.setStatus("exported %s, %s", svgPath, pngPath)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if err := a.SavePresets(); err != nil {
			a.setStatus("save failed: %v", err)
		} else {
			a.setStatus("saved %d presets", a.stageManager.Len())
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
}

func (a *App) setStatus(format string, args ...any) {
	a.status = fmt.Sprintf(format, args...)
	log.Printf("[App] %s", a.status)
}

// TogglePause 暂停或继续动画
func (a *App) TogglePause() {
	if a.driver.State() == anim.Running {
		a.driver.Stop()
	} else {
		a.driver.Start()
	}
	log.Printf("[App] Driver %s", a.driver.State())
}

// Export 导出第一个舞台当前帧的 SVG 与 PNG
func (a *App) Export() (svgPath, pngPath string, err error) {
	entries := a.stageManager.Entries()
	if len(entries) == 0 {
		return "", "", fmt.Errorf("no stage to export")
	}
	entry := entries[0]
	snap := entry.Stage.Snapshot()

	a.exports++
	base := filepath.Join(a.exportDir, fmt.Sprintf("planetary-%s-%03d", entry.ID.String()[:8], a.exports))
	svgPath, pngPath = base+".svg", base+".png"

	f, err := os.Create(svgPath)
	if err != nil {
		return "", "", fmt.Errorf("create %s: %w", svgPath, err)
	}
	if err := render.WriteSVG(f, snap); err != nil {
		f.Close()
		return "", "", err
	}
	if err := f.Close(); err != nil {
		return "", "", fmt.Errorf("close %s: %w", svgPath, err)
	}

	if err := render.SavePNG(pngPath, snap); err != nil {
		return "", "", err
	}
	return svgPath, pngPath, nil
}

// SavePresets 保存所有舞台为预设
func (a *App) SavePresets() error {
	return a.presetStore.Save(a.stageManager.Presets())
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	a.stageManager.Draw(screen)

	msg := fmt.Sprintf("stages: %d  %s  [+/-] planets  [space] pause  [N] add  [backspace] remove  [E] export  [S] save",
		a.stageManager.Len(), a.driver.State())
	if a.verbose {
		msg += fmt.Sprintf("\nTPS: %0.1f  FPS: %0.1f  frames: %d", ebiten.ActualTPS(), ebiten.ActualFPS(), a.driver.Frames())
	}
	if a.status != "" {
		msg += "\n" + a.status
	}
	ebitenutil.DebugPrint(screen, msg)
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.appConfig.Window.Width, a.appConfig.Window.Height
}

// StageManager 返回舞台管理器
func (a *App) StageManager() *game.StageManager {
	return a.stageManager
}

// Driver 返回动画驱动器
func (a *App) Driver() *anim.Driver {
	return a.driver
}
