// gearframes 无窗口逐帧导出工具
//
// 用法:
//
//	go run ./cmd/gearframes -config data/stages.yaml -frames 60 -step 16 -out frames
//
// 以固定步长推进舞台，每帧输出 frame_XXX.svg 与 frame_XXX.png。
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/decker502/planetary/pkg/anim"
	"github.com/decker502/planetary/pkg/config"
	"github.com/decker502/planetary/pkg/render"
	"github.com/decker502/planetary/pkg/scene"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径（为空时使用默认舞台）")
	stageIndex := flag.Int("stage", 0, "导出的舞台序号")
	frames := flag.Int("frames", 60, "导出帧数")
	stepMs := flag.Float64("step", 1000.0/60.0, "每帧推进的毫秒数")
	outDir := flag.String("out", "frames", "输出目录")
	noPNG := flag.Bool("svg-only", false, "只输出 SVG")
	verbose := flag.Bool("verbose", false, "详细日志")
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	if err := run(*configPath, *stageIndex, *frames, *stepMs, *outDir, !*noPNG); err != nil {
		fmt.Fprintf(os.Stderr, "gearframes: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, stageIndex, frames int, stepMs float64, outDir string, png bool) error {
	cfg := config.DefaultAppConfig()
	if configPath != "" {
		loaded, err := config.LoadAppConfig(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if stageIndex < 0 || stageIndex >= len(cfg.Stages) {
		return fmt.Errorf("stage %d out of range (config has %d stages)", stageIndex, len(cfg.Stages))
	}
	if frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", frames)
	}
	if stepMs < 0 {
		return fmt.Errorf("step must not be negative, got %f", stepMs)
	}

	stage, err := scene.NewStageFromConfig(cfg.Stages[stageIndex])
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	// 第 0 帧为初始状态，之后每个 tick 由固定步长时钟推进 stepMs
	if err := writeFrame(frameBase(outDir, 0), stage, png); err != nil {
		return err
	}
	clock := newStepClock(time.Duration(stepMs * float64(time.Millisecond)))
	var frameErr error
	driver := anim.NewDriver(clock, func(elapsedMs float64) {
		if frameErr != nil {
			return
		}
		stage.Update(elapsedMs)
		frameErr = writeFrame(frameBase(outDir, int(clock.ticks)), stage, png)
	})
	driver.Start()
	for i := 1; i < frames && frameErr == nil; i++ {
		clock.Advance()
		driver.Tick()
	}
	driver.Stop()
	if frameErr != nil {
		return frameErr
	}

	fmt.Printf("✓ %d frames of %q written to %s\n", frames, stage.Name(), outDir)
	return nil
}

// stepClock 每次 Advance 前进固定步长的时钟
type stepClock struct {
	now   time.Time
	step  time.Duration
	ticks uint64
}

func newStepClock(step time.Duration) *stepClock {
	return &stepClock{now: time.Unix(0, 0), step: step}
}

func (c *stepClock) Now() time.Time { return c.now }

func (c *stepClock) Advance() {
	c.now = c.now.Add(c.step)
	c.ticks++
}

func frameBase(outDir string, i int) string {
	return filepath.Join(outDir, fmt.Sprintf("frame_%03d", i))
}

func writeFrame(base string, stage *scene.Stage, png bool) error {
	snap := stage.Snapshot()

	f, err := os.Create(base + ".svg")
	if err != nil {
		return err
	}
	if err := render.WriteSVG(f, snap); err != nil {
		f.Close()
		return fmt.Errorf("%s.svg: %w", base, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	if png {
		return render.SavePNG(base+".png", snap)
	}
	return nil
}
