//go:build mobile

// Package mobile ebitenmobile 绑定入口
//
// 仅在 -tags mobile 构建时编译：
//
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.planetary -o build/android/planetary.aar ./mobile
//	ebitenmobile bind -target ios -tags mobile -o build/ios/Planetary.xcframework ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/planetary/pkg/app"
	"github.com/decker502/planetary/pkg/config"
)

func init() {
	// 移动端不读取配置文件，使用默认舞台并恢复上次保存的预设
	gearApp, err := app.NewApp(app.Config{
		AppConfig:      config.DefaultAppConfig(),
		RestorePresets: true,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}
	mobile.SetGame(gearApp)
}

// Dummy 空导出函数，确保包被 ebitenmobile 识别
func Dummy() {}
