// gearserve 行星齿轮 HTTP 预览服务
//
// 用法:
//
//	go run ./cmd/gearserve -addr :8080
//
// 路由:
//   - /                      预览页面，定时拉取 /train.svg
//   - /train.svg             查询参数 sun、planet、ring、t（毫秒）、planets
//   - /derive                查询参数给出两个齿数，返回补全后的 JSON
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

func main() {
	addr := flag.String("addr", ":8080", "监听地址")
	verbose := flag.Bool("verbose", false, "详细日志")
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           newHandler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	fmt.Printf("Serving planetary gears on http://localhost%s/\n", *addr)
	if err := srv.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "gearserve: %v\n", err)
		os.Exit(1)
	}
}
