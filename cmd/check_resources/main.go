// check_resources 检查精灵槽位表中每个槽位的加载状态
//
// 缺失的精灵不会影响模拟，此工具用于在打包前确认外观资源是否齐全。
//
// 用法:
//
//	go run ./cmd/check_resources -root . -config data/resources.yaml
package main

import (
	"crypto/md5"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gonewx/sleighdash/pkg/embedded"
	"github.com/gonewx/sleighdash/pkg/game"
)

var (
	root       = flag.String("root", ".", "资源根目录（包含 assets/ 与 data/）")
	configPath = flag.String("config", "data/resources.yaml", "精灵槽位表")
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
)

func main() {
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	dir := os.DirFS(*root)
	embedded.Init(dir, dir)

	rm := game.NewResourceManager()
	if err := rm.LoadResourceConfig(*configPath); err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
	loaded, err := rm.LoadAll()
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	fmt.Println("=== Sprite slots ===")
	ids := rm.SlotIDs()
	for _, id := range ids {
		src := rm.Source(id)
		if src == nil {
			fmt.Printf("  ⚠️  %-10s %s (placeholder)\n", id, rm.Status(id))
			continue
		}
		b := src.Bounds()
		fmt.Printf("  ✅ %-10s %s %dx%d %s\n", id, rm.Status(id), b.Dx(), b.Dy(), digest(rm.Path(id)))
	}

	pools := rm.BuildSpritePools()
	fmt.Println()
	fmt.Printf("loaded:         %d/%d\n", loaded, len(ids))
	fmt.Printf("gift variants:  %v\n", pools.Good)
	fmt.Printf("mimic variants: %v\n", pools.Bad)
}

// digest 返回文件 MD5 前 8 位，读取失败时返回空字符串
func digest(path string) string {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("md5:%x", md5.Sum(data))[:12]
}
