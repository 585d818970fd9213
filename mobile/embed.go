//go:build mobile

// embed.go - 移动端资源嵌入声明
//
// 此文件仅在使用 -tags mobile 构建时编译。构建前需要把
// data/*.yaml 与 assets/png 复制到本目录：
//
//	mkdir -p mobile/data mobile/assets && cp data/*.yaml mobile/data/ && cp -r assets/png mobile/assets/
//	go build -tags mobile ./mobile
package mobile

import "embed"

//go:embed all:assets
var assetsFS embed.FS

//go:embed data/gameplay.yaml data/resources.yaml
var dataFS embed.FS
