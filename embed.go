// embed.go - 资源嵌入声明
// 必须放在项目根目录（与 data/ 同级）
// 因为 //go:embed 指令只能嵌入当前包目录及其子目录的文件
//
// 精灵图片不嵌入：运行时从 -assets 指定的目录读取，缺失时使用占位图形。
package main

import "embed"

//go:embed data/gameplay.yaml data/resources.yaml
var dataFS embed.FS
