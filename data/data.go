// Package data 嵌入游戏数据文件（军队、精灵图集、计分规则）
//
// 两个前端都通过 embedded.Init(data.FS) 注册，
// 之后以 "data/" 开头的路径从这里读取。
package data

import "embed"

//go:embed army.yaml sprites.yaml rules
var FS embed.FS
