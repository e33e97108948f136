// Command check_data 检查嵌入的游戏数据：军队、精灵图集和计分脚本
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/decker502/lastfighter/data"
	"github.com/decker502/lastfighter/internal/scripting"
	"github.com/decker502/lastfighter/pkg/config"
	"github.com/decker502/lastfighter/pkg/embedded"
	"github.com/decker502/lastfighter/pkg/game"
	"github.com/decker502/lastfighter/pkg/types"
)

func main() {
	embedded.Init(data.FS)
	cfg := config.Default()
	failed := false

	army, err := config.LoadArmyConfig(cfg.Game.ArmyFile)
	if err != nil {
		fmt.Printf("❌ 军队配置: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ 军队配置: %d 个小队, %d 个波次\n", len(army.Troops), len(army.Waves))
	for w := range army.Waves {
		counts := map[string]int{}
		for _, tpl := range army.WaveTemplates(w) {
			if types.OpponentTypeFromString(tpl.Type) == types.OpponentUnknown {
				fmt.Printf("❌ 波次 %d: 未知敌机类型 %q\n", w, tpl.Type)
				failed = true
			}
			counts[tpl.Type]++
		}
		kinds := make([]string, 0, len(counts))
		for k := range counts {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)
		fmt.Printf("   波次 %d:", w)
		for _, k := range kinds {
			fmt.Printf(" %s×%d", k, counts[k])
		}
		fmt.Println()
	}

	atlas, err := config.LoadSpriteConfig(cfg.Game.SpritesFile)
	if err != nil {
		fmt.Printf("❌ 精灵图集: %v\n", err)
		os.Exit(1)
	}
	img := game.PaintAtlas(atlas)
	w, h := atlas.Size()
	fmt.Printf("✅ 精灵图集: %d 个精灵, %dx%d\n", len(atlas.Sprites), w, h)
	for _, def := range atlas.Sprites {
		if _, ok := game.DominantColor(img, atlas.MustRegion(def.Name)); !ok {
			fmt.Printf("❌ 精灵 %s 没有任何像素\n", def.Name)
			failed = true
		}
	}

	rules, err := scripting.LoadRules(cfg.Scripting.RulesFile, nil)
	if err != nil {
		fmt.Printf("❌ 计分脚本: %v\n", err)
		os.Exit(1)
	}
	defer rules.Close()
	fmt.Printf("✅ 计分脚本: boss 击杀 %d 分, 剩余 3 条命奖励 %d 分\n",
		rules.KillScore(types.OpponentBoss.String(), 5000), rules.LivesBonus(3))

	if failed {
		os.Exit(1)
	}
}
