// Package mapgen 随机生成一张房间地图。
package mapgen

import (
	"fmt"
	"math/rand"

	"Dominion/internal/game/entity"
	"Dominion/internal/shared/gameconfig/rules"
)

const (
	SizeSmall  = "small"
	SizeMedium = "medium"
	SizeLarge  = "large"
)

// Count 把地图规格映射到领土数量，未知规格按 medium 处理。
func Count(size string, r rules.Rules) int {
	switch size {
	case SizeSmall:
		return r.MapSizeSmall
	case SizeLarge:
		return r.MapSizeLarge
	default:
		return r.MapSizeMedium
	}
}

// Generate 生成 N 块无主领土，产量在 [ProductionMin, ProductionMax] 内均匀取值，
// 坐标均匀散布在画布上。返回 id→领土 的表与生成顺序（T-1..T-N）。
func Generate(size string, rng *rand.Rand, r rules.Rules) (map[string]*entity.Territory, []string) {
	n := Count(size, r)
	terrs := make(map[string]*entity.Territory, n)
	order := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		id := fmt.Sprintf("T-%d", i)
		terrs[id] = &entity.Territory{
			ID:         id,
			Name:       fmt.Sprintf("Territory %d", i),
			Production: r.ProductionMin + rng.Intn(r.ProductionMax-r.ProductionMin+1),
			X:          rng.Intn(r.CanvasWidth),
			Y:          rng.Intn(r.CanvasHeight),
		}
		order = append(order, id)
	}
	return terrs, order
}
