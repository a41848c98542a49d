package rules

import (
	"path/filepath"
	"runtime"

	"Dominion/internal/shared/config"
)

// Rules 是一局游戏用到的全部数值（费用、收益、地图参数）。
// 数值放 JSON 里是为了调平衡时不用改代码。
type Rules struct {
	ClaimCost     int `json:"claim_cost" mapstructure:"claim_cost"`
	UnitCost      int `json:"unit_cost" mapstructure:"unit_cost"`
	StartGarrison int `json:"start_garrison" mapstructure:"start_garrison"`
	UpkeepPerLand int `json:"upkeep_per_land" mapstructure:"upkeep_per_land"`
	StartMoney    int `json:"start_money" mapstructure:"start_money"`
	ProductionMin int `json:"production_min" mapstructure:"production_min"`
	ProductionMax int `json:"production_max" mapstructure:"production_max"`
	CanvasWidth   int `json:"canvas_width" mapstructure:"canvas_width"`
	CanvasHeight  int `json:"canvas_height" mapstructure:"canvas_height"`
	MaxPlayers    int `json:"max_players" mapstructure:"max_players"`
	MapSizeSmall  int `json:"map_size_small" mapstructure:"map_size_small"`
	MapSizeMedium int `json:"map_size_medium" mapstructure:"map_size_medium"`
	MapSizeLarge  int `json:"map_size_large" mapstructure:"map_size_large"`
}

var Conf = Defaults()

// Defaults 返回内置数值，加载失败或测试场景直接可用。
func Defaults() Rules {
	return Rules{
		ClaimCost:     500,
		UnitCost:      250,
		StartGarrison: 1,
		UpkeepPerLand: 10,
		StartMoney:    5000,
		ProductionMin: 5,
		ProductionMax: 25,
		CanvasWidth:   1600,
		CanvasHeight:  900,
		MaxPlayers:    8,
		MapSizeSmall:  50,
		MapSizeMedium: 100,
		MapSizeLarge:  150,
	}
}

// Load 读取包旁边的 rules.json 覆盖默认数值。
func Load() {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		panic("load rules config failed: runtime.Caller(0) error")
	}
	configPath := filepath.Join(filepath.Dir(file), "rules.json")
	config.Load(configPath, &Conf)
}
