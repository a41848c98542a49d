package serverconfig

import (
	"os"
	"path/filepath"

	"Dominion/internal/shared/config"
)

const defaultConfigRelPath = "configs/conf.yml"

var Conf Config

// Load 从当前目录开始向上查找 configs/conf.yml 并加载。
// 这样无论从仓库根目录还是 cmd 子目录启动都能找到配置。
func Load() {
	curDir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	config.Load(findConfigUpward(curDir), &Conf)

	// 环境变量优先；若未设置则回填配置中的 jwt_secret，兼容本地开发场景。
	if os.Getenv("JWT_SECRET") == "" && Conf.JWTSecret != "" {
		_ = os.Setenv("JWT_SECRET", Conf.JWTSecret)
	}
}

func findConfigUpward(startDir string) string {
	dir := startDir
	for {
		candidate := filepath.Join(dir, defaultConfigRelPath)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			panic("config file not exist, searched configs/conf.yml from: " + startDir)
		}
		dir = parent
	}
}
