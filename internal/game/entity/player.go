package entity

// Resources 是一个玩家的四种资源。除回合结算外不会自动变动。
type Resources struct {
	Money      int `json:"money"`
	Military   int `json:"military"`
	Production int `json:"production"`
	Research   int `json:"research"`
}

// Player 的 ID 就是连接的会话 id：连接断开，玩家随之离场。
type Player struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Ready     bool      `json:"ready"`
	Resources Resources `json:"resources"`
}

// 玩家颜色按加入顺序轮转分配，只做展示。
var ColorPalette = []string{
	"#e6194b", "#3cb44b", "#4363d8", "#f58231",
	"#911eb4", "#46f0f0", "#f032e6", "#fabebe",
}

func ColorForIndex(i int) string {
	if i < 0 {
		i = 0
	}
	return ColorPalette[i%len(ColorPalette)]
}
