package entity

// Territory 是一块可占领的地图单元。
// 归属与驻军只会被行动处理器修改；产值在生成后不变。
type Territory struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	OwnerID    string `json:"ownerId"` // 空串表示无主
	Units      int    `json:"units"`
	Production int    `json:"production"`
	X          int    `json:"x"` // 仅用于前端展示，不参与玩法
	Y          int    `json:"y"`
}

func (t *Territory) Owned() bool {
	return t.OwnerID != ""
}
