package dto

type CreateServerReq struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	MapSize  string `json:"mapSize"`
	Speed    string `json:"speed"`
	HostName string `json:"hostName"`
}

type CreateServerResp struct {
	RoomID string `json:"roomId"`
}

type JoinServerReq struct {
	RoomID      string `json:"roomId"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

type PlayerActionReq struct {
	Type        string `json:"type"`
	TerritoryID string `json:"territoryId"`
	TargetID    string `json:"targetId"`
	Duration    int    `json:"duration"`
	Terms       string `json:"terms"`
}

type ChatReq struct {
	Text string `json:"text"`
}
