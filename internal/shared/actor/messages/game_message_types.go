package messages

type RoomSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Host        string `json:"host"`
	Players     int    `json:"players"`
	MaxPlayers  int    `json:"maxPlayers"`
	Phase       string `json:"phase"`
	HasPassword bool   `json:"hasPassword"`
}

type TerritoryState struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	OwnerID    string `json:"ownerId,omitempty"`
	Units      int    `json:"units"`
	Production int    `json:"production"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
}

type PlayerState struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Color      string `json:"color"`
	Ready      bool   `json:"ready"`
	Money      int    `json:"money"`
	Military   int    `json:"military"`
	Production int    `json:"production"`
	Research   int    `json:"research"`
}

type RoomState struct {
	ID            string                    `json:"id"`
	Name          string                    `json:"name"`
	HostID        string                    `json:"hostId"`
	HostName      string                    `json:"hostName"`
	Phase         string                    `json:"phase"`
	Turn          int                       `json:"turn"`
	CurrentTurnID string                    `json:"currentTurnId"`
	MapSize       string                    `json:"mapSize"`
	MaxPlayers    int                       `json:"maxPlayers"`
	Territories   map[string]TerritoryState `json:"territories"`
	Players       map[string]PlayerState    `json:"players"`
	TurnOrder     []string                  `json:"turnOrder"`
}
