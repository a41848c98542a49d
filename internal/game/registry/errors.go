package registry

import "Dominion/modules/kit/errx"

// 面向客户端的文案固定为英文，前端直接展示。
var (
	ErrRoomNotFound  = errx.NewBiz("ROOM_NOT_FOUND", "Server not found.")
	ErrWrongPassword = errx.NewBiz("WRONG_PASSWORD", "Incorrect password.")
	ErrRoomFull      = errx.NewBiz("ROOM_FULL", "Server is full.")
	ErrAlreadyInRoom = errx.NewBiz("ALREADY_IN_ROOM", "Already in a server.")
)
