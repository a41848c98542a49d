package dto

type Resp struct {
	Code int    `json:"code"`
	Msg  string `json:"msg,omitempty"`
	Data any    `json:"data,omitempty"`
}

func Success(code int, data any) Resp {
	return Resp{Code: code, Data: data}
}

func Error(code int, msg string) Resp {
	return Resp{Code: code, Msg: msg}
}
