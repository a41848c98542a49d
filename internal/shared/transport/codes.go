package transport

// 协议层业务码：0 成功；1~499 业务拒绝；>=500 技术错误。
// 业务拒绝的细分原因放在 RespBody.Msg 里，这里只做粗粒度分类。
const (
	OK             = 0
	BizRejected    = 1
	InvalidParam   = 400
	SessionInvalid = 401
	SystemError    = 500
)

// BizCode 表示业务码的强类型封装，用于在日志上下文中减少误传风险。
type BizCode int
