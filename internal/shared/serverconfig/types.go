package serverconfig

type Config struct {
	GameServer GameServerConfig `yaml:"gameserver" mapstructure:"gameserver"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
	JWTSecret  string           `yaml:"jwt_secret" mapstructure:"jwt_secret"`
}

type GameServerConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
	// NeedSecret 打开后，ws 帧走“握手密钥 + AES + 压缩”的加密通道。
	NeedSecret bool `yaml:"need_secret" mapstructure:"need_secret"`
	// AskTimeoutMS 是接口层向 actor 发起请求的超时（毫秒）。
	AskTimeoutMS int `yaml:"ask_timeout_ms" mapstructure:"ask_timeout_ms"`
	// NodeID 用于消息 id 生成（snowflake 节点号）。
	NodeID int `yaml:"node_id" mapstructure:"node_id"`
}

type LogConfig struct {
	FileDir    string `yaml:"file_dir" mapstructure:"file_dir"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"` // days
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
	Level      string `yaml:"level" mapstructure:"level"` // debug/info/warn/error...
	Dev        bool   `yaml:"dev" mapstructure:"dev"`
}
