package config

// 配置文件缺省时使用的值
const (
	DefaultOutDir    = "out"
	DefaultLogLevel  = "error"
	DefaultModel     = "gemini-2.5-flash"
	DefaultAPIKeyEnv = "GEMINI_API_KEY"
	DefaultKeyFile   = "secret.key"
)

// Settings 对应 ini 配置文件的内容
type Settings struct {
	Default DefaultSection
	AI      AISection
	Secret  SecretSection

	// 实际加载的文件,使用内置默认值时为空
	Path string
}

// [default]
type DefaultSection struct {
	OutDir   string
	LogLevel string
}

// [ai]
type AISection struct {
	Model     string
	APIKeyEnv string
}

// [secret]
type SecretSection struct {
	KeyFile string
}

// Defaults 返回全部使用默认值的配置
func Defaults() *Settings {
	return &Settings{
		Default: DefaultSection{OutDir: DefaultOutDir, LogLevel: DefaultLogLevel},
		AI:      AISection{Model: DefaultModel, APIKeyEnv: DefaultAPIKeyEnv},
		Secret:  SecretSection{KeyFile: defaultKeyFile()},
	}
}
