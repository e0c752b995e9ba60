package config

// JWTConfig 登录令牌签发配置
// - 用户令牌与管理员令牌共用同一签名密钥，claims 中的 type 字段区分身份空间。
type JWTConfig struct {
	Secret string `mapstructure:"secret" json:"secret" yaml:"secret"`
}
