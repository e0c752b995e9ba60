package config

// EmailConfig 邮件发送配置 (Resend)
type EmailConfig struct {
	APIKey string `mapstructure:"api_key" json:"api_key" yaml:"api_key"`
	// From 发件人地址，例如 "Blog Service <no-reply@example.com>"
	From string `mapstructure:"from" json:"from" yaml:"from"`
}
