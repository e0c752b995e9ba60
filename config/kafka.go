package config

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers" json:"brokers" yaml:"brokers"`
	Topics  Topics   `mapstructure:"topics" json:"topics" yaml:"topics"`
}

type Topics struct {
	BlogCreated      string `mapstructure:"blogCreated" yaml:"blogCreated"`           //  博客创建事件主题（供搜索/推荐服务消费）
	BlogDeleted      string `mapstructure:"blogDeleted" yaml:"blogDeleted"`           //  博客删除事件主题
	ModerationAction string `mapstructure:"moderationAction" yaml:"moderationAction"` //  管理操作审计事件主题
}
