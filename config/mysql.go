package config

// SourceConfig 描述单个数据库节点（写库或读库）。
// - 连接池字段为指针: 置空时回退到 MySQLConfig 的共享默认值。
type SourceConfig struct {
	DSN             string `mapstructure:"dsn" json:"dsn" yaml:"dsn"`
	MaxIdleConns    *int   `mapstructure:"max_idle_conns,omitempty" json:"maxIdleConns,omitempty" yaml:"max_idle_conns,omitempty"`
	MaxOpenConns    *int   `mapstructure:"max_open_conns,omitempty" json:"maxOpenConns,omitempty" yaml:"max_open_conns,omitempty"`
	ConnMaxLifetime *int   `mapstructure:"conn_max_lifetime,omitempty" json:"connMaxLifetime,omitempty" yaml:"conn_max_lifetime,omitempty"` // 秒
}

// MySQLConfig 数据库连接配置。
// - Read 为空时不启用读写分离，所有查询走写库。
type MySQLConfig struct {
	Write SourceConfig   `mapstructure:"write" json:"write" yaml:"write"`
	Read  []SourceConfig `mapstructure:"read" json:"read" yaml:"read"`

	// 共享连接池默认值，节点级配置未指定时生效
	SharedMaxIdleConns    int `mapstructure:"max_idle_conns" json:"maxIdleConns" yaml:"max_idle_conns"`
	SharedMaxOpenConns    int `mapstructure:"max_open_conns" json:"maxOpenConns" yaml:"max_open_conns"`
	SharedConnMaxLifetime int `mapstructure:"conn_max_lifetime" json:"connMaxLifetime" yaml:"conn_max_lifetime"` // 秒
}
