package config

// ViewSyncConfig 浏览量同步任务相关配置
type ViewSyncConfig struct {
	// BatchSize 是将 Redis 中的浏览量回写 MySQL 时，单次数据库 UPDATE 批次包含的博客数量。
	// 例如待同步 20 万条且 BatchSize 为 500 时，会拆分成 400 个小批次，
	// 每个批次通过一条 CASE WHEN 更新语句完成。
	BatchSize int `mapstructure:"batchSize" json:"batchSize" yaml:"batchSize"`

	// ConcurrencyLevel 是并发处理批次的 worker (goroutine) 数量，
	// 决定同时向数据库发起更新请求的并发连接数。
	ConcurrencyLevel int `mapstructure:"concurrencyLevel" json:"concurrencyLevel" yaml:"concurrencyLevel"`

	// ScanBatchSize 是用 SCAN 遍历浏览量计数 Key 时传给 COUNT 参数的建议值。
	// Redis 不保证精确返回该数量，仅作为每次迭代的提示。
	ScanBatchSize int64 `mapstructure:"scanBatchSize" json:"scanBatchSize" yaml:"scanBatchSize"`
}
