package config

// Config 配置主体
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Mongo       MongoConfig       `mapstructure:"mongo"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Leaderboard LeaderboardConfig `mapstructure:"leaderboard"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// MongoConfig MongoDB配置
type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// LeaderboardConfig 排行榜生成配置
type LeaderboardConfig struct {
	GenerateTimeout  int `mapstructure:"generate_timeout"`  // 生成超时时间（秒）
	AggregateWorkers int `mapstructure:"aggregate_workers"` // 聚合并发数
	CacheTTL         int `mapstructure:"cache_ttl"`         // 查询缓存过期时间（秒）
}

// ApplyDefaults 填充未配置项的默认值
func (s *LeaderboardConfig) ApplyDefaults() {
	if s.GenerateTimeout <= 0 {
		s.GenerateTimeout = 60
	}
	if s.AggregateWorkers <= 0 {
		s.AggregateWorkers = 8
	}
	if s.CacheTTL <= 0 {
		s.CacheTTL = 600
	}
}
