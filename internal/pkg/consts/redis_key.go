package consts

const (
	LeaderboardCacheKey = "leaderboard:board:"
	TokenBlacklistKey   = "token:blacklist:"
)

const (
	LeaderboardGenerateLock = "leaderboard:generate:lock:"
)
