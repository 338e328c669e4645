package service

// 积分规则。除这三条外没有任何缩放、衰减或条件逻辑。
const (
	ReviewSubmissionMultiplier = 10  // 提交评审：rating * 10
	ReviewAcceptanceMultiplier = 15  // 评审被采纳：rating * 15
	TopPerformerBonus          = 100 // 周期第一名一次性奖励
)

// PointsForReviewSubmission 评审提交可得积分
func PointsForReviewSubmission(rating int) int {
	return rating * ReviewSubmissionMultiplier
}

// PointsForReviewAcceptance 评审被采纳可得积分
func PointsForReviewAcceptance(rating int) int {
	return rating * ReviewAcceptanceMultiplier
}

// 等级门槛，按终身积分划分
const (
	LevelBronze   = "Bronze Tier"
	LevelSilver   = "Silver Tier"
	LevelGold     = "Gold Tier"
	LevelPlatinum = "Platinum Tier"
	LevelDiamond  = "Diamond Tier"
)

// LevelForPoints 由终身积分推导等级
func LevelForPoints(points int) string {
	switch {
	case points >= 5000:
		return LevelDiamond
	case points >= 2000:
		return LevelPlatinum
	case points >= 1000:
		return LevelGold
	case points >= 500:
		return LevelSilver
	default:
		return LevelBronze
	}
}
