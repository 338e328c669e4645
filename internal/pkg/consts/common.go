package consts

// 评审状态
const (
	ReviewStatusSubmitted = "submitted"
	ReviewStatusAccepted  = "accepted"
)

// 论文状态
const (
	PaperStatusSubmitted   = "submitted"
	PaperStatusUnderReview = "under_review"
)

// 排行榜快照状态，pending 表示奖励尚未落账
const (
	LeaderboardStatusPending = "pending"
	LeaderboardStatusFinal   = "final"
)

// 积分事件类型
const (
	PointEventReviewSubmit = "review_submit"
	PointEventReviewAccept = "review_accept"
	PointEventTopPerformer = "top_performer"
)

// 新用户初始值
const (
	DefaultStartingPoints = 100
	DefaultTrustRating    = 3.0
	DefaultInstitution    = "VIT University"
)
