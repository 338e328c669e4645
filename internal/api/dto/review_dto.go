package dto

import "time"

// CreateReviewDTO 提交评审
type CreateReviewDTO struct {
	Rating           int      `json:"rating" validate:"required,min=1,max=5"`
	Comment          string   `json:"comment" validate:"required,max=2000"`
	DetailedFeedback string   `json:"detailed_feedback,omitempty" validate:"omitempty,max=5000"`
	Strengths        []string `json:"strengths,omitempty"`
	Weaknesses       []string `json:"weaknesses,omitempty"`
	Suggestions      []string `json:"suggestions,omitempty"`
}

// ReviewDTO 评审详情
type ReviewDTO struct {
	ReviewID         string          `json:"review_id"`
	PaperID          string          `json:"paper_id"`
	Reviewer         *UserSummaryDTO `json:"reviewer,omitempty"`
	Rating           int             `json:"rating"`
	Comment          string          `json:"comment"`
	DetailedFeedback string          `json:"detailed_feedback,omitempty"`
	Strengths        []string        `json:"strengths,omitempty"`
	Weaknesses       []string        `json:"weaknesses,omitempty"`
	Suggestions      []string        `json:"suggestions,omitempty"`
	Status           string          `json:"status"`
	IsAccepted       bool            `json:"is_accepted"`
	PointsAwarded    int             `json:"points_awarded"`
	CreatedAt        time.Time       `json:"created_at"`
}
