package dto

import "time"

// RegisterDTO 注册
type RegisterDTO struct {
	Name         string `json:"name" validate:"required,min=1,max=50"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8,max=72"`
	Department   string `json:"department,omitempty"`
	ResearchArea string `json:"research_area,omitempty"`
}

// CredentialDTO 登录凭据
type CredentialDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserDTO 用户
type UserDTO struct {
	UserID           string     `json:"user_id,omitempty"`
	Name             string     `json:"name,omitempty"`
	Email            string     `json:"email,omitempty"`
	Institution      string     `json:"institution,omitempty"`
	Department       string     `json:"department,omitempty"`
	ResearchArea     string     `json:"research_area,omitempty"`
	Bio              string     `json:"bio,omitempty"`
	TrustRating      float64    `json:"trust_rating"`
	PapersSubmitted  int        `json:"papers_submitted"`
	ReviewsCompleted int        `json:"reviews_completed"`
	Points           int        `json:"points"`
	Level            string     `json:"level,omitempty"`
	JoinedDate       *time.Time `json:"joined_date,omitempty"`
}

// UpdateUserDTO 资料修改
type UpdateUserDTO struct {
	Name         string `json:"name,omitempty" validate:"omitempty,min=1,max=50"`
	Department   string `json:"department,omitempty" validate:"omitempty,max=100"`
	ResearchArea string `json:"research_area,omitempty" validate:"omitempty,max=100"`
	Bio          string `json:"bio,omitempty" validate:"omitempty,max=500"`
}

// UserSummaryDTO 排行榜等场景的用户摘要
type UserSummaryDTO struct {
	UserID      string  `json:"user_id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Institution string  `json:"institution"`
	TrustRating float64 `json:"trust_rating"`
	Points      int     `json:"points"`
	Level       string  `json:"level"`
}

// PointEventDTO 积分流水
type PointEventDTO struct {
	Type      string    `json:"type"`
	Points    int       `json:"points"`
	Ref       string    `json:"ref"`
	CreatedAt time.Time `json:"created_at"`
}
