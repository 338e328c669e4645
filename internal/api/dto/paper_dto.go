package dto

import "time"

// CreatePaperDTO 提交论文
type CreatePaperDTO struct {
	Title    string           `json:"title" validate:"required,min=10"`
	Abstract string           `json:"abstract" validate:"required,min=50,max=2000"`
	Authors  []PaperAuthorDTO `json:"authors" validate:"required,min=1,dive"`
	Keywords []string         `json:"keywords" validate:"required,min=1"`
	Category string           `json:"category" validate:"required,oneof='Computer Science' Engineering Mathematics Physics Chemistry Biology Medicine Other"`
	DOI      string           `json:"doi,omitempty"`
}

// PaperAuthorDTO 署名作者
type PaperAuthorDTO struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	Affiliation string `json:"affiliation,omitempty"`
}

// PaperDTO 论文详情
type PaperDTO struct {
	PaperID        string           `json:"paper_id"`
	Title          string           `json:"title"`
	Abstract       string           `json:"abstract"`
	Authors        []PaperAuthorDTO `json:"authors"`
	Keywords       []string         `json:"keywords"`
	Category       string           `json:"category"`
	DOI            string           `json:"doi,omitempty"`
	Status         string           `json:"status"`
	SubmittedBy    *UserSummaryDTO  `json:"submitted_by,omitempty"`
	AverageRating  float64          `json:"average_rating"`
	TotalReviews   int              `json:"total_reviews"`
	SubmissionDate time.Time        `json:"submission_date"`
	Reviews        []*ReviewDTO     `json:"reviews,omitempty"`
}

// ListPapersDTO 分页查询参数
type ListPapersDTO struct {
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
	Category string `form:"category"`
	Status   string `form:"status"`
}

// PaperPageDTO 分页结果
type PaperPageDTO struct {
	Papers []*PaperDTO `json:"papers"`
	Page   int         `json:"page"`
	Pages  int64       `json:"pages"`
	Total  int64       `json:"total"`
}
