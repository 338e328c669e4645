package service

import (
	"PeerChain/internal/api/dto"
	"PeerChain/internal/model"
)

func toUserSummary(user *model.User) *dto.UserSummaryDTO {
	if user == nil {
		return nil
	}
	return &dto.UserSummaryDTO{
		UserID:      user.ID.Hex(),
		Name:        user.Name,
		Email:       user.Email,
		Institution: user.Institution,
		TrustRating: user.TrustRating,
		Points:      user.Points,
		Level:       user.Level,
	}
}
