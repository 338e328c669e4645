package service

import (
	"PeerChain/internal/api/dto"
	"PeerChain/internal/model"
	"PeerChain/internal/pkg/consts"
	"PeerChain/internal/repository"
	"context"

	"github.com/jinzhu/copier"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReviewService interface {
	SubmitReview(ctx context.Context, reviewerID, paperID string, createDTO *dto.CreateReviewDTO) (*dto.ReviewDTO, error)
	AcceptReview(ctx context.Context, callerID, paperID, reviewID string) (*dto.ReviewDTO, error)
}

type reviewServiceImpl struct {
	reviewRepo repository.ReviewRepo
	paperRepo  repository.PaperRepo
	userRepo   repository.UserRepo
	ledgerRepo repository.PointLedgerRepo
	tx         repository.TxRunner
}

func NewReviewService(
	reviewRepo repository.ReviewRepo,
	paperRepo repository.PaperRepo,
	userRepo repository.UserRepo,
	ledgerRepo repository.PointLedgerRepo,
	tx repository.TxRunner,
) ReviewService {
	return &reviewServiceImpl{
		reviewRepo: reviewRepo,
		paperRepo:  paperRepo,
		userRepo:   userRepo,
		ledgerRepo: ledgerRepo,
		tx:         tx,
	}
}

// SubmitReview 提交评审并按 rating*10 为评审人入账积分
func (s *reviewServiceImpl) SubmitReview(ctx context.Context, reviewerID, paperID string, createDTO *dto.CreateReviewDTO) (*dto.ReviewDTO, error) {
	reviewerOID, err := primitive.ObjectIDFromHex(reviewerID)
	if err != nil {
		return nil, ErrParamInvalid
	}
	paperOID, err := primitive.ObjectIDFromHex(paperID)
	if err != nil {
		return nil, ErrParamInvalid
	}

	paper, err := s.paperRepo.GetPaperByID(ctx, paperOID)
	if err != nil {
		return nil, err
	}
	if paper == nil {
		return nil, ErrPaperNotFound
	}
	if paper.SubmittedBy == reviewerOID {
		return nil, ErrReviewOwnPaper
	}

	review := &model.Review{}
	if err = copier.Copy(review, createDTO); err != nil {
		return nil, err
	}
	review.Paper = paperOID
	review.Reviewer = reviewerOID
	review.Status = consts.ReviewStatusSubmitted

	err = s.reviewRepo.CreateReview(ctx, review)
	if err == repository.ErrDuplicateKey {
		return nil, ErrReviewExist
	}
	if err != nil {
		return nil, err
	}

	// 刷新论文侧派生字段
	reviews, err := s.reviewRepo.FindByPaper(ctx, paperOID)
	if err != nil {
		return nil, err
	}
	var ratingSum int
	for _, r := range reviews {
		ratingSum += r.Rating
	}
	averageRating := float64(ratingSum) / float64(len(reviews))
	if err = s.paperRepo.AttachReview(ctx, paperOID, review.ID, averageRating); err != nil {
		return nil, err
	}

	// 积分入账，流水 ref 为评审 ID
	points := PointsForReviewSubmission(review.Rating)
	if _, err = creditPoints(ctx, s.tx, s.ledgerRepo, s.userRepo,
		reviewerOID, consts.PointEventReviewSubmit, points, review.ID.Hex(), 1); err != nil {
		return nil, err
	}

	return s.toReviewDTO(review), nil
}

// AcceptReview 论文提交者采纳评审，按 rating*15 为评审人入账积分。
// is_accepted=false 的原子置位保证重复采纳无副作用。
func (s *reviewServiceImpl) AcceptReview(ctx context.Context, callerID, paperID, reviewID string) (*dto.ReviewDTO, error) {
	callerOID, err := primitive.ObjectIDFromHex(callerID)
	if err != nil {
		return nil, ErrParamInvalid
	}
	paperOID, err := primitive.ObjectIDFromHex(paperID)
	if err != nil {
		return nil, ErrParamInvalid
	}
	reviewOID, err := primitive.ObjectIDFromHex(reviewID)
	if err != nil {
		return nil, ErrParamInvalid
	}

	paper, err := s.paperRepo.GetPaperByID(ctx, paperOID)
	if err != nil {
		return nil, err
	}
	if paper == nil {
		return nil, ErrPaperNotFound
	}
	if paper.SubmittedBy != callerOID {
		return nil, ErrNotPaperOwner
	}

	review, err := s.reviewRepo.GetReviewByID(ctx, reviewOID)
	if err != nil {
		return nil, err
	}
	if review == nil || review.Paper != paperOID {
		return nil, ErrReviewNotFound
	}
	if review.IsAccepted {
		return nil, ErrReviewAlreadyAccepted
	}

	points := PointsForReviewAcceptance(review.Rating)
	accepted, err := s.reviewRepo.MarkAccepted(ctx, reviewOID, points)
	if err != nil {
		return nil, err
	}
	if accepted == nil {
		// 并发采纳时置位方已胜出
		return nil, ErrReviewAlreadyAccepted
	}

	if _, err = creditPoints(ctx, s.tx, s.ledgerRepo, s.userRepo,
		accepted.Reviewer, consts.PointEventReviewAccept, points, accepted.ID.Hex(), 0); err != nil {
		return nil, err
	}

	return s.toReviewDTO(accepted), nil
}

func (s *reviewServiceImpl) toReviewDTO(review *model.Review) *dto.ReviewDTO {
	reviewDTO := &dto.ReviewDTO{}
	_ = copier.Copy(reviewDTO, review)
	reviewDTO.ReviewID = review.ID.Hex()
	reviewDTO.PaperID = review.Paper.Hex()
	return reviewDTO
}
