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

type PaperService interface {
	SubmitPaper(ctx context.Context, userID string, createDTO *dto.CreatePaperDTO) (*dto.PaperDTO, error)
	ListPapers(ctx context.Context, listDTO *dto.ListPapersDTO) (*dto.PaperPageDTO, error)
	GetPaper(ctx context.Context, paperID string) (*dto.PaperDTO, error)
}

type paperServiceImpl struct {
	paperRepo  repository.PaperRepo
	reviewRepo repository.ReviewRepo
	userRepo   repository.UserRepo
}

func NewPaperService(paperRepo repository.PaperRepo, reviewRepo repository.ReviewRepo, userRepo repository.UserRepo) PaperService {
	return &paperServiceImpl{
		paperRepo:  paperRepo,
		reviewRepo: reviewRepo,
		userRepo:   userRepo,
	}
}

func (s *paperServiceImpl) SubmitPaper(ctx context.Context, userID string, createDTO *dto.CreatePaperDTO) (*dto.PaperDTO, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrParamInvalid
	}
	user, err := s.userRepo.GetUserByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	paper := &model.Paper{}
	if err = copier.Copy(paper, createDTO); err != nil {
		return nil, err
	}
	paper.SubmittedBy = oid
	paper.Status = consts.PaperStatusSubmitted

	if err = s.paperRepo.CreatePaper(ctx, paper); err != nil {
		return nil, err
	}

	// 终身提交数计数，不涉及积分
	if _, err = s.userRepo.IncCounters(ctx, oid, 0, 0, 1); err != nil {
		return nil, err
	}

	return s.toPaperDTO(paper, user, nil), nil
}

func (s *paperServiceImpl) ListPapers(ctx context.Context, listDTO *dto.ListPapersDTO) (*dto.PaperPageDTO, error) {
	page := listDTO.Page
	if page < 1 {
		page = 1
	}
	limit := listDTO.Limit
	if limit < 1 || limit > 100 {
		limit = 10
	}

	papers, total, err := s.paperRepo.ListPapers(ctx, listDTO.Category, listDTO.Status, page, limit)
	if err != nil {
		return nil, err
	}

	submitters, err := s.loadSubmitters(ctx, papers)
	if err != nil {
		return nil, err
	}

	paperDTOs := make([]*dto.PaperDTO, 0, len(papers))
	for _, paper := range papers {
		paperDTOs = append(paperDTOs, s.toPaperDTO(paper, submitters[paper.SubmittedBy], nil))
	}

	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}

	return &dto.PaperPageDTO{
		Papers: paperDTOs,
		Page:   page,
		Pages:  pages,
		Total:  total,
	}, nil
}

func (s *paperServiceImpl) GetPaper(ctx context.Context, paperID string) (*dto.PaperDTO, error) {
	oid, err := primitive.ObjectIDFromHex(paperID)
	if err != nil {
		return nil, ErrParamInvalid
	}
	paper, err := s.paperRepo.GetPaperByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if paper == nil {
		return nil, ErrPaperNotFound
	}

	submitter, err := s.userRepo.GetUserByID(ctx, paper.SubmittedBy)
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.FindByPaper(ctx, oid)
	if err != nil {
		return nil, err
	}

	reviewerIDs := make([]primitive.ObjectID, 0, len(reviews))
	for _, review := range reviews {
		reviewerIDs = append(reviewerIDs, review.Reviewer)
	}
	reviewers, err := s.loadUsers(ctx, reviewerIDs)
	if err != nil {
		return nil, err
	}

	reviewDTOs := make([]*dto.ReviewDTO, 0, len(reviews))
	for _, review := range reviews {
		reviewDTO := &dto.ReviewDTO{}
		if err = copier.Copy(reviewDTO, review); err != nil {
			return nil, err
		}
		reviewDTO.ReviewID = review.ID.Hex()
		reviewDTO.PaperID = review.Paper.Hex()
		reviewDTO.Reviewer = toUserSummary(reviewers[review.Reviewer])
		reviewDTOs = append(reviewDTOs, reviewDTO)
	}

	return s.toPaperDTO(paper, submitter, reviewDTOs), nil
}

func (s *paperServiceImpl) toPaperDTO(paper *model.Paper, submitter *model.User, reviews []*dto.ReviewDTO) *dto.PaperDTO {
	paperDTO := &dto.PaperDTO{}
	_ = copier.Copy(paperDTO, paper)
	paperDTO.PaperID = paper.ID.Hex()
	paperDTO.SubmittedBy = toUserSummary(submitter)
	paperDTO.Reviews = reviews
	return paperDTO
}

func (s *paperServiceImpl) loadSubmitters(ctx context.Context, papers []*model.Paper) (map[primitive.ObjectID]*model.User, error) {
	ids := make([]primitive.ObjectID, 0, len(papers))
	for _, paper := range papers {
		ids = append(ids, paper.SubmittedBy)
	}
	return s.loadUsers(ctx, ids)
}

func (s *paperServiceImpl) loadUsers(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*model.User, error) {
	if len(ids) == 0 {
		return map[primitive.ObjectID]*model.User{}, nil
	}
	users, err := s.userRepo.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]*model.User, len(users))
	for _, user := range users {
		byID[user.ID] = user
	}
	return byID, nil
}
