package handler

import (
	"PeerChain/internal/api/dto"
	"PeerChain/internal/pkg/response"
	"PeerChain/internal/pkg/util"
	"PeerChain/internal/service"

	"github.com/gin-gonic/gin"
)

type PaperHandler struct {
	paperSvc  service.PaperService
	reviewSvc service.ReviewService
}

func NewPaperHandler(paperSvc service.PaperService, reviewSvc service.ReviewService) *PaperHandler {
	return &PaperHandler{
		paperSvc:  paperSvc,
		reviewSvc: reviewSvc,
	}
}

func (s *PaperHandler) SubmitPaper(c *gin.Context) {
	var createDTO dto.CreatePaperDTO
	err := c.ShouldBind(&createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&createDTO); err != nil {
		response.Error(c, err)
		return
	}
	userID := c.GetString("user_id")
	paperDTO, err := s.paperSvc.SubmitPaper(c.Request.Context(), userID, &createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, paperDTO)
}

func (s *PaperHandler) ListPapers(c *gin.Context) {
	var listDTO dto.ListPapersDTO
	err := c.ShouldBindQuery(&listDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	pageDTO, err := s.paperSvc.ListPapers(c.Request.Context(), &listDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, pageDTO)
}

func (s *PaperHandler) GetPaper(c *gin.Context) {
	paperDTO, err := s.paperSvc.GetPaper(c.Request.Context(), c.Param("paper_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, paperDTO)
}

func (s *PaperHandler) SubmitReview(c *gin.Context) {
	var createDTO dto.CreateReviewDTO
	err := c.ShouldBind(&createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&createDTO); err != nil {
		response.Error(c, err)
		return
	}
	reviewerID := c.GetString("user_id")
	reviewDTO, err := s.reviewSvc.SubmitReview(c.Request.Context(), reviewerID, c.Param("paper_id"), &createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, reviewDTO)
}

func (s *PaperHandler) AcceptReview(c *gin.Context) {
	callerID := c.GetString("user_id")
	reviewDTO, err := s.reviewSvc.AcceptReview(c.Request.Context(), callerID, c.Param("paper_id"), c.Param("review_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, reviewDTO)
}
