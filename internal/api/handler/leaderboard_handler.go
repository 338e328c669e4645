package handler

import (
	"PeerChain/internal/pkg/response"
	"PeerChain/internal/service"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type LeaderboardHandler struct {
	lbSvc service.LeaderboardService
}

func NewLeaderboardHandler(lbSvc service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{lbSvc: lbSvc}
}

// GetCurrent 当前周期排行榜，不存在时自动生成
func (s *LeaderboardHandler) GetCurrent(c *gin.Context) {
	boardDTO, err := s.lbSvc.GetCurrent(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, boardDTO)
}

func (s *LeaderboardHandler) GetByPeriod(c *gin.Context) {
	year, month, ok := parsePeriod(c)
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	boardDTO, err := s.lbSvc.GetByPeriod(c.Request.Context(), year, month)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, boardDTO)
}

func (s *LeaderboardHandler) GetUserRank(c *gin.Context) {
	userID := c.Param("user_id")
	year, month, ok := parsePeriod(c)
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	rankDTO, err := s.lbSvc.GetUserRank(c.Request.Context(), userID, year, month)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, rankDTO)
}

// GetUserRankCurrent 查询用户在当前周期的名次，榜单未生成时先生成
func (s *LeaderboardHandler) GetUserRankCurrent(c *gin.Context) {
	if _, err := s.lbSvc.GetCurrent(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	now := time.Now()
	rankDTO, err := s.lbSvc.GetUserRank(c.Request.Context(), c.Param("user_id"), now.Year(), int(now.Month()))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, rankDTO)
}

// Generate 管理端显式生成指定周期排行榜
func (s *LeaderboardHandler) Generate(c *gin.Context) {
	year, month, ok := parsePeriod(c)
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	boardDTO, err := s.lbSvc.Generate(c.Request.Context(), year, month)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, boardDTO)
}

func parsePeriod(c *gin.Context) (int, int, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return 0, 0, false
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		return 0, 0, false
	}
	return year, month, true
}
