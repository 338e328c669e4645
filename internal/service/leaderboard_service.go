package service

import (
	"PeerChain/internal/api/config"
	"PeerChain/internal/api/dto"
	"PeerChain/internal/model"
	"PeerChain/internal/pkg/consts"
	"PeerChain/internal/pkg/redis"
	"PeerChain/internal/pkg/util"
	"PeerChain/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"sort"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

type LeaderboardService interface {
	GetCurrent(ctx context.Context) (*dto.LeaderboardDTO, error)
	GetByPeriod(ctx context.Context, year, month int) (*dto.LeaderboardDTO, error)
	GetUserRank(ctx context.Context, userID string, year, month int) (*dto.UserRankDTO, error)
	Generate(ctx context.Context, year, month int) (*dto.LeaderboardDTO, error)
	RecoverPending(ctx context.Context) error
}

type leaderboardServiceImpl struct {
	userRepo   repository.UserRepo
	paperRepo  repository.PaperRepo
	reviewRepo repository.ReviewRepo
	lbRepo     repository.LeaderboardRepo
	ledgerRepo repository.PointLedgerRepo
	tx         repository.TxRunner
	cfg        config.LeaderboardConfig
}

func NewLeaderboardService(
	userRepo repository.UserRepo,
	paperRepo repository.PaperRepo,
	reviewRepo repository.ReviewRepo,
	lbRepo repository.LeaderboardRepo,
	ledgerRepo repository.PointLedgerRepo,
	tx repository.TxRunner,
	cfg config.LeaderboardConfig,
) LeaderboardService {
	return &leaderboardServiceImpl{
		userRepo:   userRepo,
		paperRepo:  paperRepo,
		reviewRepo: reviewRepo,
		lbRepo:     lbRepo,
		ledgerRepo: ledgerRepo,
		tx:         tx,
		cfg:        cfg,
	}
}

// GetCurrent 查询当前周期排行榜，不存在时惰性生成。
// 与并发生成竞争失败时回退为重读胜者快照，不把冲突抛给调用方。
func (s *leaderboardServiceImpl) GetCurrent(ctx context.Context) (*dto.LeaderboardDTO, error) {
	now := time.Now()
	year, month := now.Year(), int(now.Month())

	lb, err := s.lbRepo.GetByPeriod(ctx, year, month)
	if err != nil {
		return nil, err
	}

	if lb == nil {
		lb, err = s.generate(ctx, year, month)
		if errors.Is(err, ErrLeaderboardExist) {
			lb, err = s.rereadWinner(ctx, year, month)
		}
		if err != nil {
			return nil, err
		}
	}

	if lb.Status == consts.LeaderboardStatusPending {
		if err = s.finalize(ctx, lb); err != nil {
			return nil, err
		}
	}

	return s.assemble(ctx, lb)
}

// GetByPeriod 查询历史排行榜，绝不触发生成
func (s *leaderboardServiceImpl) GetByPeriod(ctx context.Context, year, month int) (*dto.LeaderboardDTO, error) {
	if !util.ValidateMonth(month) {
		return nil, ErrParamInvalid
	}

	lb, err := s.lbRepo.GetByPeriod(ctx, year, month)
	if err != nil {
		return nil, err
	}
	if lb == nil || lb.Status != consts.LeaderboardStatusFinal {
		return nil, ErrLeaderboardNotFound
	}

	return s.assemble(ctx, lb)
}

func (s *leaderboardServiceImpl) GetUserRank(ctx context.Context, userID string, year, month int) (*dto.UserRankDTO, error) {
	if !util.ValidateMonth(month) {
		return nil, ErrParamInvalid
	}
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrParamInvalid
	}

	lb, err := s.lbRepo.GetByPeriod(ctx, year, month)
	if err != nil {
		return nil, err
	}
	if lb == nil || lb.Status != consts.LeaderboardStatusFinal {
		return nil, ErrLeaderboardNotFound
	}

	for i := range lb.Rankings {
		if lb.Rankings[i].User == oid {
			user, err := s.userRepo.GetUserByID(ctx, oid)
			if err != nil {
				return nil, err
			}
			return &dto.UserRankDTO{
				Ranking:           toRankingDTO(&lb.Rankings[i], user),
				TotalParticipants: len(lb.Rankings),
			}, nil
		}
	}
	return nil, ErrUserNotRanked
}

// Generate 管理端显式触发。
// 已有 final 快照时报重复；遗留 pending 快照视为崩溃恢复，续跑收尾后返回。
func (s *leaderboardServiceImpl) Generate(ctx context.Context, year, month int) (*dto.LeaderboardDTO, error) {
	if !util.ValidateMonth(month) {
		return nil, ErrParamInvalid
	}

	existing, err := s.lbRepo.GetByPeriod(ctx, year, month)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.Status == consts.LeaderboardStatusFinal {
			return nil, ErrLeaderboardExist
		}
		if err = s.finalize(ctx, existing); err != nil {
			return nil, err
		}
		return s.assemble(ctx, existing)
	}

	lb, err := s.generate(ctx, year, month)
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, lb)
}

// RecoverPending 扫描遗留的 pending 快照并从奖励入账一步续跑。
// 积分流水唯一索引保证重复续跑不会二次加分。
func (s *leaderboardServiceImpl) RecoverPending(ctx context.Context) error {
	boards, err := s.lbRepo.FindPending(ctx)
	if err != nil {
		return err
	}
	for _, lb := range boards {
		if err := s.finalize(ctx, lb); err != nil {
			log.ErrorContext(ctx, "recover pending leaderboard failed",
				"year", lb.Year, "month", lb.Month, "err", err)
			continue
		}
		log.InfoContext(ctx, "pending leaderboard recovered", "year", lb.Year, "month", lb.Month)
	}
	return nil
}

// generate 执行完整生成管线：聚合 → 排名 → 两阶段落库。
// 读阶段完成并冻结名次之前不发生任何写入。
func (s *leaderboardServiceImpl) generate(ctx context.Context, year, month int) (*model.Leaderboard, error) {
	periodKey := util.PeriodKey(year, month)

	// 分布式锁只为快速失败，(year, month) 唯一索引才是防重仲裁
	if redis.Available() {
		lockKey := consts.LeaderboardGenerateLock + periodKey
		lockVal := uuid.NewString()
		locked, err := redis.TryLock(ctx, lockKey, lockVal, time.Duration(s.cfg.GenerateTimeout)*time.Second, 1)
		if err != nil {
			return nil, err
		}
		if !locked {
			return nil, ErrLeaderboardExist
		}
		defer redis.UnLock(ctx, lockKey, lockVal)
	}

	aggCtx, cancel := context.WithTimeout(ctx, time.Duration(s.cfg.GenerateTimeout)*time.Second)
	defer cancel()

	entries, err := s.aggregate(aggCtx, year, month)
	if err != nil {
		return nil, err
	}

	rankEntries(entries)

	lb := &model.Leaderboard{
		Year:     year,
		Month:    month,
		Rankings: entries,
	}
	err = s.lbRepo.InsertPending(ctx, lb)
	if errors.Is(err, repository.ErrDuplicateKey) {
		return nil, ErrLeaderboardExist
	}
	if err != nil {
		return nil, err
	}

	if err = s.finalize(ctx, lb); err != nil {
		return nil, err
	}
	return lb, nil
}

// aggregate 全量用户周期聚合。每个用户的统计相互独立，
// 在有界并发池内并行执行；任一查询失败则整体失败，不会留下部分结果。
func (s *leaderboardServiceImpl) aggregate(ctx context.Context, year, month int) ([]model.LeaderboardEntry, error) {
	start, end := periodRange(year, month)

	users, err := s.userRepo.ListAllUsers(ctx)
	if err != nil {
		return nil, s.classifyAggError(ctx, err)
	}

	entries := make([]model.LeaderboardEntry, len(users))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.AggregateWorkers)

	for i, user := range users {
		i, user := i, user
		g.Go(func() error {
			reviews, err := s.reviewRepo.FindByReviewerInRange(gCtx, user.ID, start, end)
			if err != nil {
				return err
			}

			paperCount, err := s.paperRepo.CountByUserInRange(gCtx, user.ID, start, end)
			if err != nil {
				return err
			}

			accepted, err := s.reviewRepo.FindAcceptedInRange(gCtx, user.ID, start, end)
			if err != nil {
				return err
			}

			var bonusPoints, periodPoints, ratingSum int
			for _, review := range accepted {
				bonusPoints += review.PointsAwarded
			}
			for _, review := range reviews {
				periodPoints += PointsForReviewSubmission(review.Rating)
				ratingSum += review.Rating
			}

			var averageRating float64
			if len(reviews) > 0 {
				averageRating = float64(ratingSum) / float64(len(reviews))
			}

			entries[i] = model.LeaderboardEntry{
				User:             user.ID,
				TotalPoints:      float64(periodPoints + bonusPoints),
				ReviewsCompleted: len(reviews),
				PapersSubmitted:  int(paperCount),
				AverageRating:    averageRating,
				BonusPoints:      bonusPoints,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, s.classifyAggError(ctx, err)
	}
	return entries, nil
}

func (s *leaderboardServiceImpl) classifyAggError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrGenerateTimeout
	}
	log.ErrorContext(ctx, "leaderboard aggregation failed", "err", err)
	return ErrAggregationFailed
}

// rankEntries 按周期总分降序稳定排序并赋 1 起始连续名次。
// 入参按用户 _id 升序给出，稳定排序使同分名次落在用户 ID 序上。
func rankEntries(entries []model.LeaderboardEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalPoints > entries[j].TotalPoints
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
}

// finalize 两阶段写的收尾：为第一名落账奖励并把快照置为 final。
// 崩溃后重入安全：top_performer 只在未记录时写入，奖励入账由流水幂等保护。
func (s *leaderboardServiceImpl) finalize(ctx context.Context, lb *model.Leaderboard) error {
	periodKey := util.PeriodKey(lb.Year, lb.Month)

	if len(lb.Rankings) > 0 {
		if lb.TopPerformer == nil {
			top := &lb.Rankings[0]
			top.BonusPoints += TopPerformerBonus
			lb.TopPerformer = &model.TopPerformer{
				User:               top.User,
				BonusPointsAwarded: TopPerformerBonus,
			}
			if err := s.lbRepo.SetTopPerformer(ctx, lb.ID, lb.TopPerformer, lb.Rankings); err != nil {
				return err
			}
		}

		if _, err := creditPoints(ctx, s.tx, s.ledgerRepo, s.userRepo,
			lb.TopPerformer.User, consts.PointEventTopPerformer,
			TopPerformerBonus, periodKey, 0); err != nil {
			return err
		}
	}

	if err := s.lbRepo.MarkFinal(ctx, lb.ID); err != nil {
		return err
	}
	lb.Status = consts.LeaderboardStatusFinal

	// 收尾改动了名次内容，丢弃该周期可能残留的旧缓存
	if redis.Available() {
		_ = redis.DeleteKey(ctx, consts.LeaderboardCacheKey+periodKey)
	}
	return nil
}

// rereadWinner 并发生成竞争失败后轮询胜者的快照
func (s *leaderboardServiceImpl) rereadWinner(ctx context.Context, year, month int) (*model.Leaderboard, error) {
	for i := 0; i < 10; i++ {
		lb, err := s.lbRepo.GetByPeriod(ctx, year, month)
		if err != nil {
			return nil, err
		}
		if lb != nil {
			return lb, nil
		}
		select {
		case <-ctx.Done():
			return nil, ErrGenerateTimeout
		case <-time.After(500 * time.Millisecond):
		}
	}
	return nil, UnExpectedError
}

// assemble 将快照装配为带用户摘要的 DTO，final 快照不可变，结果可整体缓存
func (s *leaderboardServiceImpl) assemble(ctx context.Context, lb *model.Leaderboard) (*dto.LeaderboardDTO, error) {
	cacheKey := consts.LeaderboardCacheKey + util.PeriodKey(lb.Year, lb.Month)

	if redis.Available() {
		cached, err := redis.GetValue(ctx, cacheKey)
		if err == nil && cached != "" {
			var boardDTO dto.LeaderboardDTO
			if err = json.Unmarshal([]byte(cached), &boardDTO); err == nil {
				return &boardDTO, nil
			}
		}
	}

	ids := make([]primitive.ObjectID, 0, len(lb.Rankings))
	for i := range lb.Rankings {
		ids = append(ids, lb.Rankings[i].User)
	}

	usersByID := make(map[primitive.ObjectID]*model.User, len(ids))
	if len(ids) > 0 {
		users, err := s.userRepo.GetUsersByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, user := range users {
			usersByID[user.ID] = user
		}
	}

	rankings := make([]*dto.RankingDTO, 0, len(lb.Rankings))
	for i := range lb.Rankings {
		entry := &lb.Rankings[i]
		rankings = append(rankings, toRankingDTO(entry, usersByID[entry.User]))
	}

	boardDTO := &dto.LeaderboardDTO{
		Year:      lb.Year,
		Month:     lb.Month,
		Rankings:  rankings,
		CreatedAt: lb.CreatedAt,
	}
	if lb.TopPerformer != nil {
		boardDTO.TopPerformer = &dto.TopPerformerDTO{
			User:               toUserSummary(usersByID[lb.TopPerformer.User]),
			BonusPointsAwarded: lb.TopPerformer.BonusPointsAwarded,
		}
	}

	if redis.Available() {
		if raw, err := json.Marshal(boardDTO); err == nil {
			_ = redis.SetWithExpiration(ctx, cacheKey, string(raw), time.Duration(s.cfg.CacheTTL)*time.Second)
		}
	}

	return boardDTO, nil
}

func toRankingDTO(entry *model.LeaderboardEntry, user *model.User) *dto.RankingDTO {
	return &dto.RankingDTO{
		User:             toUserSummary(user),
		Rank:             entry.Rank,
		TotalPoints:      entry.TotalPoints,
		ReviewsCompleted: entry.ReviewsCompleted,
		PapersSubmitted:  entry.PapersSubmitted,
		AverageRating:    entry.AverageRating,
		BonusPoints:      entry.BonusPoints,
	}
}

// periodRange 计算周期首末时刻（含端点），UTC
func periodRange(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}
