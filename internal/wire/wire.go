package wire

import (
	"PeerChain/internal/api"
	"PeerChain/internal/api/config"
	"PeerChain/internal/api/handler"
	"PeerChain/internal/job"
	"PeerChain/internal/pkg/cron"
	"PeerChain/internal/repository"
	"PeerChain/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router         *gin.Engine
	DB             *mongo.Database
	CronMgr        *cron.Manager
	LeaderboardSvc service.LeaderboardService
}

func BuildApplication(db *mongo.Database, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	paperRepo := repository.NewPaperRepo(db)
	reviewRepo := repository.NewReviewRepo(db)
	lbRepo := repository.NewLeaderboardRepo(db)
	ledgerRepo := repository.NewPointLedgerRepo(db)
	txRunner := repository.NewTxRunner(db)

	userService := service.NewUserService(userRepo, ledgerRepo)
	paperService := service.NewPaperService(paperRepo, reviewRepo, userRepo)
	reviewService := service.NewReviewService(reviewRepo, paperRepo, userRepo, ledgerRepo, txRunner)
	leaderboardService := service.NewLeaderboardService(userRepo, paperRepo, reviewRepo, lbRepo, ledgerRepo, txRunner, cfg.Leaderboard)

	handlers := &api.HandlersGroup{
		UserHandler:        handler.NewUserHandler(userService),
		PaperHandler:       handler.NewPaperHandler(paperService, reviewService),
		LeaderboardHandler: handler.NewLeaderboardHandler(leaderboardService),
	}

	router := api.SetupRouter(handlers)

	cronMgr := cron.NewCronManager(job.NewLeaderboardJob(leaderboardService))

	return &ApplicationContainer{
		Router:         router,
		DB:             db,
		CronMgr:        cronMgr,
		LeaderboardSvc: leaderboardService,
	}, nil
}
