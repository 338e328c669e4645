package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
)

var (
	ErrParamInvalid          = errors.New("参数错误")
	ErrUserNotFound          = errors.New("用户不存在")
	ErrUserEmailExist        = errors.New("邮箱已注册")
	ErrPasswordIncorrect     = errors.New("密码错误")
	ErrPaperNotFound         = errors.New("论文不存在")
	ErrReviewNotFound        = errors.New("评审不存在")
	ErrReviewExist           = errors.New("已评审过该论文")
	ErrReviewOwnPaper        = errors.New("不能评审自己的论文")
	ErrReviewAlreadyAccepted = errors.New("评审已被采纳")
	ErrNotPaperOwner         = errors.New("仅论文提交者可采纳评审")
	ErrLeaderboardNotFound   = errors.New("排行榜不存在")
	ErrLeaderboardExist      = errors.New("该周期排行榜已存在")
	ErrUserNotRanked         = errors.New("用户不在当前排行榜中")
	ErrAggregationFailed     = errors.New("排行榜数据聚合失败")
	ErrGenerateTimeout       = errors.New("排行榜生成超时")
	UnExpectedError          = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:          BadRequest,
	ErrUserNotFound:          NotFound,
	ErrUserEmailExist:        BadRequest,
	ErrPasswordIncorrect:     Unauthorized,
	ErrPaperNotFound:         NotFound,
	ErrReviewNotFound:        NotFound,
	ErrReviewExist:           BadRequest,
	ErrReviewOwnPaper:        BadRequest,
	ErrReviewAlreadyAccepted: BadRequest,
	ErrNotPaperOwner:         Unauthorized,
	ErrLeaderboardNotFound:   NotFound,
	ErrLeaderboardExist:      Conflict,
	ErrUserNotRanked:         NotFound,
	ErrAggregationFailed:     InternalServerError,
	ErrGenerateTimeout:       InternalServerError,
	UnExpectedError:          InternalServerError,
}
