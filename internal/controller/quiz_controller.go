package controller

import (
	"strconv"

	"medquiz_backend/internal/service"
	"medquiz_backend/internal/util"
	"medquiz_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

func (c *QuizController) handleQuizError(ctx *gin.Context, err error) {
	switch err {
	case util.ErrScopeRequired, util.ErrScopeAmbiguous, util.ErrAnswersRequired:
		util.BadRequest(ctx, err.Error())
	case util.ErrAttemptNotFound:
		util.NotFound(ctx, err.Error())
	case util.ErrAttemptForbidden:
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}

// @Summary 开始刷题
// @Description 按章节或知识点随机出题，优先未做过的题
// @Tags 刷题
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.StartQuizRequest true "出题范围"
// @Success 200 {object} service.StartQuizResponse
// @Router /quiz/start [post]
func (c *QuizController) Start(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.StartQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.QuizService.StartQuiz(user.UserID, req)
	if err != nil {
		c.handleQuizError(ctx, err)
		return
	}

	monitoring.QuizStartedCounter.Inc()
	util.OK(ctx, resp)
}

// @Summary 提交答案
// @Description 判分并返回成绩与排名；不带 attempt_id 时现场建档判分
// @Tags 刷题
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.SubmitQuizRequest true "答案列表"
// @Success 200 {object} service.SubmitQuizResponse
// @Router /quiz/submit [post]
func (c *QuizController) Submit(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.QuizService.SubmitQuiz(user.UserID, req)
	if err != nil {
		c.handleQuizError(ctx, err)
		return
	}

	monitoring.QuizGradedCounter.Inc()
	util.OK(ctx, resp)
}

type resetRequest struct {
	ChapterID *uint `json:"chapter_id"`
}

// @Summary 清空答题历史
// @Description 删除用户的答题记录，可限定章节；重复调用返回 0
// @Tags 刷题
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body resetRequest false "章节范围"
// @Success 200 {object} service.ResetQuizResponse
// @Router /quiz/reset [post]
func (c *QuizController) Reset(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	// body 可以整个省略
	var req resetRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
	}

	resp, err := c.QuizService.ResetQuiz(user.UserID, req.ChapterID)
	if err != nil {
		c.handleQuizError(ctx, err)
		return
	}
	util.OK(ctx, resp)
}

// @Summary 历史答题记录
// @Tags 刷题
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} service.HistoryResponse
// @Router /quiz/history [get]
func (c *QuizController) History(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	resp, err := c.QuizService.History(user.UserID, page, limit)
	if err != nil {
		c.handleQuizError(ctx, err)
		return
	}
	util.OK(ctx, resp)
}
