package controller

import (
	"medquiz_backend/internal/service"
	"medquiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RankingController struct {
	RankingService *service.RankingService
}

func NewRankingController(rankingService *service.RankingService) *RankingController {
	return &RankingController{RankingService: rankingService}
}

type rankingsRequest struct {
	ChapterID *uint `json:"chapter_id"`
	Limit     int   `json:"limit"`
}

// @Summary 排行榜
// @Description 范围内每人最高分的排名；登录用户附带自己的名次
// @Tags 刷题
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body rankingsRequest false "范围与数量"
// @Success 200 {object} service.RankingsResponse
// @Router /quiz/rankings [post]
func (c *RankingController) Rankings(ctx *gin.Context) {
	var req rankingsRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
	}

	var userID *uint
	if user := util.GetUserFromContext(ctx); user != nil {
		userID = &user.UserID
	}

	resp, err := c.RankingService.Rankings(req.ChapterID, req.Limit, userID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.OK(ctx, resp)
}
