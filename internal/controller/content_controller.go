package controller

import (
	"strconv"

	"medquiz_backend/internal/model"
	"medquiz_backend/internal/service"
	"medquiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ContentController struct {
	ContentService *service.ContentService
}

func NewContentController(contentService *service.ContentService) *ContentController {
	return &ContentController{ContentService: contentService}
}

type listEnvelope struct {
	util.Envelope
	Items interface{} `json:"items"`
	Total int64       `json:"total,omitempty"`
}

// @Summary 创建题目
// @Tags 内容编审
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CreateQuestionRequest true "题目信息"
// @Success 200 {object} util.Envelope
// @Router /admin/questions [post]
func (c *ContentController) CreateQuestion(ctx *gin.Context) {
	var req service.CreateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.ContentService.CreateQuestion(req)
	if err != nil {
		switch err {
		case util.ErrBadOptionKey, util.ErrTooFewOptions, util.ErrCorrectKeyNotListed:
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.OK(ctx, gin.H{"success": true, "question": question})
}

type reviewRequest struct {
	Approve bool `json:"approve"`
}

// @Summary 审核题目
// @Tags 内容编审
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "题目ID"
// @Param body body reviewRequest true "审核结果"
// @Success 200 {object} util.Envelope
// @Router /admin/questions/{id}/review [post]
func (c *ContentController) ReviewQuestion(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid id")
		return
	}

	var req reviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ContentService.ReviewQuestion(id, req.Approve); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.OK(ctx, util.Envelope{Success: true})
}

// @Summary 删除题目
// @Tags 内容编审
// @Security ApiKeyAuth
// @Param id path int true "题目ID"
// @Success 200 {object} util.Envelope
// @Router /admin/questions/{id} [delete]
func (c *ContentController) DeleteQuestion(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid id")
		return
	}
	if err := c.ContentService.DeleteQuestion(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.OK(ctx, util.Envelope{Success: true})
}

// @Summary 章节题目列表
// @Tags 内容编审
// @Produce json
// @Security ApiKeyAuth
// @Param chapterId query int true "章节ID"
// @Param status query string false "状态过滤 pending/approved/rejected"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} listEnvelope
// @Router /admin/questions [get]
func (c *ContentController) ListQuestions(ctx *gin.Context) {
	chapterID := util.MustParseUint(ctx.Query("chapterId"))
	if chapterID == 0 {
		util.BadRequest(ctx, "chapterId required")
		return
	}

	status := model.QuestionStatus(ctx.Query("status"))
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	questions, total, err := c.ContentService.ListQuestions(chapterID, status, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.OK(ctx, listEnvelope{Envelope: util.Envelope{Success: true}, Items: questions, Total: total})
}

// @Summary 创建课程
// @Tags 内容编审
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body model.Course true "课程信息"
// @Success 200 {object} util.Envelope
// @Router /admin/courses [post]
func (c *ContentController) CreateCourse(ctx *gin.Context) {
	var course model.Course
	if err := ctx.ShouldBindJSON(&course); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.ContentService.CreateCourse(&course); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.OK(ctx, gin.H{"success": true, "course": course})
}

// @Summary 课程列表
// @Tags 课程体系
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} listEnvelope
// @Router /courses [get]
func (c *ContentController) ListCourses(ctx *gin.Context) {
	courses, err := c.ContentService.ListCourses()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.OK(ctx, listEnvelope{Envelope: util.Envelope{Success: true}, Items: courses})
}

// @Summary 创建学科
// @Tags 内容编审
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body model.Subject true "学科信息"
// @Success 200 {object} util.Envelope
// @Router /admin/subjects [post]
func (c *ContentController) CreateSubject(ctx *gin.Context) {
	var subject model.Subject
	if err := ctx.ShouldBindJSON(&subject); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.ContentService.CreateSubject(&subject); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.OK(ctx, gin.H{"success": true, "subject": subject})
}

// @Summary 学科列表
// @Tags 课程体系
// @Produce json
// @Security ApiKeyAuth
// @Param courseId query int true "课程ID"
// @Success 200 {object} listEnvelope
// @Router /subjects [get]
func (c *ContentController) ListSubjects(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Query("courseId"))
	subjects, err := c.ContentService.ListSubjects(courseID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.OK(ctx, listEnvelope{Envelope: util.Envelope{Success: true}, Items: subjects})
}

// @Summary 创建章节
// @Tags 内容编审
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body model.Chapter true "章节信息"
// @Success 200 {object} util.Envelope
// @Router /admin/chapters [post]
func (c *ContentController) CreateChapter(ctx *gin.Context) {
	var chapter model.Chapter
	if err := ctx.ShouldBindJSON(&chapter); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.ContentService.CreateChapter(&chapter); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.OK(ctx, gin.H{"success": true, "chapter": chapter})
}

// @Summary 章节列表
// @Tags 课程体系
// @Produce json
// @Security ApiKeyAuth
// @Param subjectId query int true "学科ID"
// @Success 200 {object} listEnvelope
// @Router /chapters [get]
func (c *ContentController) ListChapters(ctx *gin.Context) {
	subjectID := util.MustParseUint(ctx.Query("subjectId"))
	chapters, err := c.ContentService.ListChapters(subjectID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.OK(ctx, listEnvelope{Envelope: util.Envelope{Success: true}, Items: chapters})
}

// @Summary 创建知识点
// @Tags 内容编审
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body model.Topic true "知识点信息"
// @Success 200 {object} util.Envelope
// @Router /admin/topics [post]
func (c *ContentController) CreateTopic(ctx *gin.Context) {
	var topic model.Topic
	if err := ctx.ShouldBindJSON(&topic); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.ContentService.CreateTopic(&topic); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.OK(ctx, gin.H{"success": true, "topic": topic})
}

// @Summary 知识点列表
// @Tags 课程体系
// @Produce json
// @Security ApiKeyAuth
// @Param chapterId query int true "章节ID"
// @Success 200 {object} listEnvelope
// @Router /topics [get]
func (c *ContentController) ListTopics(ctx *gin.Context) {
	chapterID := util.MustParseUint(ctx.Query("chapterId"))
	topics, err := c.ContentService.ListTopics(chapterID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.OK(ctx, listEnvelope{Envelope: util.Envelope{Success: true}, Items: topics})
}
