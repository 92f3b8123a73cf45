package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/user/cinesight/internal/model"
	"github.com/user/cinesight/internal/utils"
)

// ==================== htmx / JSON API ====================

// MovieSuggest 电影标题联想（评分表单的选片输入框使用）
func (h *Handler) MovieSuggest(c *gin.Context) {
	keyword := strings.ToLower(strings.TrimSpace(c.Query("q")))

	var titles []string
	for _, m := range h.Repos.Catalog.List() {
		if keyword == "" || strings.Contains(strings.ToLower(m.Title), keyword) {
			titles = append(titles, m.Title)
		}
	}

	utils.Success(c, titles)
}

// ApiStats 片库统计数据（Dashboard 图表通过它取数）
func (h *Handler) ApiStats(c *gin.Context) {
	utils.Success(c, h.catalogStats())
}

// ApiRecommend 推荐接口
func (h *Handler) ApiRecommend(c *gin.Context) {
	var req model.RecommendRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.BadRequest(c, "缺少分类参数")
		return
	}

	minYear, maxYear := h.Repos.Catalog.YearBounds()
	if req.YearFrom == 0 {
		req.YearFrom = minYear
	}
	if req.YearTo == 0 {
		req.YearTo = maxYear
	}

	movies := h.Recommender.Recommend(req.Genre, req.MinRating, req.YearFrom, req.YearTo)
	if len(movies) == 0 {
		utils.SuccessWithMessage(c, "没有符合条件的电影，试试放宽筛选条件", movies)
		return
	}
	utils.Success(c, movies)
}

// ApiSubmitRating 评分提交接口
func (h *Handler) ApiSubmitRating(c *gin.Context) {
	var req model.SubmitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "评分必须在 1 到 10 之间")
		return
	}

	if h.Repos.Catalog.FindByTitle(req.MovieTitle) == nil {
		utils.NotFound(c, "片库中没有这部电影")
		return
	}

	ledger := h.currentLedger(c)
	if ledger == nil {
		utils.Unauthorized(c, "")
		return
	}

	if err := ledger.Submit(req.MovieTitle, req.Value, req.Review); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "评分已记录", nil)
}

// ApiListRatings 当前会话的评分记录
func (h *Handler) ApiListRatings(c *gin.Context) {
	ledger := h.currentLedger(c)
	if ledger == nil {
		utils.Unauthorized(c, "")
		return
	}
	utils.Success(c, ledger.List())
}
