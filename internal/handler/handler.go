package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/user/cinesight/internal/config"
	"github.com/user/cinesight/internal/middleware"
	"github.com/user/cinesight/internal/model"
	"github.com/user/cinesight/internal/repository"
	"github.com/user/cinesight/internal/service"
	"github.com/user/cinesight/internal/utils"
)

// Handler HTTP 处理器
type Handler struct {
	Repos       *repository.Repositories
	Config      *config.Config
	Recommender *service.RecommendService
}

// NewHandler 创建处理器
func NewHandler(repos *repository.Repositories, cfg *config.Config) *Handler {
	return &Handler{
		Repos:       repos,
		Config:      cfg,
		Recommender: service.NewRecommendService(repos.Catalog),
	}
}

// RenderData 统一封装公共渲染数据
func (h *Handler) RenderData(c *gin.Context, data gin.H) gin.H {
	// 基础数据
	res := gin.H{
		"SiteName": h.Config.SiteName,
		"SiteUrl":  h.Config.SiteUrl,
		"Path":     c.Request.URL.Path,
	}

	// 注入用户信息
	if su := h.sessionUser(c); su != nil {
		res["UserInfo"] = *su
	}

	// 菜单高亮逻辑
	res["ActiveMenu"] = h.getActiveMenu(c.Request.URL.Path)

	// 合并传入的数据
	for k, v := range data {
		res[k] = v
	}

	return res
}

// getActiveMenu 根据路径判断当前高亮菜单
func (h *Handler) getActiveMenu(path string) string {
	switch path {
	case "/dashboard":
		return "dashboard"
	case "/explorer":
		return "explorer"
	case "/recommendations":
		return "recommendations"
	case "/ratings":
		return "ratings"
	default:
		return ""
	}
}

// sessionUser 从 Session 中取当前用户
func (h *Handler) sessionUser(c *gin.Context) *model.SessionUser {
	session := sessions.Default(c)
	if userinfo := session.Get("userinfo"); userinfo != nil {
		if su, ok := userinfo.(model.SessionUser); ok {
			return &su
		}
	}
	return nil
}

// currentLedger 取当前会话的评分账本
// Session 丢失但 JWT 仍有效时（例如清了部分 Cookie），补建一个空账本
func (h *Handler) currentLedger(c *gin.Context) *repository.Ledger {
	if su := h.sessionUser(c); su != nil && su.LedgerID != "" {
		return h.Repos.Ledgers.Get(su.LedgerID)
	}

	username := middleware.GetUsername(c)
	if username == "" {
		return nil
	}

	su := model.SessionUser{
		Username: username,
		LedgerID: h.Repos.Ledgers.Create(),
	}
	session := sessions.Default(c)
	session.Set("userinfo", su)
	session.Save()
	return h.Repos.Ledgers.Get(su.LedgerID)
}

// ==================== 公开页面 ====================

// Home 首页：按登录状态跳转
func (h *Handler) Home(c *gin.Context) {
	if middleware.GetUsername(c) != "" {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.Redirect(http.StatusFound, "/auth/login")
}

// ==================== 认证页面 ====================

// LoginPage 登录页面
func (h *Handler) LoginPage(c *gin.Context) {
	// 如果已经登录，直接跳转到 Dashboard
	if middleware.GetUsername(c) != "" {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.HTML(http.StatusOK, "login.html", h.RenderData(c, gin.H{
		"Title":    "登录 - " + h.Config.SiteName,
		"Redirect": c.Query("redirect"),
	}))
}

// Login 登录处理
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.renderLoginError(c, "请输入用户名和密码")
		return
	}

	redirect := c.PostForm("redirect")
	if redirect == "" {
		redirect = "/dashboard"
	}

	user, err := h.Repos.User.Authenticate(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUnknownUser):
			h.renderLoginError(c, "用户不存在")
		case errors.Is(err, repository.ErrBadPassword):
			h.renderLoginError(c, "密码错误")
		default:
			h.renderLoginError(c, "登录失败，请重试")
		}
		return
	}

	// 生成 JWT
	token, err := middleware.GenerateToken(user.Username, h.Config.AppSecret, h.Config.JWTExpiry)
	if err != nil {
		h.renderLoginError(c, "登录失败，请重试")
		return
	}

	// 设置 Cookie (JWT)
	c.SetCookie("token", token, int(h.Config.JWTExpiry.Seconds()), "/", "", false, true)

	// 为本次登录分配评分账本，保存 UserInfo 到 Session
	// 旧会话还挂着账本时先丢弃，避免在注册表里留下孤儿
	session := sessions.Default(c)
	if su := h.sessionUser(c); su != nil && su.LedgerID != "" {
		h.Repos.Ledgers.Drop(su.LedgerID)
	}
	session.Set("userinfo", model.SessionUser{
		Username: user.Username,
		LedgerID: h.Repos.Ledgers.Create(),
	})
	session.Save()

	c.Redirect(http.StatusFound, redirect)
}

func (h *Handler) renderLoginError(c *gin.Context, msg string) {
	c.HTML(http.StatusOK, "login.html", h.RenderData(c, gin.H{
		"Title": "登录 - " + h.Config.SiteName,
		"Error": msg,
	}))
}

// RegisterPage 注册页面
func (h *Handler) RegisterPage(c *gin.Context) {
	if middleware.GetUsername(c) != "" {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.HTML(http.StatusOK, "register.html", h.RenderData(c, gin.H{
		"Title": "注册 - " + h.Config.SiteName,
	}))
}

// Register 注册处理
func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		h.renderRegisterError(c, "用户名至少 2 个字符，密码至少 6 个字符")
		return
	}

	if req.Password != req.ConfirmPassword {
		h.renderRegisterError(c, "两次输入的密码不一致")
		return
	}

	if _, err := h.Repos.User.Register(req.Username, req.Password); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			h.renderRegisterError(c, "用户名已存在")
			return
		}
		h.renderRegisterError(c, "注册失败，请重试")
		return
	}

	// 注册成功后引导用户登录（不自动登录）
	c.HTML(http.StatusOK, "login.html", h.RenderData(c, gin.H{
		"Title":   "登录 - " + h.Config.SiteName,
		"Success": "注册成功，请登录",
	}))
}

func (h *Handler) renderRegisterError(c *gin.Context, msg string) {
	c.HTML(http.StatusOK, "register.html", h.RenderData(c, gin.H{
		"Title": "注册 - " + h.Config.SiteName,
		"Error": msg,
	}))
}

// Logout 登出
func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", false, true)

	// 丢弃本次会话的评分账本，清理 Session
	session := sessions.Default(c)
	if su := h.sessionUser(c); su != nil && su.LedgerID != "" {
		h.Repos.Ledgers.Drop(su.LedgerID)
	}
	session.Clear()
	session.Save()

	c.Redirect(http.StatusFound, "/auth/login")
}

// ==================== 数据面板（需要登录）====================

// Dashboard 片库统计面板
func (h *Handler) Dashboard(c *gin.Context) {
	stats := h.catalogStats()

	c.HTML(http.StatusOK, "dashboard.html", h.RenderData(c, gin.H{
		"Title": "数据面板 - " + h.Config.SiteName,
		"Stats": stats,
	}))
}

// catalogStats 读统计数据（片库不变，结果可以长缓存）
func (h *Handler) catalogStats() model.CatalogStats {
	const key = "catalog:stats"
	if v, ok := utils.CacheGet(key); ok {
		return v.(model.CatalogStats)
	}
	stats := h.Repos.Catalog.Stats()
	utils.CacheSet(key, stats, time.Hour)
	return stats
}

// Explorer 片库浏览页
func (h *Handler) Explorer(c *gin.Context) {
	minYear, maxYear := h.Repos.Catalog.YearBounds()

	genre := c.DefaultQuery("genre", "All")
	yearFrom := queryInt(c, "year_from", minYear)
	yearTo := queryInt(c, "year_to", maxYear)
	minRating := queryFloat(c, "min_rating", 7.0)

	movies := h.Recommender.Explore(genre, yearFrom, yearTo, minRating)

	c.HTML(http.StatusOK, "explorer.html", h.RenderData(c, gin.H{
		"Title":     "片库浏览 - " + h.Config.SiteName,
		"Movies":    movies,
		"Genres":    h.Repos.Catalog.Genres(),
		"Genre":     genre,
		"YearFrom":  yearFrom,
		"YearTo":    yearTo,
		"MinRating": minRating,
		"MinYear":   minYear,
		"MaxYear":   maxYear,
	}))
}

// Recommendations 推荐页
func (h *Handler) Recommendations(c *gin.Context) {
	minYear, maxYear := h.Repos.Catalog.YearBounds()

	data := gin.H{
		"Title":     "为你推荐 - " + h.Config.SiteName,
		"Genre":     "",
		"Genres":    h.Repos.Catalog.Genres(),
		"MinYear":   minYear,
		"MaxYear":   maxYear,
		"YearFrom":  1990,
		"YearTo":    2010,
		"MinRating": 7.5,
	}

	// 提交了偏好条件才计算推荐
	if genre := c.Query("genre"); genre != "" {
		minRating := queryFloat(c, "min_rating", 7.5)
		yearFrom := queryInt(c, "year_from", minYear)
		yearTo := queryInt(c, "year_to", maxYear)

		data["Genre"] = genre
		data["MinRating"] = minRating
		data["YearFrom"] = yearFrom
		data["YearTo"] = yearTo
		data["Submitted"] = true
		data["Movies"] = h.Recommender.Recommend(genre, minRating, yearFrom, yearTo)
	}

	c.HTML(http.StatusOK, "recommendations.html", h.RenderData(c, data))
}

// Ratings 我的评分页
func (h *Handler) Ratings(c *gin.Context) {
	h.renderRatings(c, gin.H{})
}

// SubmitRating 评分提交处理
func (h *Handler) SubmitRating(c *gin.Context) {
	var req model.SubmitRatingRequest
	if err := c.ShouldBind(&req); err != nil {
		h.renderRatings(c, gin.H{"Error": "评分必须在 1 到 10 之间"})
		return
	}

	if h.Repos.Catalog.FindByTitle(req.MovieTitle) == nil {
		h.renderRatings(c, gin.H{"Error": "片库中没有这部电影"})
		return
	}

	ledger := h.currentLedger(c)
	if ledger == nil {
		c.Redirect(http.StatusFound, "/auth/login")
		return
	}

	if err := ledger.Submit(req.MovieTitle, req.Value, req.Review); err != nil {
		h.renderRatings(c, gin.H{"Error": err.Error()})
		return
	}

	h.renderRatings(c, gin.H{"Success": "感谢你为《" + req.MovieTitle + "》评分！"})
}

// renderRatings 渲染评分页（表单 + 历史记录）
func (h *Handler) renderRatings(c *gin.Context, extra gin.H) {
	data := gin.H{
		"Title":  "我的评分 - " + h.Config.SiteName,
		"Movies": h.Repos.Catalog.List(),
	}
	if ledger := h.currentLedger(c); ledger != nil {
		data["Entries"] = ledger.List()
	}
	for k, v := range extra {
		data[k] = v
	}
	c.HTML(http.StatusOK, "ratings.html", h.RenderData(c, data))
}

// ==================== 查询参数辅助 ====================

func queryInt(c *gin.Context, key string, fallback int) int {
	if val := c.Query(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func queryFloat(c *gin.Context, key string, fallback float64) float64 {
	if val := c.Query(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return fallback
}
