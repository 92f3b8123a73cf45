package model

import (
	"time"
)

// RatingEntry 用户对某部电影的评分记录（仅在会话内有效）
type RatingEntry struct {
	MovieTitle  string    `json:"movie_title"`
	Value       int       `json:"value"`
	Review      string    `json:"review"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// SubmitRatingRequest 评分提交表单
type SubmitRatingRequest struct {
	MovieTitle string `form:"movie_title" json:"movie_title" binding:"required"`
	Value      int    `form:"value" json:"value" binding:"required,min=1,max=10"`
	Review     string `form:"review" json:"review" binding:"max=2000"`
}

// RecommendRequest 推荐条件表单
type RecommendRequest struct {
	Genre     string  `form:"genre" json:"genre" binding:"required"`
	MinRating float64 `form:"min_rating" json:"min_rating" binding:"min=0,max=10"`
	YearFrom  int     `form:"year_from" json:"year_from"`
	YearTo    int     `form:"year_to" json:"year_to"`
}
