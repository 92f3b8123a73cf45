package model

// Movie 电影模型（内置片库数据）
type Movie struct {
	Title    string  `json:"title"`
	Genre    string  `json:"genre"`
	Year     int     `json:"year"`
	Rating   float64 `json:"rating"`
	Votes    int     `json:"votes"`
	Director string  `json:"director"`
	Runtime  int     `json:"runtime"` // 片长（分钟）
	Revenue  float64 `json:"revenue"` // 票房（百万美元）
}

// GenreCount 分类统计项
type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

// RatingBucket 评分直方图分桶
type RatingBucket struct {
	Low   float64 `json:"low"`  // 区间下界（含）
	High  float64 `json:"high"` // 区间上界（不含）
	Count int     `json:"count"`
}

// ScatterPoint 年份/评分散点图数据
type ScatterPoint struct {
	Title  string  `json:"title"`
	Year   int     `json:"year"`
	Rating float64 `json:"rating"`
	Votes  int     `json:"votes"`
	Genre  string  `json:"genre"`
}

// CatalogStats 片库统计数据（Dashboard 页使用）
type CatalogStats struct {
	TotalMovies   int            `json:"total_movies"`
	AverageRating float64        `json:"average_rating"`
	EarliestYear  int            `json:"earliest_year"`
	LatestYear    int            `json:"latest_year"`
	GenreCounts   []GenreCount   `json:"genre_counts"`
	RatingBuckets []RatingBucket `json:"rating_buckets"`
	ScatterPoints []ScatterPoint `json:"scatter_points"`
}
