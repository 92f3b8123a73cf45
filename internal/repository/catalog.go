package repository

import (
	"math"

	"github.com/user/cinesight/internal/model"
)

// CatalogRepository 片库仓库
// 片库是进程启动时写死的静态数据，只读，无加载/刷新逻辑
type CatalogRepository struct {
	movies []model.Movie
}

// NewCatalogRepository 创建片库仓库（内置种子数据）
func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{movies: seedMovies()}
}

// seedMovies 内置片库
func seedMovies() []model.Movie {
	return []model.Movie{
		{Title: "The Shawshank Redemption", Genre: "Drama", Year: 1994, Rating: 9.3, Votes: 2500000, Director: "Frank Darabont", Runtime: 142, Revenue: 58.3},
		{Title: "The Godfather", Genre: "Crime", Year: 1972, Rating: 9.2, Votes: 1700000, Director: "Francis Ford Coppola", Runtime: 175, Revenue: 245.1},
		{Title: "The Dark Knight", Genre: "Action", Year: 2008, Rating: 9.0, Votes: 2300000, Director: "Christopher Nolan", Runtime: 152, Revenue: 1004.6},
		{Title: "Pulp Fiction", Genre: "Crime", Year: 1994, Rating: 8.9, Votes: 1900000, Director: "Quentin Tarantino", Runtime: 154, Revenue: 213.9},
		{Title: "Forrest Gump", Genre: "Drama", Year: 1994, Rating: 8.8, Votes: 1800000, Director: "Robert Zemeckis", Runtime: 142, Revenue: 677.9},
		{Title: "Inception", Genre: "Action", Year: 2010, Rating: 8.8, Votes: 2100000, Director: "Christopher Nolan", Runtime: 148, Revenue: 836.8},
		{Title: "The Matrix", Genre: "Sci-Fi", Year: 1999, Rating: 8.7, Votes: 1700000, Director: "Lana Wachowski", Runtime: 136, Revenue: 463.5},
		{Title: "Goodfellas", Genre: "Crime", Year: 1990, Rating: 8.7, Votes: 1000000, Director: "Martin Scorsese", Runtime: 146, Revenue: 47.1},
		{Title: "The Silence of the Lambs", Genre: "Thriller", Year: 1991, Rating: 8.6, Votes: 1300000, Director: "Jonathan Demme", Runtime: 118, Revenue: 272.7},
		{Title: "Star Wars: Episode V", Genre: "Sci-Fi", Year: 1980, Rating: 8.7, Votes: 1200000, Director: "Irvin Kershner", Runtime: 124, Revenue: 538.4},
	}
}

// List 返回全部电影（拷贝，调用方可随意排序）
func (r *CatalogRepository) List() []model.Movie {
	out := make([]model.Movie, len(r.movies))
	copy(out, r.movies)
	return out
}

// Len 片库数量
func (r *CatalogRepository) Len() int {
	return len(r.movies)
}

// FindByTitle 按标题精确查找
func (r *CatalogRepository) FindByTitle(title string) *model.Movie {
	for i := range r.movies {
		if r.movies[i].Title == title {
			m := r.movies[i]
			return &m
		}
	}
	return nil
}

// Genres 返回去重后的分类列表（保持片库中首次出现的顺序）
func (r *CatalogRepository) Genres() []string {
	seen := map[string]bool{}
	var genres []string
	for _, m := range r.movies {
		if !seen[m.Genre] {
			seen[m.Genre] = true
			genres = append(genres, m.Genre)
		}
	}
	return genres
}

// YearBounds 返回片库中最早和最晚的年份
func (r *CatalogRepository) YearBounds() (int, int) {
	if len(r.movies) == 0 {
		return 0, 0
	}
	min, max := r.movies[0].Year, r.movies[0].Year
	for _, m := range r.movies[1:] {
		if m.Year < min {
			min = m.Year
		}
		if m.Year > max {
			max = m.Year
		}
	}
	return min, max
}

// Stats 计算片库统计数据
func (r *CatalogRepository) Stats() model.CatalogStats {
	stats := model.CatalogStats{TotalMovies: len(r.movies)}
	if len(r.movies) == 0 {
		return stats
	}

	// 均值与年份范围
	var sum float64
	minYear, maxYear := r.YearBounds()
	minRating, maxRating := r.movies[0].Rating, r.movies[0].Rating
	for _, m := range r.movies {
		sum += m.Rating
		if m.Rating < minRating {
			minRating = m.Rating
		}
		if m.Rating > maxRating {
			maxRating = m.Rating
		}
	}
	stats.AverageRating = math.Round(sum/float64(len(r.movies))*10) / 10
	stats.EarliestYear = minYear
	stats.LatestYear = maxYear

	// 分类统计（保持首次出现顺序）
	counts := map[string]int{}
	for _, genre := range r.Genres() {
		counts[genre] = 0
	}
	for _, m := range r.movies {
		counts[m.Genre]++
	}
	for _, genre := range r.Genres() {
		stats.GenreCounts = append(stats.GenreCounts, model.GenreCount{Genre: genre, Count: counts[genre]})
	}

	// 评分直方图：在 [min, max] 上切 10 个等宽分桶
	const bins = 10
	width := (maxRating - minRating) / bins
	if width == 0 {
		stats.RatingBuckets = []model.RatingBucket{{Low: minRating, High: maxRating, Count: len(r.movies)}}
	} else {
		buckets := make([]model.RatingBucket, bins)
		for i := range buckets {
			buckets[i].Low = minRating + float64(i)*width
			buckets[i].High = buckets[i].Low + width
		}
		for _, m := range r.movies {
			idx := int((m.Rating - minRating) / width)
			if idx >= bins {
				idx = bins - 1 // 最大值落在最后一个桶
			}
			buckets[idx].Count++
		}
		stats.RatingBuckets = buckets
	}

	// 散点图数据
	for _, m := range r.movies {
		stats.ScatterPoints = append(stats.ScatterPoints, model.ScatterPoint{
			Title:  m.Title,
			Year:   m.Year,
			Rating: m.Rating,
			Votes:  m.Votes,
			Genre:  m.Genre,
		})
	}

	return stats
}
