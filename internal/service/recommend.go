package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/user/cinesight/internal/model"
	"github.com/user/cinesight/internal/repository"
	"github.com/user/cinesight/internal/utils"
	"golang.org/x/sync/singleflight"
)

// RecommendLimit 推荐模式最多返回的条数
const RecommendLimit = 5

// RecommendService 片库查询服务（探索过滤 + 规则推荐）
type RecommendService struct {
	catalog *repository.CatalogRepository
	cache   *utils.QueryCache[[]model.Movie]
	sf      singleflight.Group
}

// NewRecommendService 创建查询服务
func NewRecommendService(catalog *repository.CatalogRepository) *RecommendService {
	return &RecommendService{
		catalog: catalog,
		cache:   utils.NewQueryCache[[]model.Movie](256, time.Hour),
	}
}

// Recommend 按偏好条件返回评分最高的前 5 部电影
// 条件：分类包含 genre（不区分大小写）、评分不低于 minRating（含）、年份在 [yearFrom, yearTo] 内
// 排序：评分降序，评分相同保持片库原始顺序
func (s *RecommendService) Recommend(genre string, minRating float64, yearFrom, yearTo int) []model.Movie {
	// 评分下限必须按精确值入键，格式化截断会让不同条件命中同一缓存
	key := fmt.Sprintf("rec|%s|%s|%d|%d",
		strings.ToLower(genre), strconv.FormatFloat(minRating, 'g', -1, 64), yearFrom, yearTo)
	if hit, ok := s.cache.Get(key); ok {
		return hit
	}

	// 使用 singleflight 避免并发计算同一组条件
	val, _, _ := s.sf.Do(key, func() (interface{}, error) {
		matches := s.filterAndSort(genre, minRating, yearFrom, yearTo)
		s.cache.Set(key, matches)
		return matches, nil
	})
	return val.([]model.Movie)
}

// filterAndSort 过滤、按评分降序稳定排序并截取前 5
func (s *RecommendService) filterAndSort(genre string, minRating float64, yearFrom, yearTo int) []model.Movie {
	needle := strings.ToLower(genre)

	var matches []model.Movie
	for _, m := range s.catalog.List() {
		if !strings.Contains(strings.ToLower(m.Genre), needle) {
			continue
		}
		if m.Rating < minRating {
			continue
		}
		if m.Year < yearFrom || m.Year > yearTo {
			continue
		}
		matches = append(matches, m)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Rating > matches[j].Rating
	})

	if len(matches) > RecommendLimit {
		matches = matches[:RecommendLimit]
	}
	return matches
}

// Explore 探索模式过滤：分类精确匹配（"All" 或空表示不限），年份范围，评分下限（含）
// 不排序，保持片库原始顺序，不限制条数
func (s *RecommendService) Explore(genre string, yearFrom, yearTo int, minRating float64) []model.Movie {
	var matches []model.Movie
	for _, m := range s.catalog.List() {
		if genre != "" && genre != "All" && m.Genre != genre {
			continue
		}
		if m.Year < yearFrom || m.Year > yearTo {
			continue
		}
		if m.Rating < minRating {
			continue
		}
		matches = append(matches, m)
	}
	return matches
}
