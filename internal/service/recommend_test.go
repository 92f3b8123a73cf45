package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/cinesight/internal/model"
	"github.com/user/cinesight/internal/repository"
)

func newTestService() *RecommendService {
	return NewRecommendService(repository.NewCatalogRepository())
}

func titles(movies []model.Movie) []string {
	out := make([]string, 0, len(movies))
	for _, m := range movies {
		out = append(out, m.Title)
	}
	return out
}

func TestRecommendCrimeScenario(t *testing.T) {
	svc := newTestService()

	// Crime、评分 ≥ 8.5、年份 1970-2000：按评分降序恰好三部
	got := svc.Recommend("Crime", 8.5, 1970, 2000)
	assert.Equal(t, []string{"The Godfather", "Pulp Fiction", "Goodfellas"}, titles(got))
	assert.Equal(t, 9.2, got[0].Rating)
	assert.Equal(t, 8.9, got[1].Rating)
	assert.Equal(t, 8.7, got[2].Rating)
}

func TestRecommendTruncatesToFive(t *testing.T) {
	svc := newTestService()

	// 空子串匹配全部分类，命中 10 部，只取评分最高的 5 部
	got := svc.Recommend("", 0, 1900, 2100)
	require.Len(t, got, RecommendLimit)
	assert.Equal(t, []string{
		"The Shawshank Redemption",
		"The Godfather",
		"The Dark Knight",
		"Pulp Fiction",
		"Forrest Gump",
	}, titles(got))
}

func TestRecommendGenreCaseInsensitive(t *testing.T) {
	svc := newTestService()

	got := svc.Recommend("crime", 8.5, 1970, 2000)
	assert.Equal(t, []string{"The Godfather", "Pulp Fiction", "Goodfellas"}, titles(got))
}

func TestRecommendInclusiveRatingFloor(t *testing.T) {
	svc := newTestService()

	// 下限与片目评分恰好相等时包含该片
	got := svc.Recommend("Thriller", 8.6, 1900, 2100)
	assert.Equal(t, []string{"The Silence of the Lambs"}, titles(got))

	// 略高于 8.6 时排除
	got = svc.Recommend("Thriller", 8.7, 1900, 2100)
	assert.Empty(t, got)
}

func TestRecommendStableTieOrder(t *testing.T) {
	svc := newTestService()

	// Matrix 和 Star Wars 同为 8.7，保持片库原始顺序
	got := svc.Recommend("Sci-Fi", 0, 1900, 2100)
	assert.Equal(t, []string{"The Matrix", "Star Wars: Episode V"}, titles(got))
}

func TestRecommendYearRangeInclusive(t *testing.T) {
	svc := newTestService()

	// 边界年份包含在内
	got := svc.Recommend("Crime", 0, 1972, 1990)
	assert.Equal(t, []string{"The Godfather", "Goodfellas"}, titles(got))
}

func TestRecommendEmptyResult(t *testing.T) {
	svc := newTestService()

	// 无命中不是错误，返回空集
	got := svc.Recommend("Crime", 9.9, 1970, 2000)
	assert.Empty(t, got)
}

func TestRecommendNearbyFloorsDoNotShareCache(t *testing.T) {
	svc := newTestService()

	// 8.64 无命中；随后查 8.6 必须重新计算，不能命中 8.64 的缓存
	assert.Empty(t, svc.Recommend("Thriller", 8.64, 1900, 2100))

	got := svc.Recommend("Thriller", 8.6, 1900, 2100)
	assert.Equal(t, []string{"The Silence of the Lambs"}, titles(got))

	// 反向顺序同样互不污染
	svc = newTestService()
	assert.Equal(t, []string{"The Silence of the Lambs"}, titles(svc.Recommend("Thriller", 8.6, 1900, 2100)))
	assert.Empty(t, svc.Recommend("Thriller", 8.64, 1900, 2100))
}

func TestRecommendCachedResultStable(t *testing.T) {
	svc := newTestService()

	first := svc.Recommend("Crime", 8.5, 1970, 2000)
	second := svc.Recommend("Crime", 8.5, 1970, 2000)
	assert.Equal(t, titles(first), titles(second))
}

func TestExploreAll(t *testing.T) {
	svc := newTestService()

	// "All" 不限分类，保持片库原始顺序，不限条数
	got := svc.Explore("All", 1900, 2100, 0)
	require.Len(t, got, 10)
	assert.Equal(t, "The Shawshank Redemption", got[0].Title)
	assert.Equal(t, "Star Wars: Episode V", got[9].Title)
}

func TestExploreGenreEquality(t *testing.T) {
	svc := newTestService()

	// 探索模式是精确匹配，不是子串匹配
	got := svc.Explore("Crime", 1900, 2100, 0)
	assert.Equal(t, []string{"The Godfather", "Pulp Fiction", "Goodfellas"}, titles(got))

	assert.Empty(t, svc.Explore("Cri", 1900, 2100, 0))
}

func TestExploreFilters(t *testing.T) {
	svc := newTestService()

	// 评分下限为闭区间
	got := svc.Explore("All", 1990, 1999, 8.8)
	assert.Equal(t, []string{"The Shawshank Redemption", "Pulp Fiction", "Forrest Gump"}, titles(got))

	// 年份窗口外全部排除
	assert.Empty(t, svc.Explore("Action", 1900, 1950, 0))
}
