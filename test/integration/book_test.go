package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBookAggregation 两个用户分别打4分和5分后，详情显示平均4.5/共2条
func TestBookAggregation(t *testing.T) {
	base := BaseURL(t)

	_, token1 := RegisterAndLogin(t, base, "agg_u1")
	_, token2 := RegisterAndLogin(t, base, "agg_u2")

	suffix := time.Now().UnixNano() % 1_000_000_000
	bookID := CreateBook(t, base, token1, fmt.Sprintf("Dune %d", suffix), "Frank Herbert")

	t.Run("零评论时统计为0", func(t *testing.T) {
		detail := GetBook(t, base, bookID)
		assert.Equal(t, 0.0, detail.AverageRating)
		assert.Equal(t, int64(0), detail.TotalRatings)
	})

	resp := SubmitReview(t, base, token1, bookID, "经典科幻", 4)
	require.Equal(t, http.StatusCreated, resp.HTTPStatus)
	resp = SubmitReview(t, base, token2, bookID, "沙丘宇宙的起点", 5)
	require.Equal(t, http.StatusCreated, resp.HTTPStatus)

	t.Run("平均分为4.5共2条", func(t *testing.T) {
		detail := GetBook(t, base, bookID)
		assert.Equal(t, 4.5, detail.AverageRating)
		assert.Equal(t, int64(2), detail.TotalRatings)
	})
}

// TestBookSortByRating 按平均分降序排列，零评论图书排在最后
func TestBookSortByRating(t *testing.T) {
	base := BaseURL(t)

	_, token := RegisterAndLogin(t, base, "sort_u1")
	_, token2 := RegisterAndLogin(t, base, "sort_u2")

	// 用唯一的搜索词隔离本测试的数据
	marker := fmt.Sprintf("sorttest%d", time.Now().UnixNano()%1_000_000_000)

	low := CreateBook(t, base, token, marker+" low", "Author A")
	high := CreateBook(t, base, token, marker+" high", "Author B")
	zero := CreateBook(t, base, token, marker+" zero", "Author C")

	// low平均3.0，high平均5.0，zero无评论
	resp := SubmitReview(t, base, token, low, "一般", 3)
	require.Equal(t, http.StatusCreated, resp.HTTPStatus)
	resp = SubmitReview(t, base, token2, low, "还行", 3)
	require.Equal(t, http.StatusCreated, resp.HTTPStatus)
	resp = SubmitReview(t, base, token, high, "极好", 5)
	require.Equal(t, http.StatusCreated, resp.HTTPStatus)

	listResp := GetJSON(t, base+"/books?search="+marker+"&sort=rating&order=desc", "")
	require.Equal(t, http.StatusOK, listResp.HTTPStatus)

	var data struct {
		List []struct {
			BookID        uint    `json:"book_id"`
			AverageRating float64 `json:"average_rating"`
		} `json:"list"`
		Pagination struct {
			Total      int64 `json:"total"`
			TotalPages int   `json:"total_pages"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(listResp.Data, &data))

	require.Len(t, data.List, 3)
	assert.Equal(t, high, data.List[0].BookID, "5.0分的排第一")
	assert.Equal(t, low, data.List[1].BookID, "3.0分的排第二")
	assert.Equal(t, zero, data.List[2].BookID, "零评论的排最后")
	assert.Equal(t, int64(3), data.Pagination.Total)
	assert.Equal(t, 1, data.Pagination.TotalPages)
}

// TestBookNotFoundAndBadRequest 不存在与格式错误的ID区分对待
func TestBookNotFoundAndBadRequest(t *testing.T) {
	base := BaseURL(t)

	t.Run("不存在的图书返回404", func(t *testing.T) {
		resp := GetJSON(t, base+"/books/999999999", "")
		assert.Equal(t, http.StatusNotFound, resp.HTTPStatus)
	})

	t.Run("非数字ID返回400", func(t *testing.T) {
		resp := GetJSON(t, base+"/books/not-a-number", "")
		assert.Equal(t, http.StatusBadRequest, resp.HTTPStatus)
	})

	t.Run("未登录不能创建图书", func(t *testing.T) {
		resp := PostJSON(t, base+"/books", map[string]string{
			"title":  "未授权的书",
			"author": "无名氏",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, resp.HTTPStatus)
	})
}
