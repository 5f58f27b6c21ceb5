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

// TestReviewDuplicate 同一用户对同一图书只能评论一次
func TestReviewDuplicate(t *testing.T) {
	base := BaseURL(t)

	username, token := RegisterAndLogin(t, base, "dup_rev")
	bookID := CreateBook(t, base, token,
		fmt.Sprintf("重复评论测试 %d", time.Now().UnixNano()%1_000_000_000), "某作者")

	resp := SubmitReview(t, base, token, bookID, "第一次评论", 4)
	require.Equal(t, http.StatusCreated, resp.HTTPStatus)

	t.Run("第二次评论被拒绝", func(t *testing.T) {
		resp := SubmitReview(t, base, token, bookID, "第二次评论", 5)
		assert.Equal(t, http.StatusBadRequest, resp.HTTPStatus)
		assert.Equal(t, "error", resp.Status)
	})

	t.Run("评论列表中只有一条该用户的评论", func(t *testing.T) {
		resp := GetJSON(t, fmt.Sprintf("%s/books/%d/reviews", base, bookID), "")
		require.Equal(t, http.StatusOK, resp.HTTPStatus)

		var data struct {
			List []struct {
				Username string `json:"username"`
				Text     string `json:"text"`
			} `json:"list"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &data))

		count := 0
		for _, item := range data.List {
			if item.Username == username {
				count++
				assert.Equal(t, "第一次评论", item.Text)
			}
		}
		assert.Equal(t, 1, count)
	})
}

// TestReviewValidation 评论准入校验
func TestReviewValidation(t *testing.T) {
	base := BaseURL(t)

	_, token := RegisterAndLogin(t, base, "rev_val")
	bookID := CreateBook(t, base, token,
		fmt.Sprintf("校验测试 %d", time.Now().UnixNano()%1_000_000_000), "某作者")

	t.Run("评分越界", func(t *testing.T) {
		resp := SubmitReview(t, base, token, bookID, "评分太高", 6)
		assert.Equal(t, http.StatusBadRequest, resp.HTTPStatus)

		resp = SubmitReview(t, base, token, bookID, "评分太低", 0)
		assert.Equal(t, http.StatusBadRequest, resp.HTTPStatus)
	})

	t.Run("空内容", func(t *testing.T) {
		resp := SubmitReview(t, base, token, bookID, "   ", 3)
		assert.Equal(t, http.StatusBadRequest, resp.HTTPStatus)
	})

	t.Run("图书不存在返回404", func(t *testing.T) {
		resp := SubmitReview(t, base, token, 999999999, "好书", 4)
		assert.Equal(t, http.StatusNotFound, resp.HTTPStatus)
	})

	t.Run("未登录返回401", func(t *testing.T) {
		resp := SubmitReview(t, base, "", bookID, "好书", 4)
		assert.Equal(t, http.StatusUnauthorized, resp.HTTPStatus)
	})

	t.Run("校验失败不产生写入", func(t *testing.T) {
		detail := GetBook(t, base, bookID)
		assert.Equal(t, int64(0), detail.TotalRatings)
	})
}

// TestUserProfileReviews 个人主页的评论带图书信息且最新的在前
func TestUserProfileReviews(t *testing.T) {
	base := BaseURL(t)

	_, token := RegisterAndLogin(t, base, "profile_rev")
	suffix := time.Now().UnixNano() % 1_000_000_000

	first := CreateBook(t, base, token, fmt.Sprintf("第一本 %d", suffix), "作者甲")
	second := CreateBook(t, base, token, fmt.Sprintf("第二本 %d", suffix), "作者乙")

	resp := SubmitReview(t, base, token, first, "先评这本", 4)
	require.Equal(t, http.StatusCreated, resp.HTTPStatus)
	time.Sleep(1100 * time.Millisecond) // 保证created_at可区分（秒级精度）
	resp = SubmitReview(t, base, token, second, "再评这本", 5)
	require.Equal(t, http.StatusCreated, resp.HTTPStatus)

	profResp := GetJSON(t, base+"/users/profile", token)
	require.Equal(t, http.StatusOK, profResp.HTTPStatus)

	var profile struct {
		Reviews []struct {
			BookID    uint   `json:"book_id"`
			BookTitle string `json:"book_title"`
			Text      string `json:"text"`
		} `json:"reviews"`
	}
	require.NoError(t, json.Unmarshal(profResp.Data, &profile))

	require.Len(t, profile.Reviews, 2)
	assert.Equal(t, second, profile.Reviews[0].BookID, "最新评论在前")
	assert.NotEmpty(t, profile.Reviews[0].BookTitle, "主页评论应带图书标题")
	assert.Equal(t, first, profile.Reviews[1].BookID)
}
