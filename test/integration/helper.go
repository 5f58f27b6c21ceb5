package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 集成测试辅助工具
// 运行方式：先启动服务（依赖MySQL+Redis），然后
//
//	BOOKREVIEW_TEST_BASE_URL=http://localhost:8080/api/v1 go test ./test/integration/...
//
// 未设置BOOKREVIEW_TEST_BASE_URL时所有用例跳过，不影响普通单测。

// Timeout HTTP请求超时时间
const Timeout = 10 * time.Second

// BaseURL 返回被测服务地址，未配置时跳过当前测试
func BaseURL(t *testing.T) string {
	t.Helper()

	base := os.Getenv("BOOKREVIEW_TEST_BASE_URL")
	if base == "" {
		t.Skip("未设置BOOKREVIEW_TEST_BASE_URL，跳过集成测试")
	}
	return base
}

// Response 统一响应信封
type Response struct {
	HTTPStatus int             `json:"-"`
	Status     string          `json:"status"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Timestamp  string          `json:"timestamp"`
}

// doJSON 发送请求并解析统一信封
func doJSON(t *testing.T, method, url string, data interface{}, token string) *Response {
	t.Helper()

	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "创建HTTP请求失败")

	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	err = json.Unmarshal(raw, &result)
	require.NoError(t, err, "解析JSON响应失败: %s", string(raw))

	result.HTTPStatus = resp.StatusCode
	return &result
}

// PostJSON 发送POST请求
func PostJSON(t *testing.T, url string, data interface{}, token string) *Response {
	return doJSON(t, http.MethodPost, url, data, token)
}

// GetJSON 发送GET请求
func GetJSON(t *testing.T, url string, token string) *Response {
	return doJSON(t, http.MethodGet, url, nil, token)
}

// RegisterAndLogin 注册一个随机用户并返回其Access Token
func RegisterAndLogin(t *testing.T, base, prefix string) (username, token string) {
	t.Helper()

	username = fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano()%1_000_000_000)
	password := "secret123"

	resp := PostJSON(t, base+"/auth/register", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": password,
	}, "")
	require.Equal(t, http.StatusCreated, resp.HTTPStatus, "注册失败: %s", resp.Message)

	resp = PostJSON(t, base+"/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, resp.HTTPStatus, "登录失败: %s", resp.Message)

	var login struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &login))
	require.NotEmpty(t, login.AccessToken)

	return username, login.AccessToken
}

// CreateBook 创建图书并返回其ID
func CreateBook(t *testing.T, base, token, title, author string) uint {
	t.Helper()

	resp := PostJSON(t, base+"/books", map[string]string{
		"title":  title,
		"author": author,
	}, token)
	require.Equal(t, http.StatusCreated, resp.HTTPStatus, "创建图书失败: %s", resp.Message)

	var created struct {
		BookID uint `json:"book_id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &created))
	require.NotZero(t, created.BookID)

	return created.BookID
}

// SubmitReview 提交评论
func SubmitReview(t *testing.T, base, token string, bookID uint, text string, rating int) *Response {
	t.Helper()
	return PostJSON(t, fmt.Sprintf("%s/books/%d/reviews", base, bookID), map[string]interface{}{
		"text":   text,
		"rating": rating,
	}, token)
}

// BookDetail 图书详情数据
type BookDetail struct {
	BookID        uint    `json:"book_id"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	AverageRating float64 `json:"average_rating"`
	TotalRatings  int64   `json:"total_ratings"`
}

// GetBook 查询图书详情
func GetBook(t *testing.T, base string, bookID uint) BookDetail {
	t.Helper()

	resp := GetJSON(t, fmt.Sprintf("%s/books/%d", base, bookID), "")
	require.Equal(t, http.StatusOK, resp.HTTPStatus, "查询图书失败: %s", resp.Message)

	var detail BookDetail
	require.NoError(t, json.Unmarshal(resp.Data, &detail))
	return detail
}
