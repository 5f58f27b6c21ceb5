package dto

// SubmitReviewRequest 提交评论请求
// rating的[1,5]边界由领域服务校验，这里只要求字段存在
type SubmitReviewRequest struct {
	Text   string `json:"text" binding:"required"`
	Rating int    `json:"rating" binding:"required"`
}
