package util

import "errors"

var (
	ErrUserNotFound      = errors.New("用户不存在")
	ErrEmailRegistered   = errors.New("该邮箱已被注册")
	ErrInvalidCredential = errors.New("invalid credentials")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrClassNotFound     = errors.New("class not found")
	ErrQuizNotFound      = errors.New("quiz not found")
	ErrAttemptNotFound   = errors.New("attempt not found")
	ErrDocumentNotFound  = errors.New("文档不存在")
	ErrSummaryNotFound   = errors.New("summary not found")
	ErrEmptyTitle        = errors.New("标题不能为空")
	ErrNoQuestions       = errors.New("quiz must contain at least one question")
	ErrCodeExhausted     = errors.New("invite code generation exhausted retries")
)
