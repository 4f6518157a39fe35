package util

import "errors"

var (
	ErrUserNotFound        = errors.New("用户不存在")
	ErrEmailRegistered     = errors.New("该邮箱已被注册")
	ErrAttemptNotFound     = errors.New("attempt not found")
	ErrAttemptForbidden    = errors.New("attempt belongs to another user")
	ErrScopeRequired       = errors.New("chapter_id or topic_ids required")
	ErrScopeAmbiguous      = errors.New("provide either chapter_id or topic_ids, not both")
	ErrAnswersRequired     = errors.New("answers must be a non-empty array")
	ErrQuestionNotFound    = errors.New("question not found")
	ErrTooFewOptions       = errors.New("question needs at least two non-empty options")
	ErrBadOptionKey        = errors.New("option key must be a single letter a-h")
	ErrCorrectKeyNotListed = errors.New("correct key does not match any option")
)
