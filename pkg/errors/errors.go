package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ── 错误分类 ──
//
// 业务错误统一归入两类：ValidationError（输入结构不合法）与 NotFoundError（引用的
// 分流/科目/时段不存在）。各模块用 Validation / NotFound 构造具名哨兵错误，
// Handler 层通过 errors.Is(err, ErrValidation) 等判断映射 HTTP 状态码。

var (
	ErrValidation = errors.New("参数校验失败")
	ErrNotFound   = errors.New("资源不存在")
)

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

// Validation 构造一个归类为 ErrValidation 的错误
func Validation(msg string) error {
	return &kindError{kind: ErrValidation, msg: msg}
}

// NotFound 构造一个归类为 ErrNotFound 的错误
func NotFound(msg string) error {
	return &kindError{kind: ErrNotFound, msg: msg}
}

// FailedPair 批量创建中失败的 (分流, 星期) 组合
type FailedPair struct {
	StreamID  string `json:"stream_id"`
	DayOfWeek int    `json:"day_of_week"`
	Reason    string `json:"reason"`
}

// PartialBatchFailure 批量创建部分失败：成功条数与失败组合一并返回，不回滚已创建的时段
type PartialBatchFailure struct {
	Created int
	Failed  []FailedPair
}

func (e *PartialBatchFailure) Error() string {
	pairs := make([]string, 0, len(e.Failed))
	for _, f := range e.Failed {
		pairs = append(pairs, fmt.Sprintf("%s/%d", f.StreamID, f.DayOfWeek))
	}
	return fmt.Sprintf("批量创建部分失败: 成功 %d 条，失败 %d 条 [%s]",
		e.Created, len(e.Failed), strings.Join(pairs, ", "))
}
