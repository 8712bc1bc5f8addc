package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// selectAll 请求中表示"全部"的字面量
const selectAll = "all"

// Selection 批量操作的选择轴：要么是全部（All），要么是显式列表。
// JSON 形态为字符串 "all" 或数组，例如 "stream_ids": "all" / "stream_ids": ["a", "b"]。
// 在批量引擎入口处一次性解析为具体列表，下游不再感知 "all" 字面量。
type Selection[T comparable] struct {
	All   bool
	Items []T
}

// SelectAll 构造"全部"选择
func SelectAll[T comparable]() Selection[T] {
	return Selection[T]{All: true}
}

// SelectExplicit 构造显式列表选择
func SelectExplicit[T comparable](items ...T) Selection[T] {
	return Selection[T]{Items: items}
}

// IsZero 既非全部也无任何元素（请求中缺省该字段）
func (s Selection[T]) IsZero() bool {
	return !s.All && len(s.Items) == 0
}

// Distinct 返回去重后的显式列表，保留首次出现顺序
func (s Selection[T]) Distinct() []T {
	seen := make(map[T]struct{}, len(s.Items))
	out := make([]T, 0, len(s.Items))
	for _, it := range s.Items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}

// UnmarshalJSON 接受 "all" 或数组
func (s *Selection[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = Selection[T]{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var lit string
		if err := json.Unmarshal(data, &lit); err != nil {
			return err
		}
		if lit != selectAll {
			return fmt.Errorf("选择范围只能是 %q 或列表，实际为 %q", selectAll, lit)
		}
		*s = Selection[T]{All: true}
		return nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("选择范围只能是 %q 或列表: %w", selectAll, err)
	}
	*s = Selection[T]{Items: items}
	return nil
}

// MarshalJSON 与 UnmarshalJSON 对称
func (s Selection[T]) MarshalJSON() ([]byte, error) {
	if s.All {
		return json.Marshal(selectAll)
	}
	if s.Items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.Items)
}
