package filter

import (
	"context"
	"encoding/json"

	"github.com/eventrec/eventrec/core"
)

// BlocklistFilter 过滤掉被运营下架/屏蔽的事件。
// 名单来源可以是内存列表、存储中的 JSON 数组，或两者并用。
type BlocklistFilter struct {
	// EventIDs 内存名单
	EventIDs []string

	// Store/Key 存储中的名单（JSON 字符串数组），可选
	Store core.Store
	Key   string
}

func (f *BlocklistFilter) Name() string {
	return "filter.blocklist"
}

func (f *BlocklistFilter) ShouldFilter(
	ctx context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}

	for _, id := range f.EventIDs {
		if item.ID == id {
			return true, nil
		}
	}

	if f.Store != nil && f.Key != "" {
		data, err := f.Store.Get(ctx, f.Key)
		if err != nil {
			if core.IsStoreNotFound(err) {
				return false, nil
			}
			return false, err
		}
		var ids []string
		if err := json.Unmarshal(data, &ids); err != nil {
			return false, err
		}
		for _, id := range ids {
			if item.ID == id {
				return true, nil
			}
		}
	}

	return false, nil
}

var _ Filter = (*BlocklistFilter)(nil)
