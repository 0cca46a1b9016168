package compose

// DistinctIDs 提取去重后的非空id, 保持首次出现的顺序
func DistinctIDs[T any](items []T, id func(T) string) []string {
	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, item := range items {
		key := id(item)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		ids = append(ids, key)
	}
	return ids
}

// IndexBy 按id建立哈希索引, 用于批量查询后的内存join
func IndexBy[T any](items []T, id func(T) string) map[string]T {
	index := make(map[string]T, len(items))
	for _, item := range items {
		index[id(item)] = item
	}
	return index
}
