// Package store 提供存储实现与快照数据源。
// 接口定义在 core 包（core.Store / core.KeyValueStore），此包只包含实现：
//
//	var s core.Store = store.NewMemoryStore()
//	var kv core.KeyValueStore = redisStore
//
// SnapshotSource 在任意 core.Store 之上实现推荐核心需要的三类只读数据源。
package store
