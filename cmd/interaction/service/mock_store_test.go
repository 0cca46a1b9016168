package service

import (
	"context"
	"sync"

	"vidhub.com/cmd/model"
	"vidhub.com/pkg/database"
	"vidhub.com/pkg/toggle"
)

// mockVideos 内存中的视频存储
type mockVideos struct {
	videos map[string]*model.Video
}

func (m *mockVideos) GetVideo(_ context.Context, id string) (*model.Video, error) {
	v, ok := m.videos[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	copied := *v
	return &copied, nil
}

func (m *mockVideos) MGetVideos(_ context.Context, ids []string) ([]*model.Video, error) {
	out := make([]*model.Video, 0, len(ids))
	// 与数据库一样不保证顺序
	for i := len(ids) - 1; i >= 0; i-- {
		if v, ok := m.videos[ids[i]]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

// mockComments 内存中的评论存储
type mockComments struct {
	comments map[string]*model.Comment
}

func (m *mockComments) CreateComment(_ context.Context, c *model.Comment) error {
	if m.comments == nil {
		m.comments = make(map[string]*model.Comment)
	}
	copied := *c
	m.comments[c.ID] = &copied
	return nil
}

func (m *mockComments) GetComment(_ context.Context, id string) (*model.Comment, error) {
	c, ok := m.comments[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (m *mockComments) UpdateComment(_ context.Context, c *model.Comment) error {
	if stored, ok := m.comments[c.ID]; ok {
		stored.Content = c.Content
	}
	return nil
}

func (m *mockComments) DeleteComment(_ context.Context, id string) error {
	delete(m.comments, id)
	return nil
}

// mockLikes 带唯一约束的点赞存储
type mockLikes struct {
	mu   sync.Mutex
	rows []toggle.Key
}

func (m *mockLikes) index(key toggle.Key) int {
	for i, row := range m.rows {
		if row == key {
			return i
		}
	}
	return -1
}

func (m *mockLikes) Exists(_ context.Context, key toggle.Key) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.index(key) >= 0, nil
}

func (m *mockLikes) Insert(_ context.Context, key toggle.Key) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.index(key) >= 0 {
		return toggle.ErrDuplicate
	}
	m.rows = append(m.rows, key)
	return nil
}

func (m *mockLikes) Remove(_ context.Context, key toggle.Key) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(key)
	if i < 0 {
		return false, nil
	}
	m.rows = append(m.rows[:i], m.rows[i+1:]...)
	return true, nil
}

func (m *mockLikes) ListLikedVideoIDs(_ context.Context, actorID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0)
	for _, row := range m.rows {
		if row.Kind == toggle.VideoLike && row.ActorID == actorID {
			ids = append(ids, row.TargetID)
		}
	}
	return ids, nil
}
