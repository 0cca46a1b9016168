package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"vidhub.com/cmd/model"
	"vidhub.com/pkg/database"
	"vidhub.com/pkg/mq"
)

// fakeVideos 内存中的视频存储
type fakeVideos struct {
	mu     sync.Mutex
	videos map[string]*model.Video
	order  []string
}

func newFakeVideos(videos ...*model.Video) *fakeVideos {
	f := &fakeVideos{videos: make(map[string]*model.Video)}
	for _, v := range videos {
		f.videos[v.ID] = v
		f.order = append(f.order, v.ID)
	}
	return f
}

func (f *fakeVideos) CreateVideo(_ context.Context, video *model.Video) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *video
	f.videos[video.ID] = &copied
	f.order = append(f.order, video.ID)
	return nil
}

func (f *fakeVideos) GetVideo(_ context.Context, id string) (*model.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.videos[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	copied := *v
	return &copied, nil
}

func (f *fakeVideos) MGetVideos(_ context.Context, ids []string) ([]*model.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*model.Video, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		if v, ok := f.videos[ids[i]]; ok {
			copied := *v
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeVideos) UpdateVideo(_ context.Context, id string, fields map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.videos[id]
	if !ok {
		return database.ErrNotFound
	}
	for column, value := range fields {
		switch column {
		case "title":
			v.Title = value.(string)
		case "description":
			v.Description = value.(string)
		case "thumbnail":
			v.Thumbnail = value.(string)
		}
	}
	v.UpdatedAt = time.Now()
	return nil
}

func (f *fakeVideos) DeleteVideo(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.videos, id)
	return nil
}

func (f *fakeVideos) IncrViews(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if v, ok := f.videos[id]; ok {
		v.Views++
	}
	return nil
}

func (f *fakeVideos) FlipPublished(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if v, ok := f.videos[id]; ok {
		v.IsPublished = !v.IsPublished
	}
	return nil
}

func (f *fakeVideos) SearchPublished(_ context.Context, q string) ([]*model.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	q = strings.ToLower(q)
	out := make([]*model.Video, 0)
	for _, id := range f.order {
		v, ok := f.videos[id]
		if !ok || !v.IsPublished {
			continue
		}
		if strings.Contains(strings.ToLower(v.Title), q) || strings.Contains(strings.ToLower(v.Description), q) {
			copied := *v
			out = append(out, &copied)
		}
	}
	return out, nil
}

// fakeUsers 记录批量查询次数
type fakeUsers struct {
	mu         sync.Mutex
	users      map[string]*model.User
	mgetCalls  int
	lastLookup []string
}

func newFakeUsers(users ...*model.User) *fakeUsers {
	f := &fakeUsers{users: make(map[string]*model.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUsers) MGetUsers(_ context.Context, ids []string) ([]*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mgetCalls++
	f.lastLookup = ids
	out := make([]*model.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUsers) SearchUsers(_ context.Context, q string) ([]*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	q = strings.ToLower(q)
	out := make([]*model.User, 0)
	for _, id := range []string{alice, bob, carol} {
		u, ok := f.users[id]
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(u.Username), q) || strings.Contains(strings.ToLower(u.FullName), q) {
			out = append(out, u)
		}
	}
	return out, nil
}

// fakeLikes 固定的点赞数
type fakeLikes map[string]int64

func (f fakeLikes) CountVideoLikes(_ context.Context, videoID string) (int64, error) {
	return f[videoID], nil
}

func (f fakeLikes) MCountVideoLikes(_ context.Context, videoIDs []string) (map[string]int64, error) {
	out := make(map[string]int64, len(videoIDs))
	for _, id := range videoIDs {
		if n, ok := f[id]; ok {
			out[id] = n
		}
	}
	return out, nil
}

// fakeComments 按视频分组的评论
type fakeComments map[string][]*model.Comment

func (f fakeComments) ListVideoComments(_ context.Context, videoID string) ([]*model.Comment, error) {
	return f[videoID], nil
}

// fakeStorage 记录上传和删除, failPrefix 对应的上传失败
type fakeStorage struct {
	mu         sync.Mutex
	objects    map[string]bool
	deleted    []string
	failPrefix string
	seq        int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string]bool)}
}

func (f *fakeStorage) Upload(_ context.Context, localPath, prefix string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if prefix == f.failPrefix {
		return "", errors.New("connection reset by peer")
	}
	f.seq++
	url := "http://minio/vidhub/" + prefix + "/" + strings.Repeat("x", f.seq) + "-" + localPath
	f.objects[url] = true
	return url, nil
}

func (f *fakeStorage) Delete(_ context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, url)
	f.deleted = append(f.deleted, url)
	return nil
}

// fakeEvents 记录发布的事件类型
type fakeEvents struct {
	mu    sync.Mutex
	types []string
	err   error
}

func (f *fakeEvents) PublishVideoEvent(_ context.Context, event *mq.VideoEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.types = append(f.types, event.Type)
	return f.err
}

// fakePlaylists 带集合语义的播放列表存储
type fakePlaylists struct {
	mu        sync.Mutex
	playlists map[string]*model.Playlist
	order     []string
	// 模拟并发添加时另一个请求先插入
	raceOnAdd bool
}

func newFakePlaylists() *fakePlaylists {
	return &fakePlaylists{playlists: make(map[string]*model.Playlist)}
}

func (f *fakePlaylists) CreatePlaylist(_ context.Context, playlist *model.Playlist) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *playlist
	copied.Videos = append([]string{}, playlist.Videos...)
	f.playlists[playlist.ID] = &copied
	f.order = append(f.order, playlist.ID)
	return nil
}

func (f *fakePlaylists) GetPlaylist(_ context.Context, id string) (*model.Playlist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.playlists[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	copied := *p
	copied.Videos = append([]string{}, p.Videos...)
	return &copied, nil
}

func (f *fakePlaylists) ListPlaylistsByOwner(_ context.Context, ownerID string) ([]*model.Playlist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*model.Playlist, 0)
	for _, id := range f.order {
		if p, ok := f.playlists[id]; ok && p.OwnerID == ownerID {
			copied := *p
			copied.Videos = append([]string{}, p.Videos...)
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakePlaylists) UpdatePlaylist(_ context.Context, id, name, description string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.playlists[id]; ok {
		p.Name = name
		p.Description = description
	}
	return nil
}

func (f *fakePlaylists) DeletePlaylist(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.playlists, id)
	return nil
}

func (f *fakePlaylists) HasVideo(_ context.Context, playlistID, videoID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.playlists[playlistID]
	if !ok {
		return false, nil
	}
	for _, id := range p.Videos {
		if id == videoID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePlaylists) AddVideo(_ context.Context, playlistID, videoID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.playlists[playlistID]
	if f.raceOnAdd {
		p.Videos = append(p.Videos, videoID)
		return gorm.ErrDuplicatedKey
	}
	for _, id := range p.Videos {
		if id == videoID {
			return gorm.ErrDuplicatedKey
		}
	}
	p.Videos = append(p.Videos, videoID)
	return nil
}

func (f *fakePlaylists) RemoveVideo(_ context.Context, playlistID, videoID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.playlists[playlistID]
	for i, id := range p.Videos {
		if id == videoID {
			p.Videos = append(p.Videos[:i], p.Videos[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// fakeIndex 外部索引, 可能包含已经过期的id
type fakeIndex []string

func (f fakeIndex) MatchVideoIDs(context.Context, string) ([]string, error) {
	return f, nil
}
