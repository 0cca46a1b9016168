package service

import (
	"context"
	"strings"
	"sync"

	"github.com/cloudwego/hertz/pkg/common/hlog"

	"vidhub.com/cmd/model"
	"vidhub.com/pkg/compose"
	"vidhub.com/pkg/errno"
)

// SearchResult 两个字段总是存在, 没有结果时为空数组
type SearchResult struct {
	Videos   []*model.SearchVideo `json:"videos"`
	Channels []*model.UserSummary `json:"channels"`
}

// SearchService 同时搜索视频和频道
type SearchService struct {
	matcher VideoMatcher
	users   UserReader
	likes   LikeCounter
}

func NewSearchService(matcher VideoMatcher, users UserReader, likes LikeCounter) *SearchService {
	return &SearchService{matcher: matcher, users: users, likes: likes}
}

// Search 视频和频道两个子查询并发执行, 任一失败整体失败
func (s *SearchService) Search(ctx context.Context, q string) (*SearchResult, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, errno.InvalidInputErr.WithMessage("Search query is missing")
	}

	var (
		wg          sync.WaitGroup
		videos      []*model.SearchVideo
		channels    []*model.UserSummary
		videoErr    error
		channelsErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		videos, videoErr = s.searchVideos(ctx, q)
	}()
	go func() {
		defer wg.Done()
		channels, channelsErr = s.searchChannels(ctx, q)
	}()
	wg.Wait()

	if videoErr != nil {
		hlog.CtxErrorf(ctx, "search videos %q failed: %v", q, videoErr)
		return nil, videoErr
	}
	if channelsErr != nil {
		hlog.CtxErrorf(ctx, "search channels %q failed: %v", q, channelsErr)
		return nil, channelsErr
	}
	return &SearchResult{Videos: videos, Channels: channels}, nil
}

func (s *SearchService) searchVideos(ctx context.Context, q string) ([]*model.SearchVideo, error) {
	found, err := s.matcher.MatchVideos(ctx, q)
	if err != nil {
		return nil, err
	}
	result := make([]*model.SearchVideo, 0, len(found))
	if len(found) == 0 {
		return result, nil
	}

	ids := compose.DistinctIDs(found, func(v *model.Video) string { return v.ID })
	counts, err := s.likes.MCountVideoLikes(ctx, ids)
	if err != nil {
		return nil, err
	}
	owners, err := resolveOwners(ctx, s.users, compose.DistinctIDs(found, func(v *model.Video) string { return v.OwnerID }))
	if err != nil {
		return nil, err
	}
	for _, v := range found {
		result = append(result, &model.SearchVideo{
			ID:          v.ID,
			Title:       v.Title,
			Description: v.Description,
			Thumbnail:   v.Thumbnail,
			Duration:    v.Duration,
			Views:       v.Views,
			LikesCount:  counts[v.ID],
			Owner:       owners[v.OwnerID],
		})
	}
	return result, nil
}

func (s *SearchService) searchChannels(ctx context.Context, q string) ([]*model.UserSummary, error) {
	users, err := s.users.SearchUsers(ctx, q)
	if err != nil {
		return nil, err
	}
	channels := make([]*model.UserSummary, 0, len(users))
	for _, u := range users {
		channels = append(channels, u.Summary())
	}
	return channels, nil
}

// PublishedSearcher 数据库中的视频搜索
type PublishedSearcher interface {
	SearchPublished(ctx context.Context, q string) ([]*model.Video, error)
}

// DBMatcher 直接在数据库中做大小写无关的包含匹配
type DBMatcher struct {
	store PublishedSearcher
}

func NewDBMatcher(store PublishedSearcher) *DBMatcher {
	return &DBMatcher{store: store}
}

func (m *DBMatcher) MatchVideos(ctx context.Context, q string) ([]*model.Video, error) {
	return m.store.SearchPublished(ctx, q)
}

// IndexMatcher 从外部索引取id, 再回数据库取记录
// 索引可能落后于数据库, 回表后重新按发布状态和关键字过滤
type IndexMatcher struct {
	index  VideoIDMatcher
	videos VideoStore
}

func NewIndexMatcher(index VideoIDMatcher, videos VideoStore) *IndexMatcher {
	return &IndexMatcher{index: index, videos: videos}
}

func (m *IndexMatcher) MatchVideos(ctx context.Context, q string) ([]*model.Video, error) {
	ids, err := m.index.MatchVideoIDs(ctx, q)
	if err != nil {
		return nil, err
	}
	matched := make([]*model.Video, 0, len(ids))
	if len(ids) == 0 {
		return matched, nil
	}
	found, err := m.videos.MGetVideos(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := compose.IndexBy(found, func(v *model.Video) string { return v.ID })
	lower := strings.ToLower(q)
	for _, id := range ids {
		v, ok := byID[id]
		if !ok || !v.IsPublished {
			continue
		}
		if strings.Contains(strings.ToLower(v.Title), lower) || strings.Contains(strings.ToLower(v.Description), lower) {
			matched = append(matched, v)
		}
	}
	return matched, nil
}
