package service

import (
	"context"
	"errors"
	"testing"

	"vidhub.com/cmd/model"
	"vidhub.com/pkg/errno"
)

const (
	alice = "a0000000-0000-4000-8000-000000000001"
	bob   = "b0000000-0000-4000-8000-000000000002"
	carol = "e0000000-0000-4000-8000-000000000003"
	ghost = "f0000000-0000-4000-8000-000000000009"

	publicVideo  = "c0000000-0000-4000-8000-000000000001"
	privateVideo = "c0000000-0000-4000-8000-000000000002"
	goneVideo    = "c0000000-0000-4000-8000-000000000003"
	bobVideo     = "c0000000-0000-4000-8000-000000000004"
)

func fixtureUsers() *fakeUsers {
	return newFakeUsers(
		&model.User{ID: alice, Username: "alice", FullName: "Alice Liddell", Avatar: "a.png"},
		&model.User{ID: bob, Username: "bob", FullName: "Bob Stone", Avatar: "b.png"},
		&model.User{ID: carol, Username: "carol_cooks", FullName: "Carol Kitchen"},
	)
}

func fixtureVideos() *fakeVideos {
	return newFakeVideos(
		&model.Video{ID: publicVideo, OwnerID: alice, Title: "Go Concurrency", Description: "channels and goroutines",
			VideoFile: "http://minio/vidhub/video/a.mp4", Thumbnail: "http://minio/vidhub/thumbnail/a.png", Views: 10, IsPublished: true},
		&model.Video{ID: privateVideo, OwnerID: alice, Title: "Draft", Description: "not ready",
			VideoFile: "http://minio/vidhub/video/b.mp4", Thumbnail: "http://minio/vidhub/thumbnail/b.png", IsPublished: false},
		&model.Video{ID: bobVideo, OwnerID: bob, Title: "Cooking Pasta", Description: "a GO-TO recipe",
			VideoFile: "http://minio/vidhub/video/c.mp4", Thumbnail: "http://minio/vidhub/thumbnail/c.png", IsPublished: true},
	)
}

type videoFixture struct {
	service *VideoService
	videos  *fakeVideos
	users   *fakeUsers
	storage *fakeStorage
	events  *fakeEvents
}

func newVideoFixture() *videoFixture {
	f := &videoFixture{
		videos:  fixtureVideos(),
		users:   fixtureUsers(),
		storage: newFakeStorage(),
		events:  &fakeEvents{},
	}
	comments := fakeComments{
		publicVideo: {
			{ID: "d1", VideoID: publicVideo, OwnerID: alice, Content: "first"},
			{ID: "d2", VideoID: publicVideo, OwnerID: bob, Content: "nice"},
			{ID: "d3", VideoID: publicVideo, OwnerID: alice, Content: "thanks"},
			{ID: "d4", VideoID: publicVideo, OwnerID: ghost, Content: "deleted account"},
		},
	}
	likes := fakeLikes{publicVideo: 2}
	f.service = NewVideoService(f.videos, f.users, likes, comments, f.storage,
		WithEvents(f.events),
		WithProber(func(string) (float64, error) { return 12.5, nil }))
	return f
}

// TestGetVideoViews 每次成功读取播放量加一
func TestGetVideoViews(t *testing.T) {
	ctx := context.Background()
	f := newVideoFixture()

	for i := 1; i <= 3; i++ {
		detail, err := f.service.GetVideo(ctx, bob, publicVideo)
		if err != nil {
			t.Fatalf("fetch %d: %v", i, err)
		}
		if detail.Views != int64(10+i) {
			t.Fatalf("fetch %d: expected views %d, got %d", i, 10+i, detail.Views)
		}
	}
	stored, _ := f.videos.GetVideo(ctx, publicVideo)
	if stored.Views != 13 {
		t.Fatalf("expected stored views 13, got %d", stored.Views)
	}
}

// TestGetVideoComments 评论者一次批量查询并在内存中合并
func TestGetVideoComments(t *testing.T) {
	f := newVideoFixture()
	detail, err := f.service.GetVideo(context.Background(), "", publicVideo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if detail.LikesCount != 2 {
		t.Errorf("expected 2 likes, got %d", detail.LikesCount)
	}
	if f.users.mgetCalls != 1 {
		t.Errorf("expected one batched owner lookup, got %d", f.users.mgetCalls)
	}
	if len(f.users.lastLookup) != 3 {
		t.Errorf("expected distinct owner ids, got %v", f.users.lastLookup)
	}
	if len(detail.Comments) != 4 {
		t.Fatalf("expected 4 comments, got %d", len(detail.Comments))
	}

	wantOwners := []string{"Alice Liddell", "Bob Stone", "Alice Liddell"}
	for i, want := range wantOwners {
		owner := detail.Comments[i].Owner
		if owner == nil || owner.FullName != want {
			t.Errorf("comment %d: expected owner %s, got %+v", i, want, owner)
		}
	}
	if detail.Comments[3].Owner != nil {
		t.Errorf("unresolved owner should be nil, got %+v", detail.Comments[3].Owner)
	}
}

// TestGetVideoVisibility 未发布视频对他人表现为不存在
func TestGetVideoVisibility(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		actor   string
		videoID string
		wantErr error
	}{
		{name: "owner sees draft", actor: alice, videoID: privateVideo},
		{name: "other user", actor: bob, videoID: privateVideo, wantErr: errno.NotFoundErr},
		{name: "anonymous", actor: "", videoID: privateVideo, wantErr: errno.NotFoundErr},
		{name: "missing video", actor: bob, videoID: goneVideo, wantErr: errno.NotFoundErr},
		{name: "malformed id", actor: bob, videoID: "42", wantErr: errno.InvalidInputErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newVideoFixture()
			detail, err := f.service.GetVideo(ctx, tt.actor, tt.videoID)
			if tt.wantErr == nil {
				if err != nil || detail == nil || detail.IsPublished {
					t.Fatalf("expected draft detail, got %+v %v", detail, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			stored, _ := f.videos.GetVideo(ctx, privateVideo)
			if stored.Views != 0 {
				t.Fatalf("views should not change on a failed read, got %d", stored.Views)
			}
		})
	}

	hidden := errno.ConvertErr(func() error {
		_, err := newVideoFixture().service.GetVideo(ctx, bob, privateVideo)
		return err
	}())
	missing := errno.ConvertErr(func() error {
		_, err := newVideoFixture().service.GetVideo(ctx, bob, goneVideo)
		return err
	}())
	if hidden.ErrMsg != missing.ErrMsg {
		t.Errorf("hidden and missing should be indistinguishable: %q vs %q", hidden.ErrMsg, missing.ErrMsg)
	}
}
