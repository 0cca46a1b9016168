package service

import (
	"context"
	"errors"
	"testing"

	"vidhub.com/cmd/model"
	"vidhub.com/pkg/errno"
)

func newPlaylistFixture(t *testing.T) (*PlaylistService, *fakePlaylists, *fakeUsers, string) {
	t.Helper()
	playlists := newFakePlaylists()
	users := fixtureUsers()
	service := NewPlaylistService(playlists, fixtureVideos(), users)
	view, err := service.CreatePlaylist(context.Background(), alice, "Favorites", "things I like")
	if err != nil {
		t.Fatalf("create playlist: %v", err)
	}
	if view.Videos == nil || len(view.Videos) != 0 {
		t.Fatalf("new playlist should have empty videos, got %v", view.Videos)
	}
	return service, playlists, users, view.ID
}

// TestPlaylistMembership 成员是集合, 重复添加不报错
func TestPlaylistMembership(t *testing.T) {
	ctx := context.Background()
	service, _, _, playlistID := newPlaylistFixture(t)

	first, err := service.AddVideo(ctx, alice, playlistID, bobVideo)
	if err != nil || first.Status != model.MembershipAdded {
		t.Fatalf("first add: %+v %v", first, err)
	}
	second, err := service.AddVideo(ctx, alice, playlistID, bobVideo)
	if err != nil || second.Status != model.MembershipAlreadyPresent {
		t.Fatalf("second add: %+v %v", second, err)
	}
	if len(second.Playlist.Videos) != 1 {
		t.Fatalf("expected one member, got %d", len(second.Playlist.Videos))
	}

	removed, err := service.RemoveVideo(ctx, alice, playlistID, bobVideo)
	if err != nil || removed.Status != model.MembershipRemoved || len(removed.Playlist.Videos) != 0 {
		t.Fatalf("remove: %+v %v", removed, err)
	}
	if _, err := service.RemoveVideo(ctx, alice, playlistID, bobVideo); !errors.Is(err, errno.NotFoundErr) {
		t.Fatalf("expected not found for absent member, got %v", err)
	}
}

func TestPlaylistAddVideoErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("non owner", func(t *testing.T) {
		service, playlists, _, playlistID := newPlaylistFixture(t)
		if _, err := service.AddVideo(ctx, bob, playlistID, bobVideo); !errors.Is(err, errno.ForbiddenErr) {
			t.Fatalf("expected forbidden, got %v", err)
		}
		if len(playlists.playlists[playlistID].Videos) != 0 {
			t.Fatal("playlist should be unchanged")
		}
	})

	t.Run("missing video", func(t *testing.T) {
		service, _, _, playlistID := newPlaylistFixture(t)
		if _, err := service.AddVideo(ctx, alice, playlistID, goneVideo); !errors.Is(err, errno.NotFoundErr) {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("missing playlist", func(t *testing.T) {
		service, _, _, _ := newPlaylistFixture(t)
		if _, err := service.AddVideo(ctx, alice, ghost, bobVideo); !errors.Is(err, errno.NotFoundErr) {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("concurrent insert collapses", func(t *testing.T) {
		service, playlists, _, playlistID := newPlaylistFixture(t)
		playlists.raceOnAdd = true
		result, err := service.AddVideo(ctx, alice, playlistID, bobVideo)
		if err != nil || result.Status != model.MembershipAlreadyPresent {
			t.Fatalf("expected already_present, got %+v %v", result, err)
		}
	})
}

// TestPlaylistView 未发布的视频不出现, 作者一次批量解析
func TestPlaylistView(t *testing.T) {
	ctx := context.Background()
	service, _, users, playlistID := newPlaylistFixture(t)

	for _, id := range []string{publicVideo, privateVideo, bobVideo} {
		if _, err := service.AddVideo(ctx, alice, playlistID, id); err != nil {
			t.Fatalf("add %s: %v", id, err)
		}
	}

	users.mgetCalls = 0
	view, err := service.GetPlaylist(ctx, playlistID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if users.mgetCalls != 1 {
		t.Errorf("expected one owner lookup, got %d", users.mgetCalls)
	}
	if len(view.Videos) != 2 || view.Videos[0].ID != publicVideo || view.Videos[1].ID != bobVideo {
		t.Fatalf("expected published videos in membership order, got %+v", view.Videos)
	}
	if view.Videos[1].Owner == nil || view.Videos[1].Owner.Username != "bob" {
		t.Errorf("video owner not resolved: %+v", view.Videos[1].Owner)
	}
	if view.Owner == nil || view.Owner.FullName != "Alice Liddell" {
		t.Errorf("playlist owner not resolved: %+v", view.Owner)
	}

	lists, err := service.ListUserPlaylists(ctx, alice)
	if err != nil || len(lists) != 1 || len(lists[0].Videos) != 2 {
		t.Fatalf("unexpected user playlists %+v %v", lists, err)
	}
	empty, err := service.ListUserPlaylists(ctx, bob)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty list, got %+v %v", empty, err)
	}

	if _, err := service.GetPlaylist(ctx, ghost); !errors.Is(err, errno.NotFoundErr) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPlaylistUpdateDelete(t *testing.T) {
	ctx := context.Background()
	service, playlists, _, playlistID := newPlaylistFixture(t)

	if _, err := service.UpdatePlaylist(ctx, bob, playlistID, "Mine", "now"); !errors.Is(err, errno.ForbiddenErr) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if playlists.playlists[playlistID].Name != "Favorites" {
		t.Fatal("playlist should be unchanged")
	}
	if _, err := service.UpdatePlaylist(ctx, alice, playlistID, "", "desc"); !errors.Is(err, errno.InvalidInputErr) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	view, err := service.UpdatePlaylist(ctx, alice, playlistID, "Watch later", "queue")
	if err != nil || view.Name != "Watch later" || view.Description != "queue" {
		t.Fatalf("unexpected update result %+v %v", view, err)
	}

	if err := service.DeletePlaylist(ctx, bob, playlistID); !errors.Is(err, errno.ForbiddenErr) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if err := service.DeletePlaylist(ctx, alice, playlistID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := service.GetPlaylist(ctx, playlistID); !errors.Is(err, errno.NotFoundErr) {
		t.Fatalf("expected deleted playlist to be gone, got %v", err)
	}
}

func TestCreatePlaylistValidation(t *testing.T) {
	service := NewPlaylistService(newFakePlaylists(), fixtureVideos(), fixtureUsers())
	if _, err := service.CreatePlaylist(context.Background(), alice, "  ", "x"); !errors.Is(err, errno.InvalidInputErr) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if _, err := service.CreatePlaylist(context.Background(), "", "a", "b"); !errors.Is(err, errno.UnauthorizedErr) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}
