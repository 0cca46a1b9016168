package handlers

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/config"
	"github.com/cloudwego/hertz/pkg/common/test/assert"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/cloudwego/hertz/pkg/route"

	"vidhub.com/cmd/api/handlers/response"
	"vidhub.com/cmd/model"
	"vidhub.com/pkg/constants"
	"vidhub.com/pkg/errno"
	"vidhub.com/pkg/toggle"
)

const actor = "a0000000-0000-4000-8000-000000000001"

// fakeLikes 每次调用翻转一次状态
type fakeLikes struct {
	liked map[string]bool
}

func (f *fakeLikes) ToggleVideoLike(_ context.Context, actorID, videoID string) (toggle.State, error) {
	if actorID == "" {
		return "", errno.UnauthorizedErr
	}
	if videoID == "missing" {
		return "", errno.NotFoundErr.WithMessage("Video not found")
	}
	f.liked[videoID] = !f.liked[videoID]
	if f.liked[videoID] {
		return toggle.Added, nil
	}
	return toggle.Removed, nil
}

func (f *fakeLikes) ToggleCommentLike(ctx context.Context, actorID, commentID string) (toggle.State, error) {
	return f.ToggleVideoLike(ctx, actorID, commentID)
}

func (f *fakeLikes) ListLikedVideos(context.Context, string) ([]*model.Video, error) {
	return []*model.Video{}, nil
}

type fakeComments struct{}

func (fakeComments) CreateComment(_ context.Context, actorID, videoID, content string) (*model.Comment, error) {
	if content == "" {
		return nil, errno.InvalidInputErr.WithMessage("Please enter a comment")
	}
	return &model.Comment{ID: "d1", VideoID: videoID, OwnerID: actorID, Content: content}, nil
}

func (fakeComments) UpdateComment(_ context.Context, actorID, commentID, content string) (*model.Comment, error) {
	return nil, errno.ForbiddenErr.WithMessage("You are not authorized to modify this comment")
}

func (fakeComments) DeleteComment(context.Context, string, string) error {
	return nil
}

func newEngine(h *Handler) *route.Engine {
	engine := route.NewEngine(config.NewOptions([]config.Option{}))
	engine.Use(func(ctx context.Context, c *app.RequestContext) {
		if len(c.GetHeader("X-Actor")) > 0 {
			c.Set(constants.IdentityKey, string(c.GetHeader("X-Actor")))
		}
		c.Next(ctx)
	})
	engine.POST("/likes/video/:videoId", h.ToggleVideoLike)
	engine.POST("/addComment/:videoId", h.CreateComment)
	engine.PATCH("/comment/:commentId", h.UpdateComment)
	engine.POST("/comment/:commentId", h.DeleteComment)
	return engine
}

func decode(t *testing.T, body []byte) response.Response {
	t.Helper()
	var resp response.Response
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode body %s: %v", body, err)
	}
	return resp
}

func TestToggleVideoLikeHandler(t *testing.T) {
	engine := newEngine(New(&fakeLikes{liked: map[string]bool{}}, fakeComments{}))
	header := ut.Header{Key: "X-Actor", Value: actor}

	w := ut.PerformRequest(engine, "POST", "/likes/video/v1", nil, header)
	assert.DeepEqual(t, 200, w.Result().StatusCode())
	resp := decode(t, w.Result().Body())
	assert.DeepEqual(t, "Video is liked successfully", resp.Message)
	assert.DeepEqual(t, map[string]interface{}{"status": "added"}, resp.Data)

	w = ut.PerformRequest(engine, "POST", "/likes/video/v1", nil, header)
	resp = decode(t, w.Result().Body())
	assert.DeepEqual(t, "Video unliked successfully", resp.Message)
	assert.DeepEqual(t, map[string]interface{}{"status": "removed"}, resp.Data)

	w = ut.PerformRequest(engine, "POST", "/likes/video/missing", nil, header)
	assert.DeepEqual(t, 404, w.Result().StatusCode())
	assert.DeepEqual(t, "Video not found", decode(t, w.Result().Body()).Message)

	w = ut.PerformRequest(engine, "POST", "/likes/video/v1", nil)
	assert.DeepEqual(t, 401, w.Result().StatusCode())
}

func TestCommentHandlers(t *testing.T) {
	engine := newEngine(New(&fakeLikes{liked: map[string]bool{}}, fakeComments{}))
	header := ut.Header{Key: "X-Actor", Value: actor}
	jsonType := ut.Header{Key: "Content-Type", Value: "application/json"}

	w := ut.PerformRequest(engine, "POST", "/addComment/v1",
		&ut.Body{Body: bytesReader(`{"content":"great video"}`), Len: len(`{"content":"great video"}`)}, header, jsonType)
	assert.DeepEqual(t, 201, w.Result().StatusCode())
	resp := decode(t, w.Result().Body())
	assert.DeepEqual(t, "Comment added successfully", resp.Message)

	w = ut.PerformRequest(engine, "POST", "/addComment/v1",
		&ut.Body{Body: bytesReader(`{"content":""}`), Len: len(`{"content":""}`)}, header, jsonType)
	assert.DeepEqual(t, 400, w.Result().StatusCode())

	w = ut.PerformRequest(engine, "PATCH", "/comment/d1",
		&ut.Body{Body: bytesReader(`{"content":"edit"}`), Len: len(`{"content":"edit"}`)}, header, jsonType)
	assert.DeepEqual(t, 403, w.Result().StatusCode())

	w = ut.PerformRequest(engine, "POST", "/comment/d1", nil, header)
	assert.DeepEqual(t, 200, w.Result().StatusCode())
	assert.DeepEqual(t, map[string]interface{}{}, decode(t, w.Result().Body()).Data)
}

func bytesReader(s string) *strings.Reader {
	return strings.NewReader(s)
}
