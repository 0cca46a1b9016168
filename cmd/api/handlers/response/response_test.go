package response

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/config"
	"github.com/cloudwego/hertz/pkg/common/test/assert"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/cloudwego/hertz/pkg/route"
	"github.com/pkg/errors"

	"vidhub.com/pkg/errno"
)

func TestSendResponse(t *testing.T) {
	engine := route.NewEngine(config.NewOptions([]config.Option{}))
	engine.GET("/ok", func(ctx context.Context, c *app.RequestContext) {
		Success(c, "Video added successfully", map[string]string{"id": "1"})
	})
	engine.GET("/missing", func(ctx context.Context, c *app.RequestContext) {
		Fail(ctx, c, "GetVideo", errno.NotFoundErr.WithMessage("Video not found"))
	})
	engine.GET("/broken", func(ctx context.Context, c *app.RequestContext) {
		Fail(ctx, c, "GetVideo", errors.New("dial tcp 10.0.0.3:3306: connection refused"))
	})

	tests := []struct {
		url        string
		wantStatus int
		wantCode   int64
		wantMsg    string
	}{
		{url: "/ok", wantStatus: 200, wantCode: errno.SuccessCode, wantMsg: "Video added successfully"},
		{url: "/missing", wantStatus: 404, wantCode: errno.NotFoundCode, wantMsg: "Video not found"},
		{url: "/broken", wantStatus: 500, wantCode: errno.ServiceErrCode, wantMsg: errno.ServiceErr.ErrMsg},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			w := ut.PerformRequest(engine, "GET", tt.url, nil)
			resp := w.Result()
			assert.DeepEqual(t, tt.wantStatus, resp.StatusCode())

			var body Response
			if err := json.Unmarshal(resp.Body(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			assert.DeepEqual(t, tt.wantCode, body.Code)
			assert.DeepEqual(t, tt.wantMsg, body.Message)
		})
	}
}
