package jwt

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	hzjwt "github.com/hertz-contrib/jwt"
	"github.com/pkg/errors"

	"vidhub.com/pkg/constants"
	"vidhub.com/pkg/errno"
)

const accessTokenCookie = "accessToken"

// Auth 校验身份服务签发的访问令牌, 本服务不负责登录和签发
type Auth struct {
	mw *hzjwt.HertzJWTMiddleware
}

func New(key, realm string, ttl time.Duration) (*Auth, error) {
	mw, err := hzjwt.New(&hzjwt.HertzJWTMiddleware{
		Realm:         realm,
		Key:           []byte(key),
		Timeout:       ttl,
		IdentityKey:   constants.IdentityKey,
		TokenLookup:   "header: Authorization, cookie: " + accessTokenCookie,
		TokenHeadName: "Bearer",
		TimeFunc:      time.Now,
		PayloadFunc: func(data interface{}) hzjwt.MapClaims {
			if actorID, ok := data.(string); ok {
				return hzjwt.MapClaims{constants.IdentityKey: actorID}
			}
			return hzjwt.MapClaims{}
		},
		IdentityHandler: func(ctx context.Context, c *app.RequestContext) interface{} {
			claims := hzjwt.ExtractClaims(ctx, c)
			actorID, _ := claims[constants.IdentityKey].(string)
			return actorID
		},
		Authorizator: func(data interface{}, ctx context.Context, c *app.RequestContext) bool {
			actorID, _ := data.(string)
			return actorID != ""
		},
		Unauthorized: func(ctx context.Context, c *app.RequestContext, code int, message string) {
			hlog.CtxInfof(ctx, "reject request %s: %s", c.Request.URI().Path(), message)
			c.JSON(consts.StatusUnauthorized, utils.H{
				"code":    errno.UnauthorizedErr.ErrCode,
				"message": errno.UnauthorizedErr.ErrMsg,
				"data":    nil,
			})
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "init jwt middleware")
	}
	return &Auth{mw: mw}, nil
}

// Required 必须携带有效令牌
func (a *Auth) Required() app.HandlerFunc {
	return a.mw.MiddlewareFunc()
}

// Optional 未携带令牌按匿名处理, 携带了无效令牌仍然拒绝
func (a *Auth) Optional() app.HandlerFunc {
	required := a.mw.MiddlewareFunc()
	return func(ctx context.Context, c *app.RequestContext) {
		if len(c.GetHeader("Authorization")) == 0 && len(c.Cookie(accessTokenCookie)) == 0 {
			c.Next(ctx)
			return
		}
		required(ctx, c)
	}
}

// IssueToken 签发令牌, 供运维脚本和测试使用
func (a *Auth) IssueToken(actorID string) (string, time.Time, error) {
	return a.mw.TokenGenerator(actorID)
}

// ActorID 当前请求的操作者, 匿名时为空
func ActorID(c *app.RequestContext) string {
	v, ok := c.Get(constants.IdentityKey)
	if !ok {
		return ""
	}
	actorID, _ := v.(string)
	return actorID
}
