package main

import (
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/route"

	"vidhub.com/cmd/api/handlers/health"
	interactionh "vidhub.com/cmd/api/handlers/interaction"
	relationh "vidhub.com/cmd/api/handlers/relation"
	videoh "vidhub.com/cmd/api/handlers/video"
	"vidhub.com/cmd/api/mw"
	"vidhub.com/pkg/constants"
)

// routes 路由需要的全部依赖
type routes struct {
	required    app.HandlerFunc
	optional    app.HandlerFunc
	rateLimit   app.HandlerFunc
	interaction *interactionh.Handler
	relation    *relationh.Handler
	video       *videoh.Handler
	db          health.Checker
}

func register(r *route.Engine, rt *routes) {
	r.GET("/ping", health.Ping(rt.db))

	v1 := r.Group("/api/v1")

	like := v1.Group("/like", rt.required)
	like.POST("/likes/video/:videoId", rt.rateLimit, rt.interaction.ToggleVideoLike)
	like.POST("/likes/comment/:commentId", rt.rateLimit, rt.interaction.ToggleCommentLike)
	like.GET("/likes", rt.interaction.LikedVideos)

	// 订阅列表公开, 只有切换订阅需要登录
	subscribe := v1.Group("/subscribe")
	subscribe.POST("/subscribe_toggle/:c_id", rt.required, rt.rateLimit, rt.relation.ToggleSubscription)
	subscribe.GET("/subscribers/:channelId", rt.relation.ChannelSubscribers)
	subscribe.GET("/subscribed/:subscriberId", rt.relation.SubscribedChannels)

	comments := v1.Group("/comments", rt.required)
	comments.POST("/addComment/:videoId", rt.rateLimit, rt.interaction.CreateComment)
	comments.PATCH("/comment/:commentId", rt.rateLimit, rt.interaction.UpdateComment)
	comments.POST("/comment/:commentId", rt.rateLimit, rt.interaction.DeleteComment)
	comments.DELETE("/comment/:commentId", rt.rateLimit, rt.interaction.DeleteComment)

	playlist := v1.Group("/playlist", rt.required)
	playlist.POST("/playlist/create", rt.rateLimit, rt.video.CreatePlaylist)
	playlist.GET("/user-playlist/:userId", rt.video.UserPlaylists)
	playlist.GET("/playlist/:playlistId", rt.video.GetPlaylist)
	playlist.PATCH("/playlist/:playlistId", rt.rateLimit, rt.video.UpdatePlaylist)
	playlist.POST("/playlist/:playlistId", rt.rateLimit, rt.video.DeletePlaylist)
	playlist.DELETE("/playlist/:playlistId", rt.rateLimit, rt.video.DeletePlaylist)
	playlist.POST("/playlist/:playlistId/video/:videoId", rt.rateLimit, rt.video.AddPlaylistVideo)
	playlist.POST("/remove-video/playlist/:playlistId/video/:videoId", rt.rateLimit, rt.video.RemovePlaylistVideo)

	videos := v1.Group("/videos")
	videos.POST("/publishvideo", rt.required, rt.rateLimit, rt.video.PublishVideo)
	videos.GET("/video/:videoId", rt.optional, rt.video.GetVideo)
	videos.PATCH("/video/:videoId", rt.required, rt.rateLimit, rt.video.UpdateVideo)
	videos.POST("/video/:videoId", rt.required, rt.rateLimit, rt.video.DeleteVideo)
	videos.DELETE("/video/:videoId", rt.required, rt.rateLimit, rt.video.DeleteVideo)
	videos.POST("/video/toggle-status/:videoId", rt.required, rt.rateLimit, rt.video.TogglePublishStatus)

	v1.GET("/search", rt.required, mw.FlowControl(constants.SearchResource), rt.video.Search)
}
