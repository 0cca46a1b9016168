package mq

import (
	"time"

	"github.com/google/uuid"

	"vidhub.com/cmd/model"
)

// 视频生命周期事件类型
const (
	VideoPublished  = "video.published"
	VideoUpdated    = "video.updated"
	VideoDeleted    = "video.deleted"
	VideoVisibility = "video.visibility"
)

const (
	VideoEventExchange = "video_events"
	VideoIndexQueue    = "video_index_queue"
)

// VideoSnapshot 事件携带的视频快照, 下游无需回查数据库
type VideoSnapshot struct {
	ID          string `json:"id"`
	OwnerID     string `json:"owner_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	IsPublished bool   `json:"is_published"`
}

// VideoEvent 视频事件
type VideoEvent struct {
	EventID   string         `json:"event_id"`
	Type      string         `json:"type"`
	ActorID   string         `json:"actor_id"`
	Video     *VideoSnapshot `json:"video"`
	Timestamp int64          `json:"timestamp"`
}

func NewVideoEvent(eventType, actorID string, video *model.Video) *VideoEvent {
	return &VideoEvent{
		EventID: uuid.NewString(),
		Type:    eventType,
		ActorID: actorID,
		Video: &VideoSnapshot{
			ID:          video.ID,
			OwnerID:     video.OwnerID,
			Title:       video.Title,
			Description: video.Description,
			IsPublished: video.IsPublished,
		},
		Timestamp: time.Now().UnixMilli(),
	}
}
