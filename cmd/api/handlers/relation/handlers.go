package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"vidhub.com/cmd/api/handlers/response"
	"vidhub.com/cmd/model"
	"vidhub.com/pkg/jwt"
	"vidhub.com/pkg/toggle"
)

// RelationService 订阅相关操作
type RelationService interface {
	ToggleSubscription(ctx context.Context, subscriberID, channelID string) (toggle.State, error)
	ListSubscribers(ctx context.Context, channelID string) (*model.SubscriberList, error)
	ListSubscribedChannels(ctx context.Context, subscriberID string) (*model.ChannelList, error)
}

type Handler struct {
	relations RelationService
}

func New(relations RelationService) *Handler {
	return &Handler{relations: relations}
}

type ToggleResult struct {
	Status toggle.State `json:"status"`
}

func (h *Handler) ToggleSubscription(ctx context.Context, c *app.RequestContext) {
	state, err := h.relations.ToggleSubscription(ctx, jwt.ActorID(c), c.Param("c_id"))
	if err != nil {
		response.Fail(ctx, c, "ToggleSubscription", err)
		return
	}
	message := "Subscribed successfully"
	if state == toggle.Removed {
		message = "Unsubscribed successfully"
	}
	response.Success(c, message, ToggleResult{Status: state})
}

func (h *Handler) ChannelSubscribers(ctx context.Context, c *app.RequestContext) {
	list, err := h.relations.ListSubscribers(ctx, c.Param("channelId"))
	if err != nil {
		response.Fail(ctx, c, "ChannelSubscribers", err)
		return
	}
	response.Success(c, "Channel subscribers fetched successfully", list)
}

func (h *Handler) SubscribedChannels(ctx context.Context, c *app.RequestContext) {
	list, err := h.relations.ListSubscribedChannels(ctx, c.Param("subscriberId"))
	if err != nil {
		response.Fail(ctx, c, "SubscribedChannels", err)
		return
	}
	response.Success(c, "Subscribed channels fetched successfully", list)
}
