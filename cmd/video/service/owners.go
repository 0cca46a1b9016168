package service

import (
	"context"

	"vidhub.com/cmd/model"
	"vidhub.com/pkg/compose"
)

// resolveOwners 一次批量查询解析所有引用到的用户
func resolveOwners(ctx context.Context, users UserReader, ownerIDs []string) (map[string]*model.UserSummary, error) {
	found, err := users.MGetUsers(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}
	summaries := make(map[string]*model.UserSummary, len(found))
	for id, u := range compose.IndexBy(found, func(u *model.User) string { return u.ID }) {
		summaries[id] = u.Summary()
	}
	return summaries, nil
}
