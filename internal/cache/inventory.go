package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix     = "user:%d"
	PlanKeyPrefix     = "plan:%d"
	PlanListKeyPrefix = "user:%d:plans"
	ShareKeyPrefix    = "share:%s"
	PrefsKeyPrefix    = "user:%d:notifyprefs"
)

const (
	UserTTL     = 5 * time.Minute
	PlanTTL     = 10 * time.Minute
	PlanListTTL = 2 * time.Minute
	ShareTTL    = 5 * time.Minute
	PrefsTTL    = 30 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PlanKey(planID uint) string {
	return fmt.Sprintf(PlanKeyPrefix, planID)
}

func PlanListKey(userID uint) string {
	return fmt.Sprintf(PlanListKeyPrefix, userID)
}

func ShareKey(token string) string {
	return fmt.Sprintf(ShareKeyPrefix, token)
}

func PrefsKey(userID uint) string {
	return fmt.Sprintf(PrefsKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
	Invalidate(ctx, PrefsKey(userID))
}

// InvalidatePlan drops both the plan entry and the owner's list entry so
// stale lists never outlive a plan mutation.
func InvalidatePlan(ctx context.Context, planID, userID uint) {
	Invalidate(ctx, PlanKey(planID))
	Invalidate(ctx, PlanListKey(userID))
}

func InvalidateShare(ctx context.Context, token string) {
	Invalidate(ctx, ShareKey(token))
}
