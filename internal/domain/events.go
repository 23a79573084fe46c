package domain

import "time"

// NotificationType categorizes the side-effect notifications an action
// produces. Notifications are observational: they never feed back into
// reward math.
type NotificationType string

const (
	NotifyReward          NotificationType = "reward"
	NotifyLevelUp         NotificationType = "level_up"
	NotifyClassSwitch     NotificationType = "class_switch"
	NotifyAscendant       NotificationType = "ascendant_unlock"
	NotifyAchievement     NotificationType = "achievement"
	NotifyStreakMilestone NotificationType = "streak_milestone"
	NotifyWeeklyBonus     NotificationType = "weekly_bonus"
	NotifyStreakBroken    NotificationType = "streak_broken"
	NotifyHPDrain         NotificationType = "hp_drain"
	NotifyDeath           NotificationType = "death"
	NotifyPurchase        NotificationType = "purchase"
	NotifyItemUsed        NotificationType = "item_used"
	NotifyWarning         NotificationType = "warning"
)

// Notification is a user-facing message emitted by an engine action.
type Notification struct {
	Type    NotificationType `json:"type"`
	Title   string           `json:"title"`
	Message string           `json:"message"`
	Details string           `json:"details,omitempty"`
}

// TimelineEventType labels entries in the hero's journey log.
type TimelineEventType string

const (
	EventStart           TimelineEventType = "start"
	EventQuestCreated    TimelineEventType = "quest_created"
	EventQuestSkipped    TimelineEventType = "quest_skipped"
	EventMilestone       TimelineEventType = "milestone"
	EventLevelUp         TimelineEventType = "level_up"
	EventStatMilestone   TimelineEventType = "stat_milestone"
	EventClassSwitch     TimelineEventType = "class_switch"
	EventAscendantUnlock TimelineEventType = "ascendant_unlock"
	EventAchievement     TimelineEventType = "achievement"
	EventStreakMilestone TimelineEventType = "streak_milestone"
	EventStreakBroken    TimelineEventType = "streak_broken"
	EventDeath           TimelineEventType = "death"
	EventShopPurchase    TimelineEventType = "shop_purchase"
	EventItemUsed        TimelineEventType = "item_used"
)

// TimelineEvent is one entry in the per-user journey log.
type TimelineEvent struct {
	ID          string            `json:"id"`
	Type        TimelineEventType `json:"type"`
	Level       int               `json:"level"`
	Description string            `json:"description"`
	Icon        string            `json:"icon"`
	Details     string            `json:"details,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
}
