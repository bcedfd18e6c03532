package domain

// Role is an actor's relation to a board.
type Role string

const (
	RoleNone   Role = ""
	RoleOwner  Role = "owner"
	RoleMember Role = "member"
)

func (r Role) String() string { return string(r) }

// HasAccess reports whether the role grants any access to the board.
func (r Role) HasAccess() bool {
	return r == RoleOwner || r == RoleMember
}

// ActivityType tags an entry in a board's activity log.
type ActivityType string

const (
	ActivityBoardCreated   ActivityType = "BOARD_CREATED"
	ActivityBoardUpdated   ActivityType = "BOARD_UPDATED"
	ActivityBoardArchived  ActivityType = "BOARD_ARCHIVED"
	ActivityMemberAdded    ActivityType = "MEMBER_ADDED"
	ActivityMemberRemoved  ActivityType = "MEMBER_REMOVED"
	ActivityListCreated    ActivityType = "LIST_CREATED"
	ActivityListUpdated    ActivityType = "LIST_UPDATED"
	ActivityListArchived   ActivityType = "LIST_ARCHIVED"
	ActivityListRestored   ActivityType = "LIST_RESTORED"
	ActivityListDeleted    ActivityType = "LIST_DELETED"
	ActivityListsReordered ActivityType = "LISTS_REORDERED"
	ActivityCardCreated    ActivityType = "CARD_CREATED"
	ActivityCardUpdated    ActivityType = "CARD_UPDATED"
	ActivityCardMoved      ActivityType = "CARD_MOVED"
	ActivityCardArchived   ActivityType = "CARD_ARCHIVED"
	ActivityCardRestored   ActivityType = "CARD_RESTORED"
	ActivityCardDeleted    ActivityType = "CARD_DELETED"
	ActivityCardsReordered ActivityType = "CARDS_REORDERED"
	ActivityCardAssigned   ActivityType = "CARD_ASSIGNED"
	ActivityCardUnassigned ActivityType = "CARD_UNASSIGNED"
)

func (t ActivityType) String() string { return string(t) }

func (t ActivityType) IsValid() bool {
	switch t {
	case ActivityBoardCreated, ActivityBoardUpdated, ActivityBoardArchived,
		ActivityMemberAdded, ActivityMemberRemoved,
		ActivityListCreated, ActivityListUpdated, ActivityListArchived,
		ActivityListRestored, ActivityListDeleted, ActivityListsReordered,
		ActivityCardCreated, ActivityCardUpdated, ActivityCardMoved,
		ActivityCardArchived, ActivityCardRestored, ActivityCardDeleted,
		ActivityCardsReordered, ActivityCardAssigned, ActivityCardUnassigned:
		return true
	}
	return false
}
