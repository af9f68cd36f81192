package errors

var (
	// Domain errors returned by the services
	ErrNotAuthenticated    = Unauthorized("authentication required")
	ErrNotParticipant      = Forbidden("you are not a participant of this conversation")
	ErrSelfConversation    = InvalidArg("cannot start a conversation with yourself")
	ErrInvalidContent      = InvalidArg("message must be between 1 and 5000 characters")
	ErrInvalidGroupName    = InvalidArg("group name must be between 1 and 200 characters")
	ErrInvalidGroupEmoji   = InvalidArg("group emoji must be at most 16 characters")
	ErrGroupTooSmall       = InvalidArg("a group needs at least one member besides the creator")
	ErrUnknownParticipant  = InvalidArg("one or more participants do not exist")
	ErrInvalidCursor       = InvalidArg("invalid cursor")
	ErrInvalidSort         = InvalidArg("sort must be one of: recent, members")
	ErrNotAGroup           = InvalidArg("members can only be added to group conversations")
	ErrUserNotFound        = NotFound("user not found")
	ErrPublicGroupNotFound = NotFound("public group not found")
	ErrDirectConflict      = Conflict("conversation could not be resolved, please retry")
)

func ErrStore(cause error) error {
	return Wrap(CodeInternal, "storage failure", cause)
}
