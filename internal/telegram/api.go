package telegram

import "context"

// API is the outbound surface of the chat platform consumed by the core. The
// delivery layer owns retry policy; implementations of this interface perform
// exactly one attempt per call.
type API interface {
	SendMessage(ctx context.Context, params SendMessageParams) (*Message, error)
	SendPhoto(ctx context.Context, params SendPhotoParams) (*Message, error)
	EditMessageText(ctx context.Context, params EditMessageTextParams) (*Message, error)
	DeleteMessage(ctx context.Context, chatID, messageID int64) error
	RestrictChatMember(ctx context.Context, params RestrictChatMemberParams) error
	BanChatMember(ctx context.Context, chatID, userID int64) error
	UnbanChatMember(ctx context.Context, chatID, userID int64) error
	AnswerCallbackQuery(ctx context.Context, params AnswerCallbackQueryParams) error
	SendChatAction(ctx context.Context, chatID int64, action string) error
}
