package telegram

// User is the platform identity attached to inbound events and mentions.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`
}

// FullName joins first and last name the way the platform displays them.
func (u User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Message is the subset of the platform message object the core reads back
// from send/edit calls.
type Message struct {
	MessageID int64 `json:"message_id"`
	Chat      Chat  `json:"chat"`
	From      *User `json:"from,omitempty"`
	Date      int64 `json:"date"`
}

// Chat identifies a group or private conversation.
type Chat struct {
	ID    int64  `json:"id"`
	Type  string `json:"type"`
	Title string `json:"title,omitempty"`
}

// CallbackQuery is the raw inbound answer event as delivered by the platform.
type CallbackQuery struct {
	ID      string   `json:"id"`
	From    User     `json:"from"`
	Message *Message `json:"message,omitempty"`
	Data    string   `json:"data,omitempty"`
}

// Update is the envelope the webhook receives. Only callback queries matter to
// this service; everything else is dropped by the ingress.
type Update struct {
	UpdateID      int64          `json:"update_id"`
	CallbackQuery *CallbackQuery `json:"callback_query,omitempty"`
}

// ChatPermissions holds the eight capability flags a group member can carry.
// The zero value is the fully locked-down set used while a member is pending
// verification.
type ChatPermissions struct {
	CanSendMessages       bool `json:"can_send_messages"`
	CanSendMediaMessages  bool `json:"can_send_media_messages"`
	CanSendPolls          bool `json:"can_send_polls"`
	CanSendOtherMessages  bool `json:"can_send_other_messages"`
	CanAddWebPagePreviews bool `json:"can_add_web_page_previews"`
	CanChangeInfo         bool `json:"can_change_info"`
	CanInviteUsers        bool `json:"can_invite_users"`
	CanPinMessages        bool `json:"can_pin_messages"`
}

// ParseMode selects how the platform interprets message text.
type ParseMode string

const (
	ParseModeMarkdownV2 ParseMode = "MarkdownV2"
	ParseModeHTML       ParseMode = "HTML"
	// ParseModeNone sends text verbatim with no entity parsing.
	ParseModeNone ParseMode = ""
)

// SendMessageParams carries the options the delivery layer sets per call.
type SendMessageParams struct {
	ChatID                int64     `json:"chat_id"`
	Text                  string    `json:"text"`
	ParseMode             ParseMode `json:"parse_mode,omitempty"`
	DisableNotification   bool      `json:"disable_notification,omitempty"`
	DisableWebPagePreview bool      `json:"disable_web_page_preview,omitempty"`
	ReplyToMessageID      int64     `json:"reply_to_message_id,omitempty"`
}

// SendPhotoParams mirrors SendMessageParams for photo posts; Photo is a file
// id or URL already hosted on the platform.
type SendPhotoParams struct {
	ChatID              int64     `json:"chat_id"`
	Photo               string    `json:"photo"`
	Caption             string    `json:"caption,omitempty"`
	ParseMode           ParseMode `json:"parse_mode,omitempty"`
	DisableNotification bool      `json:"disable_notification,omitempty"`
}

// EditMessageTextParams edits a previously sent message in place.
type EditMessageTextParams struct {
	ChatID                int64     `json:"chat_id"`
	MessageID             int64     `json:"message_id"`
	Text                  string    `json:"text"`
	ParseMode             ParseMode `json:"parse_mode,omitempty"`
	DisableWebPagePreview bool      `json:"disable_web_page_preview,omitempty"`
}

// AnswerCallbackQueryParams acknowledges an inbound callback. Text shown as an
// alert when ShowAlert is set; empty text is a bare acknowledgement.
type AnswerCallbackQueryParams struct {
	CallbackQueryID string `json:"callback_query_id"`
	Text            string `json:"text,omitempty"`
	ShowAlert       bool   `json:"show_alert,omitempty"`
}

// RestrictChatMemberParams applies a permission set to one member.
type RestrictChatMemberParams struct {
	ChatID      int64           `json:"chat_id"`
	UserID      int64           `json:"user_id"`
	Permissions ChatPermissions `json:"permissions"`
}
