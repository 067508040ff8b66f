package markup

import (
	"fmt"

	"github.com/btx638/policr-mini/internal/telegram"
)

// MentionOptions controls how a user reference is rendered.
type MentionOptions struct {
	// Anonymize replaces the display name with the bare numeric id.
	Anonymize bool
	// Mosaic partially redacts the display name; ignored when Anonymize is set.
	Mosaic bool
	// Mode selects the output markup flavor. ParseModeNone falls back to
	// raw-markup since a bare mention would not notify the target.
	Mode telegram.ParseMode
}

// Mention renders a platform-recognized user mention. Regardless of
// anonymization the output stays a deep link to the user id, so the target is
// notified either way.
func Mention(user telegram.User, opts MentionOptions) string {
	display := user.FullName()
	switch {
	case opts.Anonymize:
		display = fmt.Sprintf("%d", user.ID)
	case opts.Mosaic:
		display = Mosaic(display)
	}

	if opts.Mode == telegram.ParseModeHTML {
		return fmt.Sprintf(`<a href="tg://user?id=%d">%s</a>`, user.ID, EscapeHTML(display))
	}
	return fmt.Sprintf("[%s](tg://user?id=%d)", EscapeMarkdown(display), user.ID)
}
