package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/spystrach/interimBot/internal/domain"
)

// agencyKeyboard is the one-time reply keyboard offering the recognized
// agencies on a single row.
func agencyKeyboard() tgbotapi.ReplyKeyboardMarkup {
	buttons := make([]tgbotapi.KeyboardButton, 0, len(domain.Agencies))
	for _, a := range domain.Agencies {
		buttons = append(buttons, tgbotapi.NewKeyboardButton(string(a)))
	}
	kb := tgbotapi.NewReplyKeyboard(tgbotapi.NewKeyboardButtonRow(buttons...))
	kb.OneTimeKeyboard = true
	return kb
}
