package notify

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// TelegramNotifier delivers notifications as messages to the owner chat.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	log    *zap.Logger

	mu    sync.Mutex
	state PermissionState
}

func NewTelegram(bot *tgbotapi.BotAPI, chatID int64, log *zap.Logger) *TelegramNotifier {
	return &TelegramNotifier{bot: bot, chatID: chatID, log: log, state: PermissionUnknown}
}

// Permission checks once whether the owner chat is reachable and caches
// the answer for the rest of the run.
func (n *TelegramNotifier) Permission(_ context.Context) PermissionState {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.state != PermissionUnknown {
		return n.state
	}

	_, err := n.bot.GetChat(tgbotapi.ChatInfoConfig{
		ChatConfig: tgbotapi.ChatConfig{ChatID: n.chatID},
	})
	if err != nil {
		n.log.Warn("owner chat unreachable", zap.Int64("chatID", n.chatID), zap.Error(err))
		n.state = PermissionDenied
	} else {
		n.state = PermissionGranted
	}
	return n.state
}

// Send delivers a title/body pair as one message.
func (n *TelegramNotifier) Send(_ context.Context, title, body string) error {
	text := title
	if body != "" {
		text += "\n" + body
	}
	_, err := n.bot.Send(tgbotapi.NewMessage(n.chatID, text))
	return err
}
