package telegram

import (
	"context"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Smartnaka/SkulBell/internal/store"
	"github.com/Smartnaka/SkulBell/internal/tracker"
)

// Pending state keys used in conversational flows. The edit key carries
// the target lecture id after the colon.
const (
	pendingAdd        = "await_add_text"
	pendingFind       = "await_find_text"
	pendingEditPrefix = "await_edit_text:"
)

// Router wires Telegram updates to handlers and holds minimal in-memory
// state: the pending conversational flow and the ids of the lectures the
// chat last saw (so /remove can refer to them by number).
type Router struct {
	bot     *tgbotapi.BotAPI
	log     *zap.Logger
	trk     *tracker.Tracker
	repo    store.Repo
	ownerID int64

	mu        sync.RWMutex
	state     map[int64]string
	lastShown []string // lecture ids, in the order last listed
}

// NewRouter creates a new Telegram router serving a single owner chat.
func NewRouter(bot *tgbotapi.BotAPI, log *zap.Logger, trk *tracker.Tracker, repo store.Repo, ownerID int64) *Router {
	return &Router{
		bot:     bot,
		log:     log,
		trk:     trk,
		repo:    repo,
		ownerID: ownerID,
		state:   make(map[int64]string),
	}
}

func (r *Router) setPending(chatID int64, s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state[chatID] = s
}

func (r *Router) getPending(chatID int64) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state[chatID]
}

func (r *Router) clearPending(chatID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.state, chatID)
}

func (r *Router) setLastShown(ids []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastShown = ids
}

func (r *Router) lastShownID(n int) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if n < 1 || n > len(r.lastShown) {
		return "", false
	}
	return r.lastShown[n-1], true
}

// HandleUpdate routes a single update to the appropriate handler.
func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message != nil {
		msg := upd.Message
		chatID := msg.Chat.ID
		if chatID != r.ownerID {
			r.sendText(chatID, notOwnerText)
			return
		}
		text := strings.TrimSpace(msg.Text)
		cmd, arg := splitCommand(text)

		switch cmd {
		case "/start", "/help":
			r.handleStart(chatID)
		case "/today":
			r.handleToday(chatID)
		case "/all":
			r.handleAll(chatID, arg)
		case "/find":
			r.handleFind(chatID, arg)
		case "/add":
			r.handleAddPrompt(chatID)
		case "/edit":
			r.handleEdit(chatID, arg)
		case "/remove":
			r.handleRemove(ctx, chatID, arg)
		case "/export":
			r.handleExport(chatID)
		case "/pause":
			r.handlePause(chatID)
		case "/resume":
			r.handleResume(chatID)
		case "/status":
			r.handleStatus(ctx, chatID)
		default:
			r.handleFreeForm(ctx, chatID, text)
		}
		return
	}

	if upd.CallbackQuery != nil {
		cb := upd.CallbackQuery
		chatID := cb.Message.Chat.ID
		if chatID != r.ownerID {
			return
		}
		_ = r.answerCallback(cb.ID, "")
		if day, ok := strings.CutPrefix(cb.Data, "day:"); ok {
			r.handleAll(chatID, day)
		}
	}
}

// splitCommand separates "/cmd rest of line" into its command and argument.
func splitCommand(text string) (cmd, arg string) {
	if !strings.HasPrefix(text, "/") {
		return "", text
	}
	cmd, arg, _ = strings.Cut(text, " ")
	return cmd, strings.TrimSpace(arg)
}

func (r *Router) sendText(chatID int64, text string) {
	_, _ = r.bot.Send(tgbotapi.NewMessage(chatID, text))
}

func (r *Router) answerCallback(id, text string) error {
	_, err := r.bot.Request(tgbotapi.NewCallback(id, text))
	return err
}
