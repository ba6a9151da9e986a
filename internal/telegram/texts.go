package telegram

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// UI texts in English
const (
	startText = "📚 I track your weekly lectures and remind you before each one.\n\n" +
		"• /today — today's lectures\n" +
		"• /all — the full week (or /all Monday)\n" +
		"• /find <text> — search by course, room or instructor\n" +
		"• /add — add a lecture\n" +
		"• /edit <n> — edit entry n from the last list\n" +
		"• /remove <n> — remove entry n from the last list\n" +
		"• /export — calendar file (.ics)\n" +
		"• /pause, /resume — reminder switch\n" +
		"• /status — what's scheduled next"

	addPromptText = "Send the lecture as one line:\n" +
		"Title; Location; Day; Start; End; Instructor (optional)\n\n" +
		"Example: Data Structures; Room 101; Monday; 9:00 AM; 10:30 AM; Dr. Smith"

	notOwnerText   = "This bot serves a single owner. Run your own instance to use it."
	emptyTodayText = "No lectures today. Take a well-deserved break! 🎉"
	emptyListText  = "No lectures yet. Use /add to schedule one."

	todayTitle  = "🗓 Today's lectures:"
	statusTitle = "🧾 Schedule status:"
	statusFmt   = "• Lectures: %d\n• Pending reminders: %d\n• Reminders: %s\n• Next: %s\n"
)

// mainMenuKeyboard builds a reply keyboard with a single toggle button:
// if paused is true -> "/resume", else -> "/pause".
func mainMenuKeyboard(paused bool) tgbotapi.ReplyKeyboardMarkup {
	toggle := "/pause"
	if paused {
		toggle = "/resume"
	}
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("/today"),
			tgbotapi.NewKeyboardButton("/all"),
			tgbotapi.NewKeyboardButton("/add"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("/status"),
			tgbotapi.NewKeyboardButton(toggle),
		),
	)
}

// dayInlineKeyboard offers per-day filters for the /all view.
func dayInlineKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Mon", "day:Monday"),
			tgbotapi.NewInlineKeyboardButtonData("Tue", "day:Tuesday"),
			tgbotapi.NewInlineKeyboardButtonData("Wed", "day:Wednesday"),
			tgbotapi.NewInlineKeyboardButtonData("Thu", "day:Thursday"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Fri", "day:Friday"),
			tgbotapi.NewInlineKeyboardButtonData("Sat", "day:Saturday"),
			tgbotapi.NewInlineKeyboardButtonData("Sun", "day:Sunday"),
		),
	)
}
