package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Smartnaka/SkulBell/internal/domain"
	"github.com/Smartnaka/SkulBell/internal/ics"
)

var dayOrder = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

func (r *Router) handleStart(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, startText)
	msg.ReplyMarkup = mainMenuKeyboard(r.trk.Paused())
	_, _ = r.bot.Send(msg)
}

func (r *Router) handleToday(chatID int64) {
	today := domain.TodaysLectures(r.trk.Lectures(), time.Now())
	if len(today) == 0 {
		r.sendText(chatID, emptyTodayText)
		return
	}

	var b strings.Builder
	b.WriteString(todayTitle + "\n\n")
	ids := make([]string, 0, len(today))
	for i, l := range today {
		writeLectureLine(&b, i+1, &l)
		ids = append(ids, l.ID)
	}
	r.setLastShown(ids)
	r.sendText(chatID, b.String())
}

func (r *Router) handleAll(chatID int64, day string) {
	filter := domain.DayAll
	if day != "" {
		d, err := domain.ParseWeekday(day)
		if err != nil {
			r.sendText(chatID, "Unknown day. Use one of Monday..Sunday, or plain /all.")
			return
		}
		filter = domain.WeekdayName(d)
	}

	lectures := domain.FilterByDayAndQuery(r.trk.Lectures(), filter, "")
	if len(lectures) == 0 {
		msg := tgbotapi.NewMessage(chatID, emptyListText)
		msg.ReplyMarkup = dayInlineKeyboard()
		_, _ = r.bot.Send(msg)
		return
	}

	groups := domain.GroupByDay(lectures)
	var b strings.Builder
	ids := make([]string, 0, len(lectures))
	n := 0
	for _, d := range dayOrder {
		group, ok := groups[d]
		if !ok {
			continue
		}
		b.WriteString(d + "\n")
		for _, l := range group {
			n++
			writeLectureLine(&b, n, &l)
			ids = append(ids, l.ID)
		}
		b.WriteString("\n")
	}
	r.setLastShown(ids)

	msg := tgbotapi.NewMessage(chatID, strings.TrimRight(b.String(), "\n"))
	msg.ReplyMarkup = dayInlineKeyboard()
	_, _ = r.bot.Send(msg)
}

func (r *Router) handleFind(chatID int64, query string) {
	if query == "" {
		r.sendText(chatID, "What should I search for? Send the text now.")
		r.setPending(chatID, pendingFind)
		return
	}
	r.runFind(chatID, query)
}

func (r *Router) runFind(chatID int64, query string) {
	found := domain.FilterByDayAndQuery(r.trk.Lectures(), domain.DayAll, query)
	if len(found) == 0 {
		r.sendText(chatID, fmt.Sprintf("Nothing matches %q.", query))
		return
	}
	domain.SortByStart(found)

	var b strings.Builder
	fmt.Fprintf(&b, "Matches for %q:\n\n", query)
	ids := make([]string, 0, len(found))
	for i, l := range found {
		writeLectureLine(&b, i+1, &l)
		ids = append(ids, l.ID)
	}
	r.setLastShown(ids)
	r.sendText(chatID, b.String())
}

func (r *Router) handleAddPrompt(chatID int64) {
	r.sendText(chatID, addPromptText)
	r.setPending(chatID, pendingAdd)
}

// handleFreeForm resolves text sent while a conversational flow is pending.
func (r *Router) handleFreeForm(ctx context.Context, chatID int64, text string) {
	pending := r.getPending(chatID)
	if id, ok := strings.CutPrefix(pending, pendingEditPrefix); ok {
		r.clearPending(chatID)
		r.runEdit(ctx, chatID, id, text)
		return
	}

	switch pending {
	case pendingAdd:
		r.clearPending(chatID)
		l, err := parseAddLine(text)
		if err != nil {
			r.sendText(chatID, "Could not read that: "+err.Error()+"\n\n"+addPromptText)
			return
		}
		added, err := r.trk.Add(ctx, l)
		if err != nil {
			r.sendText(chatID, "Could not add the lecture: "+err.Error())
			return
		}
		r.sendText(chatID, fmt.Sprintf("Added %s on %s, %s – %s. Reminders are set.",
			added.Title, added.Day, added.StartTime, added.EndTime))

	case pendingFind:
		r.clearPending(chatID)
		r.runFind(chatID, text)

	default:
		// No pending flow: ignore free-form input.
	}
}

// parseAddLine reads "Title; Location; Day; Start; End[; Instructor]".
func parseAddLine(text string) (domain.Lecture, error) {
	parts := strings.Split(text, ";")
	if len(parts) < 5 || len(parts) > 6 {
		return domain.Lecture{}, fmt.Errorf("expected 5 or 6 fields separated by ';', got %d", len(parts))
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	l := domain.Lecture{
		Title:     parts[0],
		Location:  parts[1],
		Day:       parts[2],
		StartTime: parts[3],
		EndTime:   parts[4],
	}
	if d, err := domain.ParseWeekday(l.Day); err == nil {
		l.Day = domain.WeekdayName(d)
	}
	if len(parts) == 6 {
		l.Instructor = parts[5]
	}
	return l, nil
}

func (r *Router) handleEdit(chatID int64, arg string) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		r.sendText(chatID, "Use /edit <number> with a number from the last list.")
		return
	}
	id, ok := r.lastShownID(n)
	if !ok {
		r.sendText(chatID, "No such entry in the last list. Run /all or /today first.")
		return
	}
	l, ok := r.trk.Get(id)
	if !ok {
		r.sendText(chatID, "That lecture no longer exists.")
		return
	}
	r.sendText(chatID, fmt.Sprintf("Editing %s. Send the replacement as one line:\n"+
		"Title; Location; Day; Start; End; Instructor (optional)\n\nCurrent:\n%s",
		l.Title, editLine(&l)))
	r.setPending(chatID, pendingEditPrefix+id)
}

func (r *Router) runEdit(ctx context.Context, chatID int64, id, text string) {
	current, ok := r.trk.Get(id)
	if !ok {
		r.sendText(chatID, "That lecture no longer exists.")
		return
	}
	l, err := mergeEditLine(current, text)
	if err != nil {
		r.sendText(chatID, "Could not read that: "+err.Error())
		return
	}
	if err := r.trk.Update(ctx, l); err != nil {
		r.sendText(chatID, "Could not update the lecture: "+err.Error())
		return
	}
	r.sendText(chatID, fmt.Sprintf("Updated %s on %s, %s – %s. Its reminders were rescheduled.",
		l.Title, l.Day, l.StartTime, l.EndTime))
}

// editLine renders a lecture in the /add line grammar so the user can
// copy, tweak and resend it.
func editLine(l *domain.Lecture) string {
	line := fmt.Sprintf("%s; %s; %s; %s; %s", l.Title, l.Location, l.Day, l.StartTime, l.EndTime)
	if l.Instructor != "" {
		line += "; " + l.Instructor
	}
	return line
}

// mergeEditLine parses a replacement line and carries over everything
// the line grammar has no slot for: identity, reminder settings and the
// cosmetic fields.
func mergeEditLine(current domain.Lecture, text string) (domain.Lecture, error) {
	l, err := parseAddLine(text)
	if err != nil {
		return domain.Lecture{}, err
	}
	l.ID = current.ID
	l.CreatedAt = current.CreatedAt
	l.ReminderSettings = current.ReminderSettings
	l.Description = current.Description
	l.Color = current.Color
	l.Type = current.Type
	return l, nil
}

func (r *Router) handleRemove(ctx context.Context, chatID int64, arg string) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		r.sendText(chatID, "Use /remove <number> with a number from the last list.")
		return
	}
	id, ok := r.lastShownID(n)
	if !ok {
		r.sendText(chatID, "No such entry in the last list. Run /all or /today first.")
		return
	}
	l, _ := r.trk.Get(id)
	if err := r.trk.Remove(ctx, id); err != nil {
		r.log.Error("remove failed", zap.String("lecture", id), zap.Error(err))
		r.sendText(chatID, "Could not remove the lecture.")
		return
	}
	r.sendText(chatID, fmt.Sprintf("Removed %s. Its reminders are canceled.", l.Title))
}

func (r *Router) handleExport(chatID int64) {
	lectures := r.trk.Lectures()
	if len(lectures) == 0 {
		r.sendText(chatID, emptyListText)
		return
	}
	payload := ics.Build(lectures, time.Now())
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  "schedule.ics",
		Bytes: []byte(payload),
	})
	doc.Caption = "Your weekly schedule. Import it into any calendar app."
	if _, err := r.bot.Send(doc); err != nil {
		r.log.Error("export send failed", zap.Error(err))
		r.sendText(chatID, "Could not send the calendar file.")
	}
}

func (r *Router) handlePause(chatID int64) {
	r.trk.SetPaused(true)
	msg := tgbotapi.NewMessage(chatID, "Reminders paused ⏸")
	msg.ReplyMarkup = mainMenuKeyboard(true)
	_, _ = r.bot.Send(msg)
}

func (r *Router) handleResume(chatID int64) {
	r.trk.SetPaused(false)
	msg := tgbotapi.NewMessage(chatID, "Reminders resumed ✅")
	msg.ReplyMarkup = mainMenuKeyboard(false)
	_, _ = r.bot.Send(msg)
}

func (r *Router) handleStatus(ctx context.Context, chatID int64) {
	lectures := r.trk.Lectures()
	pending, err := r.repo.CountReminders(ctx)
	if err != nil {
		r.log.Error("count reminders failed", zap.Error(err))
	}

	next := "—"
	if rem, err := r.repo.NextReminder(ctx); err == nil && rem != nil {
		next = rem.FireAt.Local().Format("Mon Jan 2 15:04") + " (" + rem.Title + ")"
	}

	state := "✅ Active"
	if r.trk.Paused() {
		state = "⏸ Paused"
	}

	body := fmt.Sprintf("%s\n\n"+statusFmt,
		statusTitle,
		len(lectures),
		pending,
		state,
		next,
	)
	msg := tgbotapi.NewMessage(chatID, body)
	msg.ReplyMarkup = mainMenuKeyboard(r.trk.Paused())
	_, _ = r.bot.Send(msg)
}

func writeLectureLine(b *strings.Builder, n int, l *domain.Lecture) {
	fmt.Fprintf(b, "%d. %s — %s", n, formatTimeRange(l), l.Title)
	if l.Location != "" {
		fmt.Fprintf(b, " @ %s", l.Location)
	}
	if l.Instructor != "" {
		fmt.Fprintf(b, " (%s)", l.Instructor)
	}
	b.WriteString("\n")
}

// formatTimeRange renders "9:00 AM - 10:30 AM"; a time that does not
// parse renders as N/A instead of failing the whole view.
func formatTimeRange(l *domain.Lecture) string {
	start, err1 := l.Start()
	end, err2 := l.End()
	if err1 != nil || err2 != nil {
		return "N/A"
	}
	return start.Format12h() + " - " + end.Format12h()
}
