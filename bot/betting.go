package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"taixiu/models"
	"taixiu/session"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// Callback tokens. Every button the bot ever renders carries one of these,
// either verbatim or as a prefix with its arguments appended.
const (
	cbBetSideTai    = "bet_side_tai"
	cbBetSideXiu    = "bet_side_xiu"
	cbBetAmount     = "bet_amount" // bet_amount_<side>_<stake>
	cbBetCustom     = "bet_custom" // bet_custom_<side>
	cbBetCancel     = "bet_cancel"
	cbBetAgain      = "bet_again"
	cbRechargeAbort = "recharge_cancel"
)

var stakePresets = []int64{100, 200, 500, 1000}

// dispatchCallback maps a callback token to its handler. Fixed tokens hit
// the table; parameterized tokens are matched on their prefix.
func (b *Bot) dispatchCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	handlers := map[string]func(context.Context, *tgbotapi.CallbackQuery){
		cbBetSideTai:    func(ctx context.Context, q *tgbotapi.CallbackQuery) { b.handleSideChosen(ctx, q, models.ChoiceTai) },
		cbBetSideXiu:    func(ctx context.Context, q *tgbotapi.CallbackQuery) { b.handleSideChosen(ctx, q, models.ChoiceXiu) },
		cbBetCancel:     b.handleBetCancel,
		cbBetAgain:      b.handleBetAgain,
		cbRechargeAbort: b.handleRechargeCancel,
	}

	data := query.Data
	if handler, ok := handlers[data]; ok {
		handler(ctx, query)
		return
	}

	switch {
	case strings.HasPrefix(data, cbBetAmount+"_"):
		b.handleAmountChosen(ctx, query, strings.TrimPrefix(data, cbBetAmount+"_"))
	case strings.HasPrefix(data, cbBetCustom+"_"):
		b.handleCustomChosen(ctx, query, strings.TrimPrefix(data, cbBetCustom+"_"))
	default:
		log.Warnf("Unknown callback token %q from user %d", data, query.From.ID)
	}
}

// handleGame opens the betting flow with the side selection keyboard
func (b *Bot) handleGame(ctx context.Context, msg *tgbotapi.Message) {
	user, err := b.userService.GetOrCreate(ctx, msg.From.ID, msg.From.UserName, displayName(msg.From))
	if err != nil {
		log.Errorf("Error getting user %d: %v", msg.From.ID, err)
		b.reply(msg.Chat.ID, errStorage)
		return
	}

	b.replyWithKeyboard(msg.Chat.ID,
		fmt.Sprintf("🎲 TÀI XỈU 🎲\nSố dư: %d xu\n\nChọn cửa muốn cược:", user.Balance),
		sideKeyboard())
}

func (b *Bot) handleSideChosen(ctx context.Context, query *tgbotapi.CallbackQuery, choice models.Choice) {
	chatID := query.Message.Chat.ID

	user, err := b.userService.GetOrCreate(ctx, query.From.ID, query.From.UserName, displayName(query.From))
	if err != nil {
		log.Errorf("Error getting user %d: %v", query.From.ID, err)
		b.reply(chatID, errStorage)
		return
	}

	b.replyWithKeyboard(chatID,
		fmt.Sprintf("Cửa %s. Số dư: %d xu\n\nChọn mức cược:", choice.Label(), user.Balance),
		amountKeyboard(choice))
}

// handleAmountChosen settles a preset-stake wager. args is "<side>_<stake>".
func (b *Bot) handleAmountChosen(ctx context.Context, query *tgbotapi.CallbackQuery, args string) {
	parts := strings.SplitN(args, "_", 2)
	if len(parts) != 2 {
		log.Warnf("Malformed bet amount token %q from user %d", args, query.From.ID)
		return
	}

	choice := models.Choice(parts[0])
	stake, err := strconv.ParseInt(parts[1], 10, 64)
	if !choice.Valid() || err != nil || stake <= 0 {
		log.Warnf("Malformed bet amount token %q from user %d", args, query.From.ID)
		return
	}

	b.playWager(ctx, query.Message.Chat.ID, query.From, choice, stake)
}

// handleCustomChosen arms the custom-amount state; the next freeform message
// from this user is interpreted as the stake.
func (b *Bot) handleCustomChosen(ctx context.Context, query *tgbotapi.CallbackQuery, args string) {
	choice := models.Choice(args)
	if !choice.Valid() {
		log.Warnf("Malformed custom bet token %q from user %d", args, query.From.ID)
		return
	}

	userID := query.From.ID
	b.sessions.WithLock(userID, func() {
		b.sessions.Set(userID, session.State{Kind: session.StateAwaitingCustomBet, Choice: choice})
	})

	b.reply(query.Message.Chat.ID,
		fmt.Sprintf("Cửa %s. Nhập số xu muốn cược (ví dụ: 250):", choice.Label()))
}

// handleCustomBetAmount consumes the typed stake after the state was claimed
// under the sender's lock. An unusable amount re-arms the state and
// re-prompts.
func (b *Bot) handleCustomBetAmount(ctx context.Context, msg *tgbotapi.Message, choice models.Choice, text string) {
	stake, err := strconv.ParseInt(text, 10, 64)
	if err != nil || stake <= 0 {
		b.sessions.WithLock(msg.From.ID, func() {
			b.sessions.Set(msg.From.ID, session.State{Kind: session.StateAwaitingCustomBet, Choice: choice})
		})
		b.reply(msg.Chat.ID, "Số xu không hợp lệ. Nhập một số nguyên dương, hoặc /cancel để hủy.")
		return
	}

	b.playWager(ctx, msg.Chat.ID, msg.From, choice, stake)
}

func (b *Bot) handleBetCancel(ctx context.Context, query *tgbotapi.CallbackQuery) {
	userID := query.From.ID
	b.sessions.WithLock(userID, func() {
		b.sessions.Clear(userID)
	})
	b.reply(query.Message.Chat.ID, "Đã hủy cược.")
}

func (b *Bot) handleBetAgain(ctx context.Context, query *tgbotapi.CallbackQuery) {
	user, err := b.userService.GetOrCreate(ctx, query.From.ID, query.From.UserName, displayName(query.From))
	if err != nil {
		log.Errorf("Error getting user %d: %v", query.From.ID, err)
		b.reply(query.Message.Chat.ID, errStorage)
		return
	}

	b.replyWithKeyboard(query.Message.Chat.ID,
		fmt.Sprintf("🎲 TÀI XỈU 🎲\nSố dư: %d xu\n\nChọn cửa muốn cược:", user.Balance),
		sideKeyboard())
}

// playWager validates the stake against the current balance, rolls, presents
// the dice, and hands settlement to the game service. Presentation pacing is
// cancellable; the settlement itself is not.
func (b *Bot) playWager(ctx context.Context, chatID int64, from *tgbotapi.User, choice models.Choice, stake int64) {
	user, err := b.userService.GetOrCreate(ctx, from.ID, from.UserName, displayName(from))
	if err != nil {
		log.Errorf("Error getting user %d before wager: %v", from.ID, err)
		b.reply(chatID, errStorage)
		return
	}

	if user.Balance < stake {
		b.reply(chatID, fmt.Sprintf("Không đủ số dư: bạn có %d xu, cần %d xu.", user.Balance, stake))
		return
	}

	dice := b.rollDice()
	b.presentRoll(ctx, chatID, dice)

	// The wager was accepted the moment the dice were rolled; settle it even
	// if the inbound update's context is torn down mid-flight.
	result, err := b.gameService.Play(context.WithoutCancel(ctx), from.ID, choice, stake, dice)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInsufficientBalance):
			b.reply(chatID, "Không đủ số dư để đặt cược này.")
		default:
			log.Errorf("Error settling wager for user %d: %v", from.ID, err)
			b.reply(chatID, errStorage)
		}
		return
	}

	b.replyWithKeyboard(chatID, formatResult(result), againKeyboard())

	log.Infof("Wager settled: user=%d choice=%s stake=%d dice=%d-%d-%d total=%d won=%v balance=%d",
		from.ID, choice, stake, dice[0], dice[1], dice[2], result.Total, result.Won, result.NewBalance)
}

// presentRoll shows the three dice one by one. Pure theater: the triple is
// already fixed and the pacing aborts quietly on shutdown.
func (b *Bot) presentRoll(ctx context.Context, chatID int64, dice [3]int) {
	for _, die := range dice {
		b.reply(chatID, dieFace(die))
		select {
		case <-ctx.Done():
			return
		case <-time.After(b.cfg.RollDelay):
		}
	}
}

func sideKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬆️ Tài (11-18)", cbBetSideTai),
			tgbotapi.NewInlineKeyboardButtonData("⬇️ Xỉu (3-10)", cbBetSideXiu),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Hủy", cbBetCancel),
		),
	)
}

func amountKeyboard(choice models.Choice) tgbotapi.InlineKeyboardMarkup {
	var presets []tgbotapi.InlineKeyboardButton
	for _, stake := range stakePresets {
		presets = append(presets, tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("%d xu", stake),
			fmt.Sprintf("%s_%s_%d", cbBetAmount, choice, stake),
		))
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		presets,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ Nhập số khác", fmt.Sprintf("%s_%s", cbBetCustom, choice)),
			tgbotapi.NewInlineKeyboardButtonData("❌ Hủy", cbBetCancel),
		),
	)
}

func againKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎲 Chơi tiếp", cbBetAgain),
		),
	)
}
