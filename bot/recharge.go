package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"taixiu/models"
	"taixiu/session"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// handleRechargeCommand starts the two step admin recharge conversation:
// first the target's Telegram ID, then the amount.
func (b *Bot) handleRechargeCommand(ctx context.Context, msg *tgbotapi.Message) {
	adminID := msg.From.ID
	if !b.cfg.IsAdmin(adminID) {
		b.reply(msg.Chat.ID, "Bạn không có quyền dùng lệnh này.")
		return
	}

	b.sessions.WithLock(adminID, func() {
		b.sessions.Set(adminID, session.State{Kind: session.StateAdminAwaitingTargetUser})
	})

	b.replyWithKeyboard(msg.Chat.ID,
		"💰 NẠP XU 💰\nNhập Telegram ID của người cần nạp:",
		rechargeCancelKeyboard())
}

// handleRechargeTargetInput consumes the target ID typed by the admin. The
// armed state was already claimed under the admin's lock; a bad or unknown
// ID re-arms it so the admin can try again.
func (b *Bot) handleRechargeTargetInput(ctx context.Context, msg *tgbotapi.Message, text string) {
	adminID := msg.From.ID

	rearm := func(prompt string) {
		b.sessions.WithLock(adminID, func() {
			b.sessions.Set(adminID, session.State{Kind: session.StateAdminAwaitingTargetUser})
		})
		b.replyWithKeyboard(msg.Chat.ID, prompt, rechargeCancelKeyboard())
	}

	targetID, err := strconv.ParseInt(text, 10, 64)
	if err != nil || targetID <= 0 {
		rearm("ID không hợp lệ. Nhập Telegram ID dạng số, hoặc bấm Hủy.")
		return
	}

	exists, err := b.rechargeService.TargetExists(ctx, targetID)
	if err != nil {
		log.Errorf("Error looking up recharge target %d: %v", targetID, err)
		rearm(errStorage + " Nhập lại Telegram ID:")
		return
	}
	if !exists {
		rearm(fmt.Sprintf("Không tìm thấy người dùng %d. Nhập lại Telegram ID:", targetID))
		return
	}

	b.sessions.WithLock(adminID, func() {
		b.sessions.Set(adminID, session.State{Kind: session.StateAdminAwaitingAmount, TargetID: targetID})
	})

	b.replyWithKeyboard(msg.Chat.ID,
		fmt.Sprintf("Nạp cho người dùng %d. Nhập số xu:", targetID),
		rechargeCancelKeyboard())
}

// handleRechargeAmountInput consumes the amount and applies the credit.
func (b *Bot) handleRechargeAmountInput(ctx context.Context, msg *tgbotapi.Message, targetID int64, text string) {
	adminID := msg.From.ID

	amount, err := strconv.ParseInt(text, 10, 64)
	if err != nil || amount <= 0 {
		b.sessions.WithLock(adminID, func() {
			b.sessions.Set(adminID, session.State{Kind: session.StateAdminAwaitingAmount, TargetID: targetID})
		})
		b.replyWithKeyboard(msg.Chat.ID,
			"Số xu không hợp lệ. Nhập một số nguyên dương:",
			rechargeCancelKeyboard())
		return
	}

	newBalance, err := b.rechargeService.Recharge(ctx, targetID, amount)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			b.reply(msg.Chat.ID, fmt.Sprintf("Không tìm thấy người dùng %d nữa, thao tác đã hủy.", targetID))
			return
		}
		log.Errorf("Error recharging user %d by admin %d: %v", targetID, adminID, err)
		b.reply(msg.Chat.ID, errStorage)
		return
	}

	b.reply(msg.Chat.ID,
		fmt.Sprintf("✅ Đã nạp %d xu cho người dùng %d. Số dư mới: %d xu.", amount, targetID, newBalance))

	log.Infof("Recharge applied: admin=%d target=%d amount=%d balance=%d", adminID, targetID, amount, newBalance)
}

func (b *Bot) handleRechargeCancel(ctx context.Context, query *tgbotapi.CallbackQuery) {
	userID := query.From.ID
	b.sessions.WithLock(userID, func() {
		b.sessions.Clear(userID)
	})
	b.reply(query.Message.Chat.ID, "Đã hủy nạp xu.")
}

func rechargeCancelKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Hủy", cbRechargeAbort),
		),
	)
}
