// Package bot wires the Telegram transport to the wagering services. It owns
// routing only: which command, button or typed message goes to which flow,
// based on the sender's current session state. Game rules and balance
// mutations live below the service boundary.
package bot

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"taixiu/config"
	"taixiu/game"
	"taixiu/service"
	"taixiu/session"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// Bot is the Telegram dispatcher
type Bot struct {
	api      *tgbotapi.BotAPI
	cfg      *config.Config
	sessions *session.Store

	userService     service.UserService
	gameService     service.GameService
	rechargeService service.RechargeService

	rngMu sync.Mutex
	rng   *rand.Rand
}

// New creates a new bot connected to the Telegram API
func New(cfg *config.Config, userService service.UserService, gameService service.GameService, rechargeService service.RechargeService) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, err
	}

	log.Infof("Authorized on account %s", api.Self.UserName)

	return &Bot{
		api:             api,
		cfg:             cfg,
		sessions:        session.NewStore(),
		userService:     userService,
		gameService:     gameService,
		rechargeService: rechargeService,
		rng:             rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// Run polls for updates until ctx is cancelled. Every update is handled in
// its own goroutine; per-user ordering is enforced by the session store's
// keyed lock, not by the loop.
func (b *Bot) Run(ctx context.Context) {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30

	updates := b.api.GetUpdatesChan(updateConfig)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			go b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("Panic while handling update: %v", r)
		}
	}()

	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(ctx, update.Message)
	case update.Message != nil && update.Message.Text != "":
		b.handleText(ctx, update.Message)
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID

	switch msg.Command() {
	case "start":
		b.handleStart(ctx, msg)
	case "help":
		b.reply(msg.Chat.ID, helpText)
	case "game":
		b.handleGame(ctx, msg)
	case "balance":
		b.handleBalance(ctx, msg)
	case "history":
		b.handleHistory(ctx, msg)
	case "recharge":
		b.handleRechargeCommand(ctx, msg)
	case "cancel":
		b.sessions.WithLock(userID, func() {
			b.sessions.Clear(userID)
		})
		b.reply(msg.Chat.ID, "Đã hủy thao tác hiện tại.")
	default:
		b.reply(msg.Chat.ID, helpText)
	}
}

// handleText routes a freeform message by the sender's session state. The
// state read and the decision run under the sender's lock so a duplicated
// message cannot be consumed twice against the same state.
func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	text := strings.TrimSpace(msg.Text)

	var state session.State
	var claimed bool
	b.sessions.WithLock(userID, func() {
		state = b.sessions.Get(userID)
		switch state.Kind {
		case session.StateAwaitingCustomBet:
			// Claim the pending bet before the slow settlement path so a
			// double-send plays at most once.
			b.sessions.Clear(userID)
			claimed = true
		case session.StateAdminAwaitingTargetUser, session.StateAdminAwaitingAmount:
			// Consume the step; the recharge handlers re-arm it when the
			// input is unusable. Admin status is re-checked on every step.
			b.sessions.Clear(userID)
			if !b.cfg.IsAdmin(userID) {
				state = session.Idle
			}
		}
	})

	switch state.Kind {
	case session.StateAwaitingCustomBet:
		if claimed {
			b.handleCustomBetAmount(ctx, msg, state.Choice, text)
		}
	case session.StateAdminAwaitingTargetUser:
		b.handleRechargeTargetInput(ctx, msg, text)
	case session.StateAdminAwaitingAmount:
		b.handleRechargeAmountInput(ctx, msg, state.TargetID, text)
	default:
		b.reply(msg.Chat.ID, helpText)
	}
}

func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	// Acknowledge the button press so the client stops its spinner
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		log.Errorf("Error acknowledging callback: %v", err)
	}

	if query.Message == nil {
		return
	}

	b.dispatchCallback(ctx, query)
}

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	user, err := b.userService.GetOrCreate(ctx, msg.From.ID, msg.From.UserName, displayName(msg.From))
	if err != nil {
		log.Errorf("Error creating user %d: %v", msg.From.ID, err)
		b.reply(msg.Chat.ID, errStorage)
		return
	}

	b.reply(msg.Chat.ID, formatWelcome(user))
}

func (b *Bot) handleBalance(ctx context.Context, msg *tgbotapi.Message) {
	user, err := b.userService.GetOrCreate(ctx, msg.From.ID, msg.From.UserName, displayName(msg.From))
	if err != nil {
		log.Errorf("Error getting balance for user %d: %v", msg.From.ID, err)
		b.reply(msg.Chat.ID, errStorage)
		return
	}

	b.reply(msg.Chat.ID, formatBalance(user))
}

func (b *Bot) handleHistory(ctx context.Context, msg *tgbotapi.Message) {
	records, transactions, err := b.userService.GetHistory(ctx, msg.From.ID, historyLimit)
	if err != nil {
		log.Errorf("Error getting history for user %d: %v", msg.From.ID, err)
		b.reply(msg.Chat.ID, errStorage)
		return
	}

	b.reply(msg.Chat.ID, formatHistory(records, transactions))
}

func (b *Bot) rollDice() [3]int {
	b.rngMu.Lock()
	defer b.rngMu.Unlock()
	return game.Roll(b.rng)
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Errorf("Error sending message to chat %d: %v", chatID, err)
	}
}

func (b *Bot) replyWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	if _, err := b.api.Send(msg); err != nil {
		log.Errorf("Error sending message to chat %d: %v", chatID, err)
	}
}

func displayName(from *tgbotapi.User) string {
	name := strings.TrimSpace(from.FirstName + " " + from.LastName)
	if name == "" {
		name = from.UserName
	}
	return name
}
