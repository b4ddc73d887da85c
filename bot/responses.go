package bot

import (
	"fmt"
	"strings"

	"taixiu/models"
)

const historyLimit = 10

const errStorage = "Hệ thống đang gặp sự cố, vui lòng thử lại sau."

const helpText = `🎲 TÀI XỈU 🎲

Ba xúc xắc được tung, tổng từ 3 đến 18.
⬆️ Tài: tổng 11-18
⬇️ Xỉu: tổng 3-10
Thắng được cộng đúng số xu đã cược, thua bị trừ.

Lệnh:
/game - đặt cược
/balance - xem số dư
/history - lịch sử gần đây
/cancel - hủy thao tác đang dở
/help - xem lại hướng dẫn`

var dieFaces = [...]string{"⚀", "⚁", "⚂", "⚃", "⚄", "⚅"}

func dieFace(die int) string {
	if die < 1 || die > len(dieFaces) {
		return "🎲"
	}
	return dieFaces[die-1]
}

func formatWelcome(user *models.User) string {
	return fmt.Sprintf("Chào %s! 🎲\nSố dư của bạn: %d xu.\nGõ /game để đặt cược, /help để xem luật chơi.",
		user.DisplayName, user.Balance)
}

func formatBalance(user *models.User) string {
	return fmt.Sprintf("💰 Số dư: %d xu\nĐã chơi %d ván, thắng %d, thua %d.",
		user.Balance, user.TotalGames, user.Wins, user.Losses)
}

func formatResult(result *models.GameResult) string {
	faces := fmt.Sprintf("%s %s %s", dieFace(result.Dice[0]), dieFace(result.Dice[1]), dieFace(result.Dice[2]))

	var line string
	if result.Won {
		line = fmt.Sprintf("🎉 THẮNG! +%d xu", result.BetAmount)
	} else {
		line = fmt.Sprintf("😢 THUA! -%d xu", result.BetAmount)
	}

	return fmt.Sprintf("%s\nTổng: %d → %s\nBạn cược: %s\n\n%s\n💰 Số dư: %d xu",
		faces, result.Total, result.Outcome.Label(), result.Choice.Label(), line, result.NewBalance)
}

func formatHistory(records []*models.GameRecord, transactions []*models.Transaction) string {
	var sb strings.Builder

	sb.WriteString("📜 Ván gần đây:\n")
	if len(records) == 0 {
		sb.WriteString("(chưa có ván nào)\n")
	}
	for _, r := range records {
		mark := "😢"
		if r.Won {
			mark = "🎉"
		}
		fmt.Fprintf(&sb, "%s %s %d xu, tổng %d (%s) - %s\n",
			mark, r.Choice.Label(), r.BetAmount, r.Total, r.Outcome.Label(),
			r.CreatedAt.Format("02/01 15:04"))
	}

	sb.WriteString("\n💳 Giao dịch gần đây:\n")
	if len(transactions) == 0 {
		sb.WriteString("(chưa có giao dịch nào)\n")
	}
	for _, t := range transactions {
		fmt.Fprintf(&sb, "%+d xu (%s) - %s\n",
			t.Amount, transactionLabel(t.Kind), t.CreatedAt.Format("02/01 15:04"))
	}

	return strings.TrimRight(sb.String(), "\n")
}

func transactionLabel(kind models.TransactionKind) string {
	switch kind {
	case models.TransactionKindInitial:
		return "khởi tạo"
	case models.TransactionKindWin:
		return "thắng cược"
	case models.TransactionKindLoss:
		return "thua cược"
	case models.TransactionKindRecharge:
		return "nạp xu"
	default:
		return string(kind)
	}
}
