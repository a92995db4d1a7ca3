package notifier

import (
	"fmt"
	"strings"
	"time"

	"SmartMoneyIndex/internal/model"
)

// FormatScoreReport formats the composite score card into a Telegram message.
func FormatScoreReport(card *model.ScoreCard, snap *model.MarketSnapshot) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🏹 <b>GSMI 全球聪明钱指数</b> | %s\n\n", time.Now().Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("总分: <b>%d</b> / 100 (%s)\n\n", card.Total, card.Band))

	b.WriteString("📈 <b>分项明细:</b>\n")
	for _, c := range card.Components {
		b.WriteString(fmt.Sprintf("  %s: %d/%d 分 — %s\n", c.Name, c.Points, c.MaxPoints, c.Commentary))
	}

	if hkd, ok := snap.HKD.Last(); ok {
		b.WriteString(fmt.Sprintf("\n港元汇率: %.4f (7.75 强方 | 7.85 弱方)\n", hkd))
	}
	b.WriteString(fmt.Sprintf("\n数据抓取时间: %s\n", snap.FetchedAt.Format("2006-01-02 15:04")))

	return b.String()
}

// FormatAdvice formats the advisor output for display.
func FormatAdvice(adv model.Advice) string {
	var b strings.Builder
	b.WriteString("🚨 <b>战术预警灯</b>\n\n")
	b.WriteString(fmt.Sprintf("%s\n\n", adv.Light))
	for _, a := range adv.Advisories {
		b.WriteString(fmt.Sprintf("• %s\n", a))
	}
	return b.String()
}

// FormatFetchFailure formats an empty-series warning for the operator.
func FormatFetchFailure(series []string) string {
	return fmt.Sprintf("❌ <b>数据采集异常</b>\n\n以下序列为空: %s\n排查建议: 检查 FRED API Key 是否正确，或网络是否能访问 Yahoo Finance。",
		strings.Join(series, ", "))
}
