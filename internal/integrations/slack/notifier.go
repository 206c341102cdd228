package slack

import (
	"context"
	"fmt"
	"log"
	"strings"

	"medgpt-backend/internal/models"

	"github.com/slack-go/slack"
)

// Config configures a Notifier. APIURL is only set in tests.
type Config struct {
	BotToken string
	Channel  string
	APIURL   string
}

// Notifier posts interaction alerts to a Slack channel. A nil *Notifier
// is valid and does nothing.
type Notifier struct {
	client  *slack.Client
	channel string
}

// NewNotifier returns nil when the token or channel is missing.
func NewNotifier(cfg Config) *Notifier {
	if cfg.BotToken == "" || cfg.Channel == "" {
		log.Println("[SlackNotifier] Bot token or alert channel not configured; severe interaction alerts disabled.")
		return nil
	}
	var opts []slack.Option
	if cfg.APIURL != "" {
		opts = append(opts, slack.OptionAPIURL(cfg.APIURL))
	}
	return &Notifier{
		client:  slack.New(cfg.BotToken, opts...),
		channel: cfg.Channel,
	}
}

// NotifySevereInteraction posts the severe results of report.
func (n *Notifier) NotifySevereInteraction(ctx context.Context, report *models.InteractionReport) error {
	if n == nil || report == nil || report.HighestSeverity != models.SeveritySevere {
		return nil
	}
	text := FormatSevereInteraction(report)
	if _, _, err := n.client.PostMessageContext(ctx, n.channel, slack.MsgOptionText(text, false)); err != nil {
		return fmt.Errorf("failed to post message to Slack channel %s: %w", n.channel, err)
	}
	log.Printf("[SlackNotifier] Posted severe interaction alert to %s", n.channel)
	return nil
}

// FormatSevereInteraction renders the Slack message body for report.
func FormatSevereInteraction(report *models.InteractionReport) string {
	var sb strings.Builder
	sb.WriteString(":warning: *Severe drug interaction checked*")
	for _, r := range report.Results {
		if r.Severity != models.SeveritySevere {
			continue
		}
		fmt.Fprintf(&sb, "\n• %s + %s: %s", r.Medications[0], r.Medications[1], r.Description)
	}
	return sb.String()
}

// FormatReport renders every result of report for a slash command reply.
func FormatReport(report *models.InteractionReport) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s *%s*", severityEmoji(report.HighestSeverity), report.Alert.Message)
	for _, r := range report.Results {
		fmt.Fprintf(&sb, "\n• %s + %s (%s): %s", r.Medications[0], r.Medications[1], r.Severity, r.Description)
	}
	return sb.String()
}

func severityEmoji(s models.Severity) string {
	switch s {
	case models.SeveritySevere:
		return ":red_circle:"
	case models.SeverityModerate:
		return ":large_orange_circle:"
	case models.SeverityMild:
		return ":large_yellow_circle:"
	default:
		return ":white_check_mark:"
	}
}
