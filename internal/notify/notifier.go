// Package notify posts progression milestones to a Discord channel.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/TaskQuest_Go/internal/event"
	"github.com/osse101/TaskQuest_Go/internal/logger"
)

// Embed colors
const (
	ColorLevelUp        = 0xf1c40f
	ColorQuestCompleted = 0x2ecc71
	ColorBossDefeated   = 0xe74c3c

	FooterText = "TaskQuest"
)

const (
	LogMsgNotifySent   = "Discord notification sent"
	LogMsgNotifyFailed = "Discord notification failed"
)

// Sender is the part of a discordgo session the notifier needs
type Sender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Notifier turns progression events into channel embeds
type Notifier struct {
	sender    Sender
	channelID string
}

// New creates a notifier for one channel
func New(sender Sender, channelID string) *Notifier {
	return &Notifier{
		sender:    sender,
		channelID: channelID,
	}
}

// NewSession opens a bot session for the given token
func NewSession(token string) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}
	return s, nil
}

// Events are the milestones announced on Discord
var Events = []event.Type{event.LevelUp, event.QuestCompleted, event.BossDefeated}

// Register subscribes the notifier to the milestone events. When wrap is
// given, the handler is wrapped first, e.g. to move delivery off the bus.
func (n *Notifier) Register(bus event.Bus, wrap ...func(event.Handler) event.Handler) {
	var handler event.Handler = n.Handle
	for _, w := range wrap {
		handler = w(handler)
	}
	for _, t := range Events {
		bus.Subscribe(t, handler)
	}
}

// Handle sends the embed for evt. Unknown event types are ignored.
func (n *Notifier) Handle(ctx context.Context, evt event.Event) error {
	embed := n.embedFor(evt)
	if embed == nil {
		return nil
	}

	if _, err := n.sender.ChannelMessageSendEmbed(n.channelID, embed); err != nil {
		logger.FromContext(ctx).Warn(LogMsgNotifyFailed, "event_type", evt.Type, "error", err)
		return fmt.Errorf("send %s notification: %w", evt.Type, err)
	}

	logger.FromContext(ctx).Debug(LogMsgNotifySent, "event_type", evt.Type)
	return nil
}

func (n *Notifier) embedFor(evt event.Event) *discordgo.MessageEmbed {
	switch p := evt.Payload.(type) {
	case event.LevelUpPayloadV1:
		return embed("Level Up!",
			fmt.Sprintf("**%s** reached level **%d** (was %d).\nTitle: *%s*", p.CharacterName, p.NewLevel, p.OldLevel, p.Title),
			ColorLevelUp)
	case event.QuestCompletedPayloadV1:
		return embed("Quest Completed",
			fmt.Sprintf("**%s** (%s)\n+%d XP, +%d gold", p.Title, label(p.Difficulty), p.XPReward, p.GoldReward),
			ColorQuestCompleted)
	case event.BossDefeatedPayloadV1:
		return embed("Boss Defeated",
			fmt.Sprintf("**%s** has fallen! (%d HP)", p.BossName, p.MaxHP),
			ColorBossDefeated)
	}
	return nil
}

// label renders enum-style values like "EPIC" as "Epic". Casers hold state,
// so each call gets its own.
func label(s string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(strings.ToLower(s), "_", " "))
}

func embed(title, description string, color int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
		Footer: &discordgo.MessageEmbedFooter{
			Text: FooterText,
		},
	}
}
