// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// Bot owns the gateway connection and feeds events to a Dispatcher.
type Bot struct {
	session    *discordgo.Session
	dispatcher *Dispatcher
	guildID    string

	ctx    context.Context
	cancel context.CancelFunc
}

// NewBot prepares a session for token. Commands are registered in guildID,
// or globally when guildID is empty.
func NewBot(token, guildID string, dispatcher *Dispatcher) (*Bot, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsMessageContent

	ctx, cancel := context.WithCancel(context.Background())
	b := &Bot{
		session:    s,
		dispatcher: dispatcher,
		guildID:    guildID,
		ctx:        ctx,
		cancel:     cancel,
	}

	s.AddHandler(b.onReady)
	s.AddHandler(b.onInteraction)
	s.AddHandler(b.onMessage)
	return b, nil
}

// Open connects to the Discord gateway.
func (b *Bot) Open() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}
	return nil
}

// Close cancels in-flight handlers and disconnects.
func (b *Bot) Close() error {
	b.cancel()
	return b.session.Close()
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	slog.Info("discord session ready", "user", r.User.Username, "guilds", len(r.Guilds))

	cmds, err := s.ApplicationCommandBulkOverwrite(r.User.ID, b.guildID, Commands())
	if err != nil {
		slog.Error("failed to sync commands", "error", err)
		return
	}
	slog.Info("commands synced", "count", len(cmds), "guild", b.guildID)
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := b.dispatcher.HandleInteraction(b.ctx, s, i.Interaction); err != nil {
		slog.Error("interaction failed", "error", err, "interaction_id", i.ID)
	}
}

func (b *Bot) onMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if err := b.dispatcher.HandleMessage(b.ctx, s, m.Message); err != nil {
		slog.Error("message command failed", "error", err, "channel", m.ChannelID)
	}
}
