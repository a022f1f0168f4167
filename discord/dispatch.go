// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package discord

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/danielhkuo/roll-call/handlers"
	"github.com/danielhkuo/roll-call/models"
	"github.com/danielhkuo/roll-call/prompt"
)

// memberPageSize is the largest page GuildMembers accepts.
const memberPageSize = 1000

// Session is the part of *discordgo.Session the dispatcher uses.
type Session interface {
	InteractionRespond(i *discordgo.Interaction, r *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	FollowupMessageCreate(i *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
	GuildMembers(guildID string, after string, limit int, options ...discordgo.RequestOption) ([]*discordgo.Member, error)
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	UserChannelPermissions(userID, channelID string, fetchOptions ...discordgo.RequestOption) (int64, error)
	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
}

// Attendance is the service the dispatcher forwards events to.
type Attendance interface {
	IsAdmin(actor models.Actor) bool
	ShowPrompt(actor models.Actor) models.Reply
	HandleSelection(ctx context.Context, actor models.Actor, choice models.Choice) models.Reply
	HandleReset(ctx context.Context, actor models.Actor) models.Reply
	HandleReport(ctx context.Context, actor models.Actor, role string, members []models.Member, opts handlers.ReportOptions) models.Reply
}

// Dispatcher turns Discord events into service calls and renders replies.
type Dispatcher struct {
	svc Attendance
}

func NewDispatcher(svc Attendance) *Dispatcher {
	return &Dispatcher{svc: svc}
}

// HandleInteraction routes slash commands and prompt button clicks. Every
// path acknowledges with a deferred response first so roster calls never
// run into Discord's three second window.
func (d *Dispatcher) HandleInteraction(ctx context.Context, s Session, i *discordgo.Interaction) error {
	actor, ok := actorFromInteraction(i)
	if !ok {
		return fmt.Errorf("interaction %s has no user", i.ID)
	}

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		data := i.ApplicationCommandData()
		slog.Info("command received", "command", data.Name, "user", actor.Key, "interaction_id", i.ID)

		switch data.Name {
		case CommandAttendance:
			if err := deferReply(s, i, true); err != nil {
				return err
			}
			return followup(s, i, d.svc.ShowPrompt(actor))

		case CommandReset:
			// A granted reset is announced publicly; a denial stays private.
			if err := deferReply(s, i, !d.svc.IsAdmin(actor)); err != nil {
				return err
			}
			return followup(s, i, d.svc.HandleReset(ctx, actor))

		case CommandReport:
			if err := deferReply(s, i, true); err != nil {
				return err
			}
			roleID, roleName, resync := reportOptions(data)
			opts := handlers.ReportOptions{Resync: resync}
			var members []models.Member
			if d.svc.IsAdmin(actor) {
				var err error
				members, err = roleMembers(s, i.GuildID, roleID)
				if err != nil {
					slog.Error("failed to list role members", "error", err, "role", roleID)
					opts.MembersIncomplete = true
				}
			}
			reply := d.svc.HandleReport(ctx, actor, roleName, members, opts)
			return followup(s, i, reply)

		default:
			slog.Warn("unknown command", "command", data.Name)
			return nil
		}

	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		choice, err := prompt.ParseCustomID(customID)
		if err != nil {
			slog.Warn("ignoring component", "custom_id", customID)
			return nil
		}
		if err := deferReply(s, i, true); err != nil {
			return err
		}
		return followup(s, i, d.svc.HandleSelection(ctx, actor, choice))
	}

	return nil
}

// HandleMessage serves the legacy !clear_attendance prefix command. Text
// channels have no ephemeral messages, so a private reply (a denial) goes
// to the author's DMs and only the confirmation is posted in the channel.
func (d *Dispatcher) HandleMessage(ctx context.Context, s Session, m *discordgo.Message) error {
	if m.Author == nil || m.Author.Bot || strings.TrimSpace(m.Content) != LegacyClearCommand {
		return nil
	}

	perms, err := s.UserChannelPermissions(m.Author.ID, m.ChannelID)
	if err != nil {
		// Treat as no native admin; the role allow-list can still grant access
		slog.Warn("failed to read channel permissions", "error", err, "user", m.Author.ID)
	}

	actor := models.Actor{
		Key:         models.ResponderKey(m.Author.ID),
		DisplayName: displayName(m.Member, m.Author),
		IsAdmin:     perms&discordgo.PermissionAdministrator != 0,
	}
	if m.Member != nil {
		actor.Roles = m.Member.Roles
	}

	reply := d.svc.HandleReset(ctx, actor)
	channelID := m.ChannelID
	if reply.Ephemeral {
		dm, err := s.UserChannelCreate(m.Author.ID)
		if err != nil {
			return fmt.Errorf("failed to open DM channel: %w", err)
		}
		channelID = dm.ID
	}
	if _, err := s.ChannelMessageSend(channelID, reply.Text); err != nil {
		return fmt.Errorf("failed to send reset reply: %w", err)
	}
	return nil
}

func actorFromInteraction(i *discordgo.Interaction) (models.Actor, bool) {
	actor := models.Actor{Locale: string(i.Locale)}

	switch {
	case i.Member != nil && i.Member.User != nil:
		actor.Key = models.ResponderKey(i.Member.User.ID)
		actor.DisplayName = displayName(i.Member, i.Member.User)
		actor.Roles = i.Member.Roles
		actor.IsAdmin = i.Member.Permissions&discordgo.PermissionAdministrator != 0
	case i.User != nil:
		actor.Key = models.ResponderKey(i.User.ID)
		actor.DisplayName = displayName(nil, i.User)
	default:
		return models.Actor{}, false
	}
	return actor, true
}

// displayName prefers the guild nickname, then the global name, then the
// username
func displayName(m *discordgo.Member, u *discordgo.User) string {
	if m != nil && m.Nick != "" {
		return m.Nick
	}
	if u == nil {
		return ""
	}
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}

func reportOptions(data discordgo.ApplicationCommandInteractionData) (roleID, roleName string, resync bool) {
	for _, opt := range data.Options {
		switch opt.Name {
		case OptionRole:
			roleID, _ = opt.Value.(string)
		case OptionResync:
			if opt.Type == discordgo.ApplicationCommandOptionBoolean {
				resync = opt.BoolValue()
			}
		}
	}

	roleName = roleID
	if data.Resolved != nil {
		if r, ok := data.Resolved.Roles[roleID]; ok && r != nil {
			roleName = r.Name
		}
	}
	return roleID, roleName, resync
}

// roleMembers pages through the guild member list and keeps holders of
// roleID, in the order Discord returns them.
func roleMembers(s Session, guildID, roleID string) ([]models.Member, error) {
	var out []models.Member
	after := ""
	for {
		page, err := s.GuildMembers(guildID, after, memberPageSize)
		if err != nil {
			return out, fmt.Errorf("failed to list guild members: %w", err)
		}
		for _, m := range page {
			if m.User == nil || !slices.Contains(m.Roles, roleID) {
				continue
			}
			out = append(out, models.Member{
				Key:         models.ResponderKey(m.User.ID),
				DisplayName: displayName(m, m.User),
			})
		}
		if len(page) < memberPageSize || page[len(page)-1].User == nil {
			return out, nil
		}
		after = page[len(page)-1].User.ID
	}
}
