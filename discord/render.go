// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/danielhkuo/roll-call/models"
	"github.com/danielhkuo/roll-call/prompt"
)

// Discord allows at most five buttons per action row
const buttonsPerRow = 5

func deferReply(s Session, i *discordgo.Interaction, ephemeral bool) error {
	resp := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{},
	}
	if ephemeral {
		resp.Data.Flags = discordgo.MessageFlagsEphemeral
	}
	if err := s.InteractionRespond(i, resp); err != nil {
		return fmt.Errorf("failed to acknowledge interaction: %w", err)
	}
	return nil
}

func followup(s Session, i *discordgo.Interaction, reply models.Reply) error {
	params := &discordgo.WebhookParams{Content: reply.Text}
	if reply.Ephemeral {
		params.Flags = discordgo.MessageFlagsEphemeral
	}
	if reply.Prompt != nil {
		params.Components = components(*reply.Prompt)
	}
	if _, err := s.FollowupMessageCreate(i, true, params); err != nil {
		return fmt.Errorf("failed to send reply: %w", err)
	}
	return nil
}

// components renders a prompt as rows of buttons whose custom IDs carry the
// canonical choice, never the label.
func components(p models.Prompt) []discordgo.MessageComponent {
	var rows []discordgo.MessageComponent
	var row discordgo.ActionsRow
	for _, o := range p.Options {
		row.Components = append(row.Components, discordgo.Button{
			Label:    o.Label,
			Style:    buttonStyle(o.Style),
			CustomID: prompt.CustomID(o.Choice),
		})
		if len(row.Components) == buttonsPerRow {
			rows = append(rows, row)
			row = discordgo.ActionsRow{}
		}
	}
	if len(row.Components) > 0 {
		rows = append(rows, row)
	}
	return rows
}

func buttonStyle(style string) discordgo.ButtonStyle {
	switch style {
	case models.StyleSecondary:
		return discordgo.SecondaryButton
	case models.StyleDanger:
		return discordgo.DangerButton
	default:
		return discordgo.PrimaryButton
	}
}
