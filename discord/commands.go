// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package discord

import "github.com/bwmarrin/discordgo"

// Slash command names
const (
	CommandAttendance = "attendance"
	CommandReset      = "attendance-reset"
	CommandReport     = "attendance-report"

	OptionRole   = "role"
	OptionResync = "resync"

	// LegacyClearCommand is the prefix command older servers still use
	LegacyClearCommand = "!clear_attendance"
)

func localized(zh, ja, ko string) *map[discordgo.Locale]string {
	return &map[discordgo.Locale]string{
		discordgo.ChineseTW: zh,
		discordgo.Japanese:  ja,
		discordgo.Korean:    ko,
	}
}

// Commands returns the slash commands registered on Ready.
func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:                     CommandAttendance,
			NameLocalizations:        localized("出席", "出席", "출석"),
			Description:              "Pick your attendance time",
			DescriptionLocalizations: localized("選擇出席時間", "出席時間を選ぶ", "출석 시간 선택"),
		},
		{
			Name:                     CommandReset,
			NameLocalizations:        localized("清空出席", "出席リセット", "출석초기화"),
			Description:              "Clear all attendance data",
			DescriptionLocalizations: localized("清空所有出席資料", "すべての出席データを削除", "모든 출석 데이터 삭제"),
		},
		{
			Name:                     CommandReport,
			NameLocalizations:        localized("簽到統計", "出席集計", "출석통계"),
			Description:              "Count who in a role has checked in",
			DescriptionLocalizations: localized("查看某身分組的簽到人數", "ロールの出席人数を確認", "역할의 출석 인원 확인"),
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionRole,
					Name:        OptionRole,
					Description: "Role to count",
					DescriptionLocalizations: map[discordgo.Locale]string{
						discordgo.ChineseTW: "想要統計的身分組",
					},
					Required: true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        OptionResync,
					Description: "Reload the roster before counting",
					DescriptionLocalizations: map[discordgo.Locale]string{
						discordgo.ChineseTW: "統計前先從表單重新同步",
					},
				},
			},
		},
	}
}
