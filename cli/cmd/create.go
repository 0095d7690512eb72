/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ponyo877/kieru/domain"
)

var (
	withPassword  bool
	expireMinutes int
)

// createCmd represents the create command
var createCmd = &cobra.Command{
	Use:   "create [room_name]",
	Short: "Creates a room and enters it.",
	Long: `Creates a new ephemeral room on the room service and enters the chat
session. The room self-destructs after the configured number of minutes.
With --password the room requires a password to join.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		roomName := ""
		if len(args) == 1 {
			roomName = args[0]
		} else {
			roomName = promptLine("room ❯ ")
		}
		if roomName == "" {
			fmt.Fprintln(os.Stderr, "Error: room name is required")
			return
		}

		userName := resolveUsername()
		if userName == "" {
			fmt.Fprintln(os.Stderr, "Error: username is required (set one with 'kieru config' or -n)")
			return
		}

		password := ""
		if withPassword {
			password = readPassword("password ❯ ")
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
		defer cancel()

		created, err := roomClient.CreateRoom(ctx, domain.RoomConfig{
			RoomName:      roomName,
			Password:      password,
			Username:      userName,
			ExpireMinutes: expireMinutes,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating room: %v\n", err)
			return
		}

		if err := runChatUI(created, userName); err != nil {
			fmt.Fprintf(os.Stderr, "Chat UI error: %v\n", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.Flags().BoolVarP(&withPassword, "password", "p", false, "Protect the room with a password (prompted)")
	createCmd.Flags().IntVarP(&expireMinutes, "expire", "e", 60, "Minutes until the room self-destructs")
}
