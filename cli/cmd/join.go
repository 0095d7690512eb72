/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ponyo877/kieru/domain"
)

// joinCmd represents the join command
var joinCmd = &cobra.Command{
	Use:   "join [room_name]",
	Short: "Joins an existing room.",
	Long: `Joins an existing room on the room service and enters the chat session.
If the room is password-protected you are prompted for the password; an
incorrect password prompts again.`,
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

		ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
		info, err := roomClient.FetchRoomInfo(ctx, roomName)
		cancel()
		if errors.Is(err, domain.ErrRoomGone) {
			fmt.Fprintf(os.Stderr, "Room not found: %s\n", roomName)
			return
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error checking room: %v\n", err)
			return
		}

		userName := resolveUsername()
		if userName == "" {
			fmt.Fprintln(os.Stderr, "Error: username is required (set one with 'kieru config' or -n)")
			return
		}

		password := ""
		for {
			if info.HasPassword && password == "" {
				password = readPassword("password ❯ ")
			}
			joinCtx, cancelJoin := context.WithTimeout(context.Background(), time.Second*10)
			joined, err := roomClient.JoinRoom(joinCtx, roomName, password, userName)
			cancelJoin()
			if errors.Is(err, domain.ErrIncorrectPassword) {
				fmt.Fprintln(os.Stderr, "Incorrect password, try again.")
				password = ""
				continue
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error joining room: %v\n", err)
				return
			}
			if err := runChatUI(joined, userName); err != nil {
				fmt.Fprintf(os.Stderr, "Chat UI error: %v\n", err)
			}
			return
		}
	},
}

func init() {
	rootCmd.AddCommand(joinCmd)
}
