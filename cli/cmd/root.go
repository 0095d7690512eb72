/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-shellwords"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ponyo877/kieru/adaptor"
)

var (
	cfgFile     string
	displayName string
	roomClient  *adaptor.RoomClient
	wsDialer    *adaptor.WSDialer
)

const (
	apiBaseURLKey  = "api_base_url"
	wsBaseURLKey   = "ws_base_url"
	displayNameKey = "display_name"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kieru",
	Short: "Terminal client for ephemeral chat rooms",
	Long: `kieru is a terminal client for ephemeral, self-destructing chat rooms.
Create or join a named room, exchange text and image messages, watch who
comes and goes, and leave before the room expires (or let it expire on you).`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Configuration is settled by the time this runs.
		roomClient = adaptor.NewRoomClient(viper.GetString(apiBaseURLKey))
		wsDialer = adaptor.NewWSDialer(viper.GetString(wsBaseURLKey))
		displayName = viper.GetString(displayNameKey)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// one‑shot
	if len(os.Args) > 1 {
		if err := rootCmd.Execute(); err != nil {
			os.Exit(1)
		}
		return
	}

	// REPL
	fmt.Println("entering interactive mode, type 'exit' to quit")
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("❯❯❯ ")
		line, _ := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}
		args, _ := shellwords.Parse(line)
		rootCmd.SetArgs(args)
		if err := rootCmd.Execute(); err != nil {
			os.Exit(1)
			return
		}
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.kieru.yaml)")
	rootCmd.PersistentFlags().String("api-base", "http://localhost:8000", "Base URL of the room service REST API")
	rootCmd.PersistentFlags().String("ws-base", "ws://localhost:8000", "Base URL of the room service realtime channel")
	rootCmd.PersistentFlags().StringP("name", "n", "", "Display name used in rooms")

	viper.BindPFlag(apiBaseURLKey, rootCmd.PersistentFlags().Lookup("api-base"))
	viper.BindPFlag(wsBaseURLKey, rootCmd.PersistentFlags().Lookup("ws-base"))
	viper.BindPFlag(displayNameKey, rootCmd.PersistentFlags().Lookup("name"))
	viper.SetDefault(apiBaseURLKey, "http://localhost:8000")
	viper.SetDefault(wsBaseURLKey, "ws://localhost:8000")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".kieru" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".kieru")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintln(os.Stderr, "Error reading config file:", err)
		}
	}
}
