package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	askJSON bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a single question and exit",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		query := strings.Join(args, " ")

		bot, err := newChatbot(ctx, cfg, logger)
		if err != nil {
			return err
		}

		env := bot.AnswerQuery(ctx, query)
		if askJSON {
			return writeJSON(cmd.OutOrStdout(), newAnswerOutput(query, env))
		}

		fmt.Fprintln(cmd.OutOrStdout(), env.Display())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().BoolVar(&askJSON, "json", false, "Output in JSON format")
}
