package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	golightqa "github.com/MegaGrindStone/go-light-qa"
	"github.com/spf13/cobra"
)

var (
	exportPath string
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive question answering session",
	Long: `Start an interactive session. Each line is answered independently, from the dataset
when a stored question is similar enough, otherwise by the remote model.
Type 'exit' or 'quit' to leave. With --export the transcript is written on exit,
as HTML when the file ends in .html and as Markdown otherwise.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		bot, err := newChatbot(ctx, cfg, logger)
		if err != nil {
			return err
		}

		transcript := golightqa.NewTranscript(greeting(cfg.LLM.WithDefaults().Model))
		if err := runChat(ctx, bot, transcript, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
			return err
		}

		if exportPath != "" {
			if err := exportTranscript(transcript, exportPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Transcript written to %s\n", exportPath)
		}

		return nil
	},
}

type answerer interface {
	AnswerQuery(ctx context.Context, query string) golightqa.AnswerEnvelope
}

func greeting(model string) string {
	return fmt.Sprintf("Ask me anything! I'll check my dataset first, then use %s if needed.", model)
}

// runChat reads one question per line from in until EOF or an exit command, answering
// each on out and recording both turns in transcript.
func runChat(ctx context.Context, bot answerer, transcript *golightqa.Transcript, in io.Reader, out io.Writer) error {
	for _, m := range transcript.Messages() {
		fmt.Fprintln(out, m.Content)
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		transcript.AppendUser(line)
		env := bot.AnswerQuery(ctx, line)
		transcript.AppendAnswer(env)

		fmt.Fprintln(out, env.Display())
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}
	return nil
}

func exportTranscript(transcript *golightqa.Transcript, path string) error {
	content := transcript.Markdown()
	if ext := strings.ToLower(filepath.Ext(path)); ext == ".html" || ext == ".htm" {
		html, err := transcript.HTML()
		if err != nil {
			return err
		}
		content = html
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("error writing transcript: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringVarP(&exportPath, "export", "o", "", "Write the transcript to this file on exit (.md or .html)")
}
