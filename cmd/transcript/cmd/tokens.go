package cmd

import (
	"fmt"
	"strings"

	"acl-research/internal/report"
	"acl-research/internal/transcript"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	tokenizeCmd.Flags().Bool("sentences", false, "split into sentences instead of words")
	tokenizeCmd.Flags().Bool("clean", false, "drop stop words and punctuation")
	topCmd.Flags().IntP("number", "n", 20, "number of words to print")

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(topCmd)
	rootCmd.AddCommand(stemCmd)
}

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize",
	Short: "Prints the words or sentences of a transcript, one per line.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := loadText()
		if err != nil {
			return err
		}
		sentences, _ := cmd.Flags().GetBool("sentences")
		clean, _ := cmd.Flags().GetBool("clean")

		var tokens []string
		switch {
		case sentences:
			tokens = transcript.Sentences(input)
		case clean:
			tokens = transcript.CleanTokens(transcript.RemoveStopwords(transcript.Words(input)))
		default:
			tokens = transcript.Words(input)
		}
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(tokens, "\n"))
		return nil
	},
}

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Prints the most frequent words of a transcript, ignoring stop words.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := loadText()
		if err != nil {
			return err
		}
		f, err := outputFormat()
		if err != nil {
			return err
		}
		n, _ := cmd.Flags().GetInt("number")

		t := report.NewTable(cmd.OutOrStdout())
		t.AppendHeader(table.Row{"Word", "Count"})
		for _, wc := range transcript.TopWords(input, n) {
			t.AppendRow(table.Row{wc.Word, wc.Count})
		}
		report.Render(t, f)
		return nil
	},
}

var stemCmd = &cobra.Command{
	Use:   "stem",
	Short: "Prints the stem of every word of a transcript that isn't a stop word.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := loadText()
		if err != nil {
			return err
		}
		words := transcript.CleanTokens(transcript.RemoveStopwords(transcript.Words(input)))
		for i, w := range words {
			words[i] = strings.ToLower(w)
		}
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(transcript.Stem(words), " "))
		return nil
	},
}
