package main

import (
	"fmt"
	"strings"

	"github.com/listerdale/chatbot/internal/domain/diagnostic"
	"github.com/listerdale/chatbot/internal/infrastructure/config"
	"github.com/spf13/cobra"
)

func newDiagnoseCmd(cfgFn func() *config.Config) *cobra.Command {
	var answers []int

	cmd := &cobra.Command{
		Use:   "diagnose",
		Short: "Walk the leadership diagnostic with the given option indexes",
		Example: `  listerdale diagnose --answers 0,0,1
  listerdale diagnose --answers 1,2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tree := diagnostic.DefaultTree()
			if err := tree.Validate(); err != nil {
				return err
			}

			flow, err := diagnostic.Replay(tree, answers)
			if err != nil {
				return err
			}
			if flow.Result == nil {
				q, err := flow.Question()
				if err != nil {
					return err
				}
				return fmt.Errorf("%w: next question is %q", diagnostic.ErrIncomplete, q.Text)
			}
			return printMarkdown(cmd.OutOrStdout(), resultMarkdown(flow, cfgFn().Server.SiteURL))
		},
	}

	cmd.Flags().IntSliceVar(&answers, "answers", nil, "Zero-based option index chosen at each question")
	_ = cmd.MarkFlagRequired("answers")
	return cmd
}

// resultMarkdown 诊断结论的 Markdown
func resultMarkdown(flow *diagnostic.Flow, siteURL string) string {
	tree := flow.Tree()
	r := flow.Result

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n%s\n\n", r.Title, r.Summary)

	b.WriteString("## Your answers\n\n")
	for _, a := range flow.Answers {
		q, err := tree.Question(a.Node)
		if err != nil {
			continue
		}
		fmt.Fprintf(&b, "- %s **%s**\n", q.Text, q.Options[a.Option].Label)
	}

	b.WriteString("\n## Reading path\n\n")
	base := strings.TrimSuffix(siteURL, "/") + "/"
	for i, step := range r.Path {
		fmt.Fprintf(&b, "%d. [%s](%s%s): %s\n", i+1, step.Name, base, step.URL, step.Why)
	}

	fmt.Fprintf(&b, "\n> **Reality check:** %s\n", r.Reality)
	return b.String()
}
