package main

import (
	"errors"
	"fmt"
	"strings"

	domainKnowledge "github.com/listerdale/chatbot/internal/domain/knowledge"
	"github.com/listerdale/chatbot/internal/infrastructure/config"
	"github.com/listerdale/chatbot/internal/infrastructure/knowledge"
	"github.com/spf13/cobra"
)

var errNoModules = errors.New("no modules loaded")

func newPromptCmd(cfgFn func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "prompt",
		Short: "Print the system prompt built from the module list",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := knowledge.ProvideStore(&cfgFn().Knowledge)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), store.SystemPrompt())
			return err
		},
	}
}

func newModulesCmd(cfgFn func() *config.Config) *cobra.Command {
	var section string

	cmd := &cobra.Command{
		Use:   "modules",
		Short: "List leadership modules grouped by section",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := knowledge.ProvideStore(&cfgFn().Knowledge)
			if err != nil {
				return err
			}
			if store.Count() == 0 {
				return errNoModules
			}
			return printMarkdown(cmd.OutOrStdout(), modulesMarkdown(store.Modules(), section, cfgFn().Server.SiteURL))
		},
	}

	cmd.Flags().StringVar(&section, "section", "", "Only list modules in this section")
	return cmd
}

// modulesMarkdown 按章节列出模块
func modulesMarkdown(modules []domainKnowledge.Module, section, siteURL string) string {
	base := strings.TrimSuffix(siteURL, "/") + "/"

	var b strings.Builder
	for _, s := range domainKnowledge.GroupBySection(modules) {
		if section != "" && !strings.EqualFold(s.Name, section) {
			continue
		}
		fmt.Fprintf(&b, "## %s\n\n", s.Name)
		for _, m := range s.Modules {
			fmt.Fprintf(&b, "- [%s](%s%s)", m.Title, base, m.URL)
			if d := m.Summary(); d != "" {
				fmt.Fprintf(&b, ": %s", d)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	if b.Len() == 0 {
		return fmt.Sprintf("No modules in section %q.\n", section)
	}
	return b.String()
}
