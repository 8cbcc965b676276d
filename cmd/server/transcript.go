package main

import (
	"fmt"
	"strings"
	"time"

	domainChat "github.com/listerdale/chatbot/internal/domain/chat"
	"github.com/listerdale/chatbot/internal/infrastructure/config"
	"github.com/listerdale/chatbot/internal/infrastructure/storage"
	"github.com/spf13/cobra"
)

func newTranscriptCmd(cfgFn func() *config.Config) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "transcript <session-id>",
		Short: "Print a stored conversation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := storage.OpenDB(cfgFn().Database.Path)
			if err != nil {
				return err
			}
			defer db.Close()
			if _, err := storage.Migrate(db); err != nil {
				return err
			}

			session, err := storage.NewSessionRepository(db).FindByID(args[0])
			if err != nil {
				return err
			}
			if session == nil {
				return fmt.Errorf("%w: %s", domainChat.ErrSessionNotFound, args[0])
			}
			messages, err := storage.NewMessageRepository(db).FindBySession(session.ID)
			if err != nil {
				return err
			}

			md := transcriptMarkdown(session, messages)
			if raw {
				_, err := fmt.Fprint(cmd.OutOrStdout(), md)
				return err
			}
			return printMarkdown(cmd.OutOrStdout(), md)
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print Markdown without terminal styling")
	return cmd
}

// transcriptMarkdown 会话记录的 Markdown
func transcriptMarkdown(session *domainChat.Session, messages []*domainChat.Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Session %s\n\n", session.ID)
	fmt.Fprintf(&b, "Started %s, %d messages.\n\n", session.CreatedAt.Format(time.RFC1123), session.MessageCount)

	for _, m := range messages {
		who := "Guide"
		if m.Role == domainChat.RoleUser {
			who = "Visitor"
		}
		fmt.Fprintf(&b, "---\n\n**%s** _%s_\n\n%s\n\n", who, m.CreatedAt.Format("15:04:05"), m.Content)
	}
	return b.String()
}
