package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/gophchat/internal/client/models"
)

func (a *App) report(err error) error {
	a.printf("Error: %v\n", err)
	return err
}

func (a *App) warnDegraded(degraded bool, warning string) {
	if !degraded {
		return
	}
	if warning == "" {
		warning = "server storage is unavailable"
	}
	a.printf("Warning: %s, results may be incomplete\n", warning)
}

func (a *App) Me(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	p, err := a.chatService.Me(ctx)
	if err != nil {
		return a.report(err)
	}
	a.printf("%s\n", p)
	if p.Bio != "" {
		a.printf("%s\n", p.Bio)
	}
	return nil
}

func (a *App) Search(ctx context.Context, term string) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	page, err := a.chatService.Search(ctx, term)
	if err != nil {
		return a.report(err)
	}
	a.warnDegraded(page.Degraded, page.Warning)
	if len(page.Items) == 0 {
		a.printf("No profiles found\n")
		return nil
	}
	for _, p := range page.Items {
		a.printf("%s\n", p)
	}
	return nil
}

func (a *App) Chat(ctx context.Context, profileID string) error {
	id, err := ParseID(profileID)
	if err != nil {
		return a.report(err)
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	session, err := a.chatService.Chat(ctx, id)
	if err != nil {
		return a.report(err)
	}
	a.printSession(session)
	return nil
}

func (a *App) NewGroup(ctx context.Context, name string, memberIDs string) error {
	ids, err := ParseIDList(memberIDs)
	if err != nil {
		return a.report(err)
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	session, err := a.chatService.StartGroup(ctx, name, ids)
	if err != nil {
		return a.report(err)
	}
	a.printSession(session)
	return nil
}

func (a *App) List(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	page, err := a.chatService.List(ctx)
	if err != nil {
		return a.report(err)
	}
	a.warnDegraded(page.Degraded, page.Warning)
	if len(page.Items) == 0 {
		a.printf("No conversations yet\n")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tKIND\tNAME\tLAST MESSAGE\n")
	for _, s := range page.Items {
		last := "-"
		if s.LastMessageAt != nil {
			last = s.LastMessageAt.Local().Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", s.Conversation.ID, s.Conversation.Kind, s.DisplayName, last)
	}
	return w.Flush()
}

func (a *App) Open(ctx context.Context, conversationID string) error {
	id, err := ParseID(conversationID)
	if err != nil {
		return a.report(err)
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	session, err := a.chatService.Open(ctx, id)
	if err != nil {
		return a.report(err)
	}
	a.printSession(session)
	return nil
}

func (a *App) History(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	page, err := a.chatService.History(ctx)
	if err != nil {
		return a.report(err)
	}
	a.warnDegraded(page.Degraded, page.Warning)
	if len(page.Items) == 0 {
		a.printf("No messages yet\n")
		return nil
	}
	for _, m := range page.Items {
		a.printf("%s\n", m.Format())
	}
	return nil
}

func (a *App) Send(ctx context.Context, text string) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	m, err := a.chatService.Send(ctx, text)
	if err != nil {
		return a.report(err)
	}
	a.printf("Sent #%d\n", m.ID)
	return nil
}

func (a *App) printSession(s *models.Session) {
	if s.IsDirect() {
		a.printf("Opened conversation #%d with profile #%d\n", s.ConversationID, s.CounterpartID)
		return
	}
	a.printf("Opened group conversation #%d (%d members)\n", s.ConversationID, len(s.Participants))
}
