package dispatcher

import "fmt"

// Kind enumerates the tasks the service knows how to run.
type Kind string

const (
	KindBootstrap       Kind = "bootstrap"
	KindFormatMarkdown  Kind = "format_markdown"
	KindCountWednesdays Kind = "count_wednesdays"
	KindSortContacts    Kind = "sort_contacts"
	KindRecentLogs      Kind = "recent_logs"
	KindMarkdownIndex   Kind = "markdown_index"
	KindEmailSender     Kind = "email_sender"
	KindCreditCard      Kind = "credit_card"
	KindSimilarComments Kind = "similar_comments"
	KindGoldTicketSales Kind = "gold_ticket_sales"
)

// Kinds lists every task kind in matching order.
func Kinds() []Kind {
	kinds := make([]Kind, len(routes))
	for i, r := range routes {
		kinds[i] = r.kind
	}
	return kinds
}

// ParseKind validates a structured task name.
func ParseKind(s string) (Kind, error) {
	for _, r := range routes {
		if string(r.kind) == s {
			return r.kind, nil
		}
	}
	return "", fmt.Errorf("%w: unknown kind %q", ErrUnsupportedTask, s)
}
