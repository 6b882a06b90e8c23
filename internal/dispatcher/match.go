package dispatcher

import "strings"

// predicate reports whether a normalized description selects a route.
type predicate func(task string) bool

func anyOf(keywords ...string) predicate {
	return func(task string) bool {
		for _, k := range keywords {
			if strings.Contains(task, k) {
				return true
			}
		}
		return false
	}
}

func allOf(keywords ...string) predicate {
	return func(task string) bool {
		for _, k := range keywords {
			if !strings.Contains(task, k) {
				return false
			}
		}
		return true
	}
}

type route struct {
	kind  Kind
	match predicate
}

// routes is evaluated top to bottom. Reordering it changes which task an
// ambiguous description runs.
var routes = []route{
	{KindBootstrap, anyOf("install uv", "run datagen")},
	{KindFormatMarkdown, allOf("format", "prettier")},
	{KindCountWednesdays, anyOf("wednesdays")},
	{KindSortContacts, anyOf("sort contacts")},
	{KindRecentLogs, anyOf("recent logs")},
	{KindMarkdownIndex, anyOf("markdown index")},
	{KindEmailSender, anyOf("email sender")},
	{KindCreditCard, anyOf("credit card")},
	{KindSimilarComments, anyOf("similar comments")},
	{KindGoldTicketSales, anyOf("gold ticket sales")},
}

// Normalize lowercases and trims a task description.
func Normalize(task string) string {
	return strings.ToLower(strings.TrimSpace(task))
}

// Resolve returns the kind selected by the first matching rule.
func Resolve(task string) (Kind, error) {
	normalized := Normalize(task)

	for _, r := range routes {
		if r.match(normalized) {
			return r.kind, nil
		}
	}

	return "", ErrUnsupportedTask
}
