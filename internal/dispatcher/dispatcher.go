package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/angeloszaimis/task-runner/internal/tasks"
)

// ErrUnsupportedTask means no rule matched the description, or the kind has no
// registered handler. It is never produced by a handler itself.
var ErrUnsupportedTask = errors.New("unsupported task")

type HandlerFunc func(ctx context.Context) (tasks.Result, error)

type Dispatcher struct {
	handlers map[Kind]HandlerFunc
	logger   *slog.Logger
}

func New(handlers map[Kind]HandlerFunc, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: handlers,
		logger:   logger,
	}
}

// NewForService registers every handler of svc under its kind.
func NewForService(svc *tasks.Service, logger *slog.Logger) *Dispatcher {
	return New(map[Kind]HandlerFunc{
		KindBootstrap:       svc.BootstrapEnvironment,
		KindFormatMarkdown:  svc.FormatMarkdown,
		KindCountWednesdays: svc.CountWednesdays,
		KindSortContacts:    svc.SortContacts,
		KindRecentLogs:      svc.ExtractRecentLogs,
		KindMarkdownIndex:   svc.CreateMarkdownIndex,
		KindEmailSender:     svc.ExtractEmailSender,
		KindCreditCard:      svc.ExtractCreditCard,
		KindSimilarComments: svc.FindSimilarComments,
		KindGoldTicketSales: svc.CalculateGoldTicketSales,
	}, logger)
}

// Dispatch resolves the description and runs the selected handler. The
// resolved kind is returned even when the handler fails.
func (d *Dispatcher) Dispatch(ctx context.Context, task string) (Kind, tasks.Result, error) {
	kind, err := Resolve(task)
	if err != nil {
		d.logger.Info("No task matched", slog.String("task", task))
		return "", tasks.Result{}, err
	}

	res, err := d.Run(ctx, kind)
	return kind, res, err
}

// Run executes the handler registered for kind.
func (d *Dispatcher) Run(ctx context.Context, kind Kind) (tasks.Result, error) {
	h, ok := d.handlers[kind]
	if !ok {
		return tasks.Result{}, fmt.Errorf("%w: no handler for %s", ErrUnsupportedTask, kind)
	}

	d.logger.Info("Running task", slog.String("kind", string(kind)))

	res, err := h(ctx)
	if err != nil {
		d.logger.Error("Task failed",
			slog.String("kind", string(kind)),
			slog.Any("err", err))
		return tasks.Result{}, err
	}

	return res, nil
}
