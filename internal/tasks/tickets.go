package tasks

import (
	"context"
	"fmt"

	"github.com/angeloszaimis/task-runner/internal/ticketstore"
)

const (
	opGoldTicketSales = "calculate gold ticket sales"
	goldTicketType    = "Gold"
)

// CalculateGoldTicketSales sums units * price over the Gold ticket rows and
// writes the total as plain text. No Gold rows yields 0.
func (s *Service) CalculateGoldTicketSales(ctx context.Context) (Result, error) {
	dbPath := s.paths.TicketsDB
	if err := requireFile(opGoldTicketSales, dbPath); err != nil {
		return Result{}, err
	}

	store, err := ticketstore.Open(dbPath)
	if err != nil {
		return Result{}, execError(opGoldTicketSales, dbPath, err)
	}
	defer store.Close()

	total, err := store.TotalSales(ctx, goldTicketType)
	if err != nil {
		return Result{}, execError(opGoldTicketSales, dbPath, err)
	}

	text := total.String()
	if err := writeText(opGoldTicketSales, s.paths.TicketsOut, text); err != nil {
		return Result{}, err
	}

	return Result{
		Message: fmt.Sprintf("Total Gold ticket sales: %s.", text),
		Value:   total.Value(),
	}, nil
}
