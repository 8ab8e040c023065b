package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/andrewmao33/polybot/internal/domain"
)

// Console implementa ports.StatusNotifier.
type Console struct {
	out io.Writer
}

// NewConsole crea un notificador que escribe a stdout.
func NewConsole() *Console {
	return &Console{out: os.Stdout}
}

// NewConsoleWriter crea un notificador para tests.
func NewConsoleWriter(w io.Writer) *Console {
	return &Console{out: w}
}

// Status imprime una tabla por lado (posición, precio medio, órdenes
// abiertas) y el resumen del epoch: neto, imbalance, coste del par y el
// PnL mínimo garantizado si ambos lados resuelven.
func (c *Console) Status(_ context.Context, market *domain.Market, book *domain.Book, pos *domain.Position, orders *domain.OrderTracker, now time.Time) error {
	remaining := market.TimeRemaining(now)
	fmt.Fprintf(c.out, "\n[%s] %s — %s left\n",
		now.Format("15:04:05"), market.Slug, formatRemaining(remaining))

	table := tablewriter.NewWriter(c.out)
	table.Header("Side", "Bid", "Ask", "Qty", "AvgPx", "Orders", "Open size")

	for _, side := range domain.Sides {
		table.Append(
			side.String(),
			tickLabel(book.BestBid(side)),
			tickLabel(book.BestAsk(side)),
			pos.Qty(side).String(),
			avgLabel(pos, side),
			fmt.Sprintf("%d", orders.Count(side)),
			orders.TotalExposure(side).String(),
		)
	}
	table.Render()

	fmt.Fprintf(c.out, "  net: %s  imbalance: %s", pos.NetPosition(), pos.Imbalance())
	if pair, ok := pos.PairCost(); ok {
		fmt.Fprintf(c.out, "  pair cost: %s ticks", pair.StringFixed(1))
	}
	fmt.Fprintf(c.out, "  min PnL: $%s\n", pos.MinPnLUSD().StringFixed(2))
	return nil
}

func tickLabel(t domain.Ticks, ok bool) string {
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%d", t)
}

func avgLabel(pos *domain.Position, side domain.Side) string {
	avg, ok := pos.AvgPrice(side)
	if !ok {
		return "-"
	}
	return avg.StringFixed(1)
}

func formatRemaining(d time.Duration) string {
	d = d.Round(time.Second)
	m := int(d / time.Minute)
	s := int(d/time.Second) % 60
	return fmt.Sprintf("%dm%02ds", m, s)
}
