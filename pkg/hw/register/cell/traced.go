package cell

import (
	"log/slog"

	"github.com/Manu343726/regc/pkg/utils"
	"golang.org/x/exp/constraints"
)

// Cell decorator logging every access to the wrapped cell at debug level.
// Each Get and Set performs exactly one access to the wrapped cell.
type Traced[T constraints.Unsigned] struct {
	cell   Cell[T]
	name   string
	logger *slog.Logger
}

func NewTraced[T constraints.Unsigned](cell Cell[T], name string, logger *slog.Logger) *Traced[T] {
	if logger == nil {
		logger = slog.Default()
	}

	return &Traced[T]{
		cell:   cell,
		name:   name,
		logger: logger.With("register", name),
	}
}

func (t *Traced[T]) Get() T {
	value := t.cell.Get()
	t.logger.Debug("read", "value", format(value))
	return value
}

func (t *Traced[T]) Set(value T) {
	t.cell.Set(value)
	t.logger.Debug("write", "value", format(value))
}

func format[T constraints.Unsigned](value T) string {
	return utils.FormatUintHex(uint64(value), utils.SizeofBits[T]()/4)
}
