package strategy

import (
	"fmt"

	"github.com/arloliu/zoner/types"
)

func validateCosts(costs [][]int64) error {
	n := len(costs)
	for i, row := range costs {
		if len(row) != n {
			return fmt.Errorf("%w: row %d has %d columns, want %d", types.ErrNotSquare, i, len(row), n)
		}
		for j, c := range row {
			if c < 0 {
				return fmt.Errorf("%w: costs[%d][%d]=%d", types.ErrNegativeCost, i, j, c)
			}
		}
	}

	return nil
}
