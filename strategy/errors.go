package strategy

import (
	"fmt"

	"github.com/arloliu/spinpick/types"
)

func invalidGroupCount(groupCount int) error {
	return fmt.Errorf("partition into %d groups: %w", groupCount, types.ErrInvalidGroupCount)
}
