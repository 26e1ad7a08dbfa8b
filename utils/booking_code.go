package utils

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// BookingCodes issues booking codes from a snowflake node. Codes are unique
// across processes as long as every process runs with its own node number.
type BookingCodes struct {
	node *snowflake.Node
}

func NewBookingCodes(node int64) (*BookingCodes, error) {
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, fmt.Errorf("snowflake node %d: %w", node, err)
	}
	return &BookingCodes{node: n}, nil
}

func (b *BookingCodes) NextCode() string {
	return "BK" + b.node.Generate().Base36()
}
