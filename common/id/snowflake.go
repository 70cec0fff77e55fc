package id

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node *snowflake.Node
	once sync.Once
)

// Node ids per process kind. Two processes sharing a node id can mint
// colliding row ids within the same millisecond.
const (
	NodeServer int64 = 1
	NodeWorker int64 = 2
	NodeCLI    int64 = 3
)

// Init initializes the Snowflake node with the given node ID.
func Init(nodeID int64) error {
	var err error
	once.Do(func() {
		node, err = snowflake.NewNode(nodeID)
	})
	if err != nil {
		return fmt.Errorf("creating snowflake node %d: %w", nodeID, err)
	}
	return nil
}

// New generates a new row id. Row ids are surrogate keys only; records are
// addressed by (owner_id, natural_key) everywhere outside the store.
func New() int64 {
	return node.Generate().Int64()
}
