// Package id generates snowflake surrogate IDs. Issue keys (BUG-n) are a
// separate concern and come from a database sequence.
package id

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node *snowflake.Node
	once sync.Once
)

// Init configures the generator with this instance's node ID. Each server
// instance must use a distinct node ID for IDs to stay unique cluster-wide.
func Init(nodeID int64) error {
	var err error
	once.Do(func() {
		node, err = snowflake.NewNode(nodeID)
	})
	return err
}

// New returns a time-ordered int64 ID unique across instances.
func New() int64 {
	return node.Generate().Int64()
}
