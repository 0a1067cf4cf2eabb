package badger

import "fmt"

// Key prefixes for different data types
const (
	feedEntryPrefix = "feedent"
	checkpointToken = "chkpt"
)

// makeFeedEntryKey generates a key for a ledger entry by feed file name.
func makeFeedEntryKey(name string) []byte {
	return []byte(fmt.Sprintf("%s:%s", feedEntryPrefix, name))
}

// makeCheckpointKey generates a key for component checkpoints.
func makeCheckpointKey(component string) []byte {
	return []byte(fmt.Sprintf("%s:%s", component, checkpointToken))
}
