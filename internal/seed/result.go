package seed

import "fmt"

// SyncResult tracks counts from a sync run.
type SyncResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

// Summary returns a human-readable summary of the sync.
func (r SyncResult) Summary() string {
	return fmt.Sprintf("created=%d updated=%d", r.Created, r.Updated)
}
