package sync

import "time"

const (
	EventCatalogReloaded = "catalog.reloaded"
	EventCatalogFailed   = "catalog.failed"
)

// CatalogEvent tells listeners that the catalog was reloaded, or that a
// reload failed and the previous snapshot is still being served.
type CatalogEvent struct {
	Type       string    `json:"type"`
	SnapshotID string    `json:"snapshot_id,omitempty"`
	Items      int       `json:"items"`
	Source     string    `json:"source,omitempty"`
	Error      string    `json:"error,omitempty"`
	At         time.Time `json:"at"`
}
