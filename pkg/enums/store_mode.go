package enums

// StoreMode is the history store's persistence state for one session.
// Initializing transitions to Online or Offline during the initial load;
// any remote failure afterwards flips Online to Offline for the rest of
// the session. There is no Offline to Online transition without a restart.
type StoreMode string

const (
	StoreModeInitializing StoreMode = "initializing"
	StoreModeOnline       StoreMode = "online"
	StoreModeOffline      StoreMode = "offline"
)
