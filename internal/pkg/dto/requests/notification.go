package requests

// PollNotifications carries the identifiers the client already knows about.
// On the first poll after mount these seed the server-side known set so
// pre-existing state is never re-alerted.
type PollNotifications struct {
	KnownIDs []string `json:"known_ids"`
}
