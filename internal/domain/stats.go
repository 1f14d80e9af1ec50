package domain

// Stats is a point-in-time snapshot of collection sizes.
type Stats struct {
	Users    int64
	Orders   int64
	Messages int64
	Active   int64
	Cars     int64
}
