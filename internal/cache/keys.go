package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache TTLs. Event listings churn with moderation decisions, so keep
// them short-lived.
const (
	EventTTL      = 5 * time.Minute
	EventsListTTL = 1 * time.Minute
	GeocodeTTL    = 24 * time.Hour
)

// EventKey returns the cache key for a single event.
func EventKey(id uint) string {
	return fmt.Sprintf("event:%d", id)
}

// EventsListKey returns the cache key for one page of the public listing.
func EventsListKey(category, location string, limit, offset int) string {
	return fmt.Sprintf("events:list:%s:%s:%d:%d", category, location, limit, offset)
}

// GeocodeKey returns the cache key for a geocoded location string.
func GeocodeKey(location string) string {
	return fmt.Sprintf("geocode:%s", location)
}

// InvalidateEventsList drops all cached listing pages.
func InvalidateEventsList(ctx context.Context) {
	Invalidate(ctx, "events:list:*")
}
