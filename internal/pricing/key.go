package pricing

import "strings"

// Separator joins category and event type in the wire form of an event key.
const Separator = "_"

const (
	Singles = "Singles"
	Doubles = "Doubles"
	Mixed   = "Mixed"
)

// EventKey identifies one selectable entry: a category and the match format within it.
type EventKey struct {
	Category  string
	EventType string
}

// ParseKey splits s on its last separator. Categories may contain
// underscores themselves ("open_beginners_men_Singles"), so only the final
// segment is the event type. A key without a separator has an empty category.
func ParseKey(s string) EventKey {
	i := strings.LastIndex(s, Separator)
	if i < 0 {
		return EventKey{EventType: s}
	}
	return EventKey{Category: s[:i], EventType: s[i+len(Separator):]}
}

func (k EventKey) String() string {
	return k.Category + Separator + k.EventType
}

// NeedsPartner reports whether the event type is played in pairs.
func (k EventKey) NeedsPartner() bool {
	return NeedsPartner(k.EventType)
}

func NeedsPartner(eventType string) bool {
	return eventType == Doubles || eventType == Mixed
}

// Label renders the key for humans, e.g. "OPEN BEGINNERS MEN - Singles".
func (k EventKey) Label() string {
	return strings.ToUpper(strings.ReplaceAll(k.Category, Separator, " ")) + " - " + k.EventType
}
