package pricing

import (
	"fmt"
	"sync"

	apperrors "tournament-reg/internal/errors"
)

// PriceTable maps category -> event type -> whole-rupee amount.
// It is created at startup and only mutated through Update.
type PriceTable struct {
	mu     sync.RWMutex
	prices map[string]map[string]int
}

func NewPriceTable(prices map[string]map[string]int) *PriceTable {
	return &PriceTable{prices: clone(prices)}
}

// NewDefaultTable returns the tournament's published price list.
func NewDefaultTable() *PriceTable {
	return NewPriceTable(DefaultPrices())
}

func DefaultPrices() map[string]map[string]int {
	junior := func() map[string]int { return map[string]int{Singles: 850, Doubles: 1500} }
	full := func() map[string]int { return map[string]int{Singles: 850, Doubles: 1500, Mixed: 1500} }
	return map[string]map[string]int{
		"u12_girls":            junior(),
		"u12_boys":             junior(),
		"u19_girls":            junior(),
		"u19_boys":             junior(),
		"open_beginners_men":   junior(),
		"open_beginners_women": junior(),
		"open_mixed":           {Mixed: 1500},
		"open_men_adv":         full(),
		"35plus_men":           full(),
		"35plus_women":         full(),
		"50plus_men":           full(),
		"50plus_women":         full(),
	}
}

// Price returns the amount for k. ok is false when either the category or
// the event type is unknown.
func (t *PriceTable) Price(k EventKey) (int, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	events, ok := t.prices[k.Category]
	if !ok {
		return 0, false
	}
	p, ok := events[k.EventType]
	return p, ok
}

// Update changes the price of an existing entry. New categories or event
// types cannot be introduced this way.
func (t *PriceTable) Update(category, eventType string, price int) error {
	if price <= 0 {
		return apperrors.ErrInvalidPrice
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	events, ok := t.prices[category]
	if !ok {
		return fmt.Errorf("%w: %s", apperrors.ErrUnknownEvent, category)
	}
	if _, ok := events[eventType]; !ok {
		return fmt.Errorf("%w: %s_%s", apperrors.ErrUnknownEvent, category, eventType)
	}
	events[eventType] = price
	return nil
}

// Snapshot returns a copy that callers may keep or serialize.
func (t *PriceTable) Snapshot() map[string]map[string]int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return clone(t.prices)
}

func clone(in map[string]map[string]int) map[string]map[string]int {
	out := make(map[string]map[string]int, len(in))
	for cat, events := range in {
		m := make(map[string]int, len(events))
		for ev, p := range events {
			m[ev] = p
		}
		out[cat] = m
	}
	return out
}
