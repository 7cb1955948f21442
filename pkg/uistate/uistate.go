// Package uistate persists per-widget UI state (selected reporting period,
// collapse state, saved research sites, last sub-tab) keyed by the owning
// widget instance's id so two instances of the same widget type never share
// state. Each piece of state is independent; there is no cross-widget
// coordination here (that is the group bus's job).
package uistate

import (
	"fmt"

	"gitlab.com/tinyland/lab/marketdeck/pkg/persist"
)

// Feature names in persisted keys. Keys take the form {feature}_{widgetID}.
const (
	FeaturePeriod        = "period"
	FeatureCollapse      = "collapse"
	FeatureResearchSites = "research_sites"
	FeatureSubTab        = "subtab"
)

// Reporting periods selectable in fundamentals widgets.
const (
	PeriodFY  = "FY"
	PeriodQ1  = "Q1"
	PeriodQ2  = "Q2"
	PeriodQ3  = "Q3"
	PeriodQ4  = "Q4"
	PeriodTTM = "TTM"
)

// Key builds the persisted key for a feature/widget pair.
func Key(feature, widgetID string) string {
	return fmt.Sprintf("%s_%s", feature, widgetID)
}

// Value is a typed handle on one widget's persisted state for one feature.
// Reads fall back to the default on missing or corrupt data and never fail.
type Value[T any] struct {
	store    *persist.Store
	key      string
	fallback T
}

// NewValue binds a value to the {feature}_{widgetID} key on store.
func NewValue[T any](store *persist.Store, feature, widgetID string, fallback T) Value[T] {
	return Value[T]{
		store:    store,
		key:      Key(feature, widgetID),
		fallback: fallback,
	}
}

// Get returns the persisted value, or the fallback when nothing usable is
// stored.
func (v Value[T]) Get() T {
	if v.store == nil {
		return v.fallback
	}
	return persist.Get(v.store, v.key, v.fallback)
}

// Set persists a new value.
func (v Value[T]) Set(val T) {
	if v.store != nil {
		persist.Set(v.store, v.key, val)
	}
}

// Clear removes the persisted value; subsequent Gets return the fallback.
func (v Value[T]) Clear() {
	if v.store != nil {
		v.store.Remove(v.key)
	}
}
