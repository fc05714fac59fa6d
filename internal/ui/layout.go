package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which steps stack vertically.
	LayoutCompactWidth = 90

	// LayoutSplitWidth is the minimum width at which the promo panel can be
	// shown next to the reduced flashing info.
	LayoutSplitWidth = 110

	// LayoutStepWidth is the width of one step column.
	LayoutStepWidth = 28
)

// Timing constants.
const (
	// PromoFetchTimeout bounds the promo content download.
	PromoFetchTimeout = 10 * time.Second

	// ActionTimeout bounds daemon requests made on user input.
	ActionTimeout = 5 * time.Second

	// NoticeTTL is how long a transient notice stays in the footer.
	NoticeTTL = 4 * time.Second
)
