package models

// ============================================================================
// VALIDATION LIMITS
// ============================================================================

// MaxTitleLength is the longest request title accepted
const MaxTitleLength = 255

// MaxRestaurantNameLength is the longest restaurant name accepted
const MaxRestaurantNameLength = 255

// DefaultBDRTargetPerWeek is the weekly outreach goal given to new restaurants
const DefaultBDRTargetPerWeek = 4

// MaxCommentLength is the longest comment body accepted
const MaxCommentLength = 2000

// ============================================================================
// REPORT DEFAULTS
// ============================================================================

// DefaultStaleAfterDays marks an open request as stale in reports
const DefaultStaleAfterDays = 14

// ============================================================================
// DISPLAY FALLBACKS
// ============================================================================

// DefaultRequesterName is shown when the requester has no profile
const DefaultRequesterName = "Account Manager"
