// Package visibility derives which fields are visible and required from the
// current field values. The built-in DiscriminantRule covers the single
// client-type switch of the closed-deal form; custom rules can be supplied as
// RuleFunc values.
package visibility
