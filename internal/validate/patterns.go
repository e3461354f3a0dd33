package validate

import "regexp"

// Anchored format patterns shared by the domain handlers. Hints are the
// phrasing used in validation messages.
var (
	PatternEmail         = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)
	PatternPhone         = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
	PatternTaxID         = regexp.MustCompile(`^[0-9]{2}-?[0-9]{7}$`)
	PatternAccountNumber = regexp.MustCompile(`^[0-9]{8,17}$`)
	PatternRoutingNumber = regexp.MustCompile(`^[0-9]{9}$`)
	PatternMAC           = regexp.MustCompile(`^([0-9A-Fa-f]{2}:){5}[0-9A-Fa-f]{2}$`)
	PatternSpaceKey      = regexp.MustCompile(`^[A-Z][A-Z0-9]{1,9}$`)
	PatternRecordID      = regexp.MustCompile(`^[0-9]+$`)
)

// Hints for the patterns above, used in "Invalid <field> format: expected
// <hint>" messages.
const (
	HintEmail         = "a valid email address"
	HintPhone         = "10-15 digits with optional leading +"
	HintTaxID         = "9 digits (NN-NNNNNNN)"
	HintAccountNumber = "8-17 digits"
	HintRoutingNumber = "9 digits"
	HintMAC           = "a colon-separated MAC address"
	HintSpaceKey      = "2-10 uppercase letters or digits starting with a letter"
	HintRecordID      = "a decimal record ID"
)
