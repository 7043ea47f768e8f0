package survey

import "strings"

// Rule maps every code starting with Prefix to Category.
type Rule[T any] struct {
	Prefix   string
	Category T
}

// RuleTable is an ordered list of prefix rules. Rules are evaluated in
// declaration order and a later matching rule overrides an earlier one, so a
// narrow prefix declared after a coarse one ("2.20" after "2") takes
// precedence for the codes it covers.
type RuleTable[T any] struct {
	Rules   []Rule[T]
	Default T
}

// Resolve returns the category of code and whether any rule matched.
func (t RuleTable[T]) Resolve(code string) (T, bool) {
	code = NormalizeCode(code)
	result := t.Default
	matched := false
	if code == "" {
		return result, false
	}
	for _, rule := range t.Rules {
		if strings.HasPrefix(code, rule.Prefix) {
			result = rule.Category
			matched = true
		}
	}
	return result, matched
}

// Map is Resolve without the match flag.
func (t RuleTable[T]) Map(code string) T {
	v, _ := t.Resolve(code)
	return v
}

// NormalizeCode trims a raw survey code and uses '.' as the level separator.
func NormalizeCode(code string) string {
	code = strings.TrimSpace(code)
	code = strings.ReplaceAll(code, ",", ".")
	code = strings.ReplaceAll(code, "\u00a0", " ")
	return code
}

// PurposeRules maps V2_OLDMOT / V2_OLDMOTPR codes.
var PurposeRules = RuleTable[Purpose]{
	Rules: []Rule[Purpose]{
		{"1", PurposeHome},
		{"1.11", PurposeSchoolTrip},
		{"2", PurposeShop},
		{"3", PurposeOther},
		{"4", PurposeOther},
		{"5", PurposeVisits},
		{"6", PurposeOther},
		{"7", PurposeHoliday},
		{"8", PurposeHoliday},
		{"9", PurposeBusiness},
	},
	Default: PurposeOther,
}

// ModeRules maps V2_OLDMT1S / V2_OLDMTPP codes. Code 9 ("other") has no rule
// and falls back to ModePT.
var ModeRules = RuleTable[Mode]{
	Rules: []Rule[Mode]{
		{"1", ModeWalk},
		{"2", ModeCar},
		{"2.20", ModeBike},
		{"2.23", ModeCarPassenger}, // motorcycle passenger
		{"2.25", ModeCarPassenger},
		{"3", ModeCar},
		{"3.32", ModeCarPassenger},
		{"4", ModePTTaxi},
		{"5", ModePTRegional},
		{"6", ModePTLongDistanceTrain},
		{"7", ModePTAirplane},
		{"8", ModePTBoat},
	},
	Default: ModePT,
}

// IncomeUnknown is the income class of households without a usable band.
const IncomeUnknown = -1

// IncomeRules maps the TrancheRevenuMensuel label to one of 14 ordered bands.
var IncomeRules = RuleTable[int]{
	Rules: []Rule[int]{
		{"Moins de 400", 0},
		{"De 400", 1},
		{"De 600", 2},
		{"De 800", 3},
		{"De 1 000", 4},
		{"De 1 200", 5},
		{"De 1 500", 6},
		{"De 1 800", 7},
		{"De 2 000", 8},
		{"De 2 500", 9},
		{"De 3 000", 10},
		{"De 4 000", 11},
		{"De 6 000", 12},
		{"10 000", 13},
	},
	Default: IncomeUnknown,
}

