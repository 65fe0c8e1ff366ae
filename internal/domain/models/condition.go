package models

// Condition describes the physical state of an inventory item.
type Condition int

const (
	ConditionPoor Condition = iota
	ConditionGood
	ConditionExcellent
)

// ConditionFromInt maps the stored integer encoding back to a Condition.
// Unknown values decode as Excellent.
func ConditionFromInt(v int) Condition {
	switch v {
	case 0:
		return ConditionPoor
	case 1:
		return ConditionGood
	default:
		return ConditionExcellent
	}
}

// Int returns the integer encoding persisted in the Item collection.
func (c Condition) Int() int {
	switch c {
	case ConditionPoor:
		return 0
	case ConditionGood:
		return 1
	default:
		return 2
	}
}

func (c Condition) String() string {
	switch c {
	case ConditionPoor:
		return "poor"
	case ConditionGood:
		return "good"
	default:
		return "excellent"
	}
}
