package enums

// CustomerType is the discount tier applied uniformly to a cart.
type CustomerType string

const (
	CustomerTypeStandard CustomerType = "standard"
	CustomerTypeLawDoc   CustomerType = "law_doc"
	CustomerTypeEmployee CustomerType = "employee"
)

var validCustomerTypes = []CustomerType{
	CustomerTypeStandard,
	CustomerTypeLawDoc,
	CustomerTypeEmployee,
}

// IsValid reports whether the value matches a known customer type.
func (t CustomerType) IsValid() bool {
	for _, candidate := range validCustomerTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseCustomerType converts raw input into a CustomerType. Unknown values
// fall back to the standard tier rather than erroring; a register must never
// refuse a sale over an unrecognized tier id.
func ParseCustomerType(value string) CustomerType {
	for _, candidate := range validCustomerTypes {
		if string(candidate) == value {
			return candidate
		}
	}
	return CustomerTypeStandard
}

// Label returns the display name shown at the counter.
func (t CustomerType) Label() string {
	switch t {
	case CustomerTypeLawDoc:
		return "Law & Doc (10%)"
	case CustomerTypeEmployee:
		return "Employee (20%)"
	default:
		return "Standard Customer"
	}
}
