package models

import "fmt"

// MilkType enumerates the kinds of milk a store trades in.
type MilkType string

const (
	MilkTypeCow     MilkType = "cow"
	MilkTypeBuffalo MilkType = "buffalo"
)

// MilkTypes lists every valid milk type in stable order.
var MilkTypes = []MilkType{MilkTypeCow, MilkTypeBuffalo}

// Valid reports whether the milk type is one of the known values.
func (m MilkType) Valid() bool {
	return m == MilkTypeCow || m == MilkTypeBuffalo
}

// ResolveMilkType picks the milk type a procurement contributes to: the first
// entry of the supplied list, defaulting to cow when the list is empty. Unknown
// values are rejected rather than passed through.
func ResolveMilkType(types []MilkType) (MilkType, error) {
	if len(types) == 0 {
		return MilkTypeCow, nil
	}
	if !types[0].Valid() {
		return "", fmt.Errorf("invalid milk type %q", types[0])
	}
	return types[0], nil
}
