package config

import (
	"fmt"
	"strings"
)

// Order in which labeled audio lists are presented.
type BaselineOrder int

const (
	// BaselineOrderDocument keeps labels as they are in data file.
	BaselineOrderDocument BaselineOrder = iota
	// BaselineOrderNatural sorts labels so "model 2" goes before "model 10".
	BaselineOrderNatural
)

var baselineOrderNames = []string{"document", "natural"}

// BaselineOrderNames returns list of possible values.
func BaselineOrderNames() []string {
	return append([]string(nil), baselineOrderNames...)
}

func (o BaselineOrder) String() string {
	if o >= 0 && int(o) < len(baselineOrderNames) {
		return baselineOrderNames[o]
	}
	return fmt.Sprintf("BaselineOrder(%d)", int(o))
}

// ParseBaselineOrder parses name, case insensitive.
func ParseBaselineOrder(name string) (BaselineOrder, error) {
	for i, n := range baselineOrderNames {
		if strings.EqualFold(n, name) {
			return BaselineOrder(i), nil
		}
	}
	return BaselineOrderDocument, fmt.Errorf("%s is not a valid BaselineOrder, try [%s]", name, strings.Join(baselineOrderNames, ", "))
}

// MarshalText is used when configuration is dumped.
func (o BaselineOrder) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText is used when configuration is loaded.
func (o *BaselineOrder) UnmarshalText(text []byte) error {
	v, err := ParseBaselineOrder(string(text))
	if err != nil {
		return err
	}
	*o = v
	return nil
}
