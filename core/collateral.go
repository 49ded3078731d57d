package core

import "strings"

// CollateralClass accepted collateral kind
type CollateralClass string

const (
	// WETH volatile-price collateral, grows by rate after maturity
	WETH CollateralClass = "WETH"
	// CHAI yield-accruing collateral, grows by chi after maturity
	CHAI CollateralClass = "CHAI"
)

// CollateralClasses all recognized classes
func CollateralClasses() []CollateralClass {
	return []CollateralClass{WETH, CHAI}
}

// ParseCollateralClass parse class from string, case insensitive
func ParseCollateralClass(s string) (CollateralClass, error) {
	c := CollateralClass(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", ErrUnrecognizedCollateral
	}

	return c, nil
}

// Valid is c one of the recognized classes
func (c CollateralClass) Valid() bool {
	switch c {
	case WETH, CHAI:
		return true
	}

	return false
}

func (c CollateralClass) String() string {
	return string(c)
}
