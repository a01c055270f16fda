package chaincli

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// Unit is a named Ethereum denomination.
type Unit string

// The standard denomination table.
const (
	Wei    Unit = "wei"
	Kwei   Unit = "kwei"
	Mwei   Unit = "mwei"
	Gwei   Unit = "gwei"
	Szabo  Unit = "szabo"
	Finney Unit = "finney"
	Ether  Unit = "ether"
	Kether Unit = "kether"
	Mether Unit = "mether"
	Gether Unit = "gether"
	Tether Unit = "tether"
)

// unitExponents maps each denomination to its power of ten in wei.
var unitExponents = map[Unit]int32{
	Wei:    0,
	Kwei:   3,
	Mwei:   6,
	Gwei:   9,
	Szabo:  12,
	Finney: 15,
	Ether:  18,
	Kether: 21,
	Mether: 24,
	Gether: 27,
	Tether: 30,
}

// ParseUnit maps a denomination name (case-insensitive) to its Unit.
func ParseUnit(name string) (Unit, error) {
	u := Unit(strings.ToLower(name))
	if _, ok := unitExponents[u]; !ok {
		return "", ErrUnknownUnit
	}
	return u, nil
}

// ToWei converts a decimal amount in the given denomination to wei.
// Amounts that do not land on a whole number of wei are an error.
func ToWei(amount string, unit Unit) (*big.Int, error) {
	exp, ok := unitExponents[unit]
	if !ok {
		return nil, ErrUnknownUnit
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, err
	}
	shifted := d.Shift(exp)
	if !shifted.IsInteger() {
		return nil, ErrFractionalWei
	}
	return shifted.BigInt(), nil
}

// FromWei renders a wei amount in the given denomination without loss;
// trailing zeros are trimmed by the decimal representation.
func FromWei(wei *big.Int, unit Unit) (string, error) {
	exp, ok := unitExponents[unit]
	if !ok {
		return "", ErrUnknownUnit
	}
	return decimal.NewFromBigInt(wei, 0).Shift(-exp).String(), nil
}
