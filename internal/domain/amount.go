package domain

import (
	"encoding/json"
	"math"
	"strconv"
)

// Amount is a money value in minor units (cents). It is written as a decimal
// number with two fraction digits, so 1050 is encoded as 10.50.
type Amount int64

// maxAmount bounds decoded values so cents stay exact in a float64.
const maxAmount = 1e13

func NewAmount(value, subUnit int64) Amount {
	return Amount(value*100 + subUnit)
}

func (a Amount) Float() float64 {
	return float64(a) / 100
}

func (a Amount) String() string {
	return strconv.FormatFloat(a.Float(), 'f', 2, 64)
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	if math.Abs(f) > maxAmount {
		return invalidf("amount %g out of range", f)
	}
	*a = Amount(math.Round(f * 100))
	return nil
}
