package amount

import (
	"errors"
	"math"
	"strconv"
)

const (
	NanoCRV = 1e9
)

type Unit int

const (
	MegaCorvus  Unit = 6
	KiloCorvus  Unit = 3
	Corvus      Unit = 0
	MilliCorvus Unit = -3
	MicroCorvus Unit = -6
	NanoCorvus  Unit = -9
)

func (u Unit) String() string {
	switch u {
	case MegaCorvus:
		return "MCRV"
	case KiloCorvus:
		return "kCRV"
	case Corvus:
		return "CRV"
	case MilliCorvus:
		return "mCRV"
	case MicroCorvus:
		return "μCRV"
	case NanoCorvus:
		return "nCRV"
	default:
		return "1e" + strconv.FormatInt(int64(u), 10) + " CRV"
	}
}

// Amount represents the atomic ledger unit. Each unit equals 1e-9 CRV.
// Wallet balances, fees and transfer amounts are all carried as Amount.
type Amount int64

func round(f float64) Amount {
	if f < 0 {
		return Amount(f - 0.5)
	}
	return Amount(f + 0.5)
}

func NewAmount(f float64) (Amount, error) {
	switch {
	case math.IsNaN(f),
		math.IsInf(f, 1),
		math.IsInf(f, -1):
		return 0, errors.New("invalid CRV amount")
	}

	return round(f * float64(NanoCRV)), nil
}

func FromString(str string) (Amount, error) {
	f, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, err
	}
	return NewAmount(f)
}

func (a Amount) ToUnit(u Unit) float64 {
	return float64(a) / math.Pow10(int(u+9))
}

func (a Amount) ToCRV() float64 {
	return a.ToUnit(Corvus)
}

func (a Amount) ToNanoCRV() int64 {
	return int64(a)
}

func (a Amount) Format(u Unit) string {
	units := " " + u.String()
	formatted := strconv.FormatFloat(a.ToUnit(u), 'f', -int(u+9), 64)
	return formatted + units
}

// String is the equivalent of calling Format with Corvus.
func (a Amount) String() string {
	return a.Format(Corvus)
}

func (a Amount) MulF64(f float64) Amount {
	return round(float64(a) * f)
}
