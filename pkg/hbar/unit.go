package hbar

// Unit is a named denomination of the network currency. Each unit is a fixed
// multiple of the tinybar, the atomic unit.
type Unit struct {
	symbol   string
	tinybars int64
}

// The full denomination table, smallest to largest.
var (
	UnitTinybar  = Unit{"tℏ", 1}
	UnitMicrobar = Unit{"μℏ", 100}
	UnitMillibar = Unit{"mℏ", 100_000}
	UnitHbar     = Unit{"ℏ", 100_000_000}
	UnitKilobar  = Unit{"kℏ", 100_000_000_000}
	UnitMegabar  = Unit{"Mℏ", 100_000_000_000_000}
	UnitGigabar  = Unit{"Gℏ", 100_000_000_000_000_000}
)

var unitBySymbol = map[string]Unit{
	"tℏ": UnitTinybar,
	"μℏ": UnitMicrobar,
	"mℏ": UnitMillibar,
	"ℏ":  UnitHbar,
	"kℏ": UnitKilobar,
	"Mℏ": UnitMegabar,
	"Gℏ": UnitGigabar,
}

// Symbol returns the unit's display symbol, e.g. "mℏ".
func (u Unit) Symbol() string { return u.symbol }

// Tinybars returns the number of tinybars in one of this unit.
func (u Unit) Tinybars() int64 { return u.tinybars }

// String implements fmt.Stringer using the unit symbol.
func (u Unit) String() string { return u.symbol }
