package ranking

// Tier is the discrete performance bracket a percentile falls into.
type Tier int

// Tiers from worst to best.
const (
	Tier1 Tier = iota + 1
	Tier2
	Tier3
	Tier4
	Tier5
	Tier6
)

// Upper bounds, inclusive, of tiers 1 to 5.
const (
	tier1Max = 30
	tier2Max = 45
	tier3Max = 65
	tier4Max = 80
	tier5Max = 95
)

var tierInfo = map[Tier]struct {
	label string
	color string
}{
	Tier1: {"Very below average", "#a20e0e"},
	Tier2: {"Below average", "#d8580b"},
	Tier3: {"Average", "#f6d354"},
	Tier4: {"Above average", "#329999"},
	Tier5: {"Excellent", "#396892"},
	Tier6: {"Top 5%", "#814a66"},
}

// Classify maps a percentile to its tier. Boundaries are closed on the upper
// side: 30 is Tier1 and 30.01 is Tier2.
func Classify(percentile float64) Tier {
	switch {
	case percentile <= tier1Max:
		return Tier1
	case percentile <= tier2Max:
		return Tier2
	case percentile <= tier3Max:
		return Tier3
	case percentile <= tier4Max:
		return Tier4
	case percentile <= tier5Max:
		return Tier5
	default:
		return Tier6
	}
}

// Label returns the human readable tier name.
func (t Tier) Label() string { return tierInfo[t].label }

// Color returns the slice fill color.
func (t Tier) Color() string { return tierInfo[t].color }

// TextColor returns the color that stays readable on top of Color.
func (t Tier) TextColor() string {
	if t == Tier3 {
		return "#000000"
	}
	return "#ffffff"
}

// Tiers returns every tier in order.
func Tiers() []Tier {
	return []Tier{Tier1, Tier2, Tier3, Tier4, Tier5, Tier6}
}
