package constants

const (
	MinPhoneDigits    = 10
	MaxPriceDigits    = 12
	PriceDecimals     = 2
	MaxBathroomDigits = 3
	BathroomDecimals  = 1
	MaxNameLength     = 100
	MaxTitleLength    = 200
	MaxEmailLength    = 254
	MaxPhoneLength    = 20
)

// DateLayout is the wire format of listing and due dates.
const DateLayout = "2006-01-02"
