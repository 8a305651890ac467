package reference

// Currency is a single-row reference table; the first row defines the
// system-wide display currency merged into the login response.
type Currency struct {
	ID       int64  `gorm:"primaryKey"`
	Currency string `gorm:"column:currency;not null;size:10"`
	Symbol   string `gorm:"column:symbol;not null;size:5"`
}

func (Currency) TableName() string { return "currencies" }
