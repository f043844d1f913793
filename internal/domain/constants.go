package domain

import "time"

// Time format constants
const (
	TimeFormat        = "15:04"      // HH:MM
	DateFormat        = "2006-01-02" // YYYY-MM-DD, canonical storage format
	DisplayDateFormat = "02.01.2006" // DD.MM.YYYY, locale display format
)

// Defaults of the organization's calendar, overridable in config
const (
	DefaultTimezone          = "Europe/Berlin"
	DefaultBlackoutFromMonth = time.June
	DefaultBlackoutToMonth   = time.September
	DefaultRetentionDays     = 360 // 12 месяцев по 30 дней
	DefaultAlertHorizonDays  = 7
	MaxHorizonDays           = 366
)

// Business validation constants
const (
	MaxNameLength  = 200
	MaxPhoneLength = 32
	MinPasswordLen = 8
)
