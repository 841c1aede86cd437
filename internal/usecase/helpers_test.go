package usecase_test

import (
	"time"

	"github.com/shopspring/decimal"

	"movement-reconciliation/internal/domain"
)

var baseDate = domain.Date(2025, time.March, 1)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(offset int) time.Time {
	return baseDate.AddDate(0, 0, offset)
}

func fields(date time.Time, pos int, amount, balance, key string) domain.MovementFields {
	return domain.MovementFields{
		OperationalDate:         date,
		ValueDate:               date,
		Description:             "movement " + key,
		Amount:                  dec(amount),
		TempBalance:             dec(balance),
		OperationalDatePosition: pos,
		KeyValue:                key,
	}
}

func scrapedMovement(date time.Time, pos int, amount, balance, key string) domain.ScrapedMovement {
	return domain.ScrapedMovement{MovementFields: fields(date, pos, amount, balance, key)}
}

func savedMovement(id int64, date time.Time, pos int, amount, balance, key string) domain.PersistedMovement {
	return domain.PersistedMovement{ID: id, AccountID: "ACC-1", MovementFields: fields(date, pos, amount, balance, key)}
}

func account(balance string) domain.AccountSnapshot {
	return domain.AccountSnapshot{AccountID: "ACC-1", Currency: "EUR", Balance: dec(balance)}
}
