// Package model defines database models for persistence layer.
package model

// All returns every model managed by AutoMigrate, parents first.
func All() []any {
	return []any{
		&CategoryModel{},
		&AccountModel{},
		&CardModel{},
		&InvoiceModel{},
		&TransactionModel{},
		&CategoryRuleModel{},
	}
}
