package sql

import "database/sql"

// GetTxFromProductRepo is a test helper to extract transaction from ProductRepository.
func GetTxFromProductRepo(repo *ProductRepository) *sql.Tx {
	return repo.txn
}

// GetTxFromItemRepo is a test helper to extract transaction from ItemRepository.
func GetTxFromItemRepo(repo *ItemRepository) *sql.Tx {
	return repo.txn
}
