package core

// Vault is one row of vault metadata in the record store.
type Vault struct {
	Address string `json:"vaultaddress"`
	Chain   string `json:"blockchain"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
}
