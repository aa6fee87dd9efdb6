//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// walletAddressRe accepts the address alphabets of the supported chains.
// Validation is intentionally shallow: addresses are operator-supplied and
// verified out-of-band before funds are routed.
var walletAddressRe = regexp.MustCompile(`^[A-Za-z0-9]{20,128}$`)

// WalletStatus is the lifecycle state of a crypto deposit wallet.
type WalletStatus string

const (
	WalletStatusActive  WalletStatus = "active"
	WalletStatusRetired WalletStatus = "retired"
)

// Valid reports whether the wallet status is supported.
func (s WalletStatus) Valid() bool {
	return s == WalletStatusActive || s == WalletStatusRetired
}

// DepositWallet represents a crypto deposit address assigned to an account.
type DepositWallet struct {
	ID        string       `json:"id"         db:"id"`
	AccountID string       `json:"account_id" db:"account_id"`
	Asset     string       `json:"asset"      db:"asset"`
	Address   string       `json:"address"    db:"address"`
	Status    WalletStatus `json:"status"     db:"status"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
}

// WalletsListOptions controls paging and filtering for listing deposit wallets.
type WalletsListOptions struct {
	Limit     int
	Offset    int
	AccountID *string
	Asset     *string
}

// CreateWalletRequest represents parameters to assign a deposit wallet.
type CreateWalletRequest struct {
	AccountID string `json:"account_id"`
	Asset     string `json:"asset"`
	Address   string `json:"address"`
}

// Validate validates CreateWalletRequest.
func (r *CreateWalletRequest) Validate() error {
	if strings.TrimSpace(r.AccountID) == "" {
		return errors.New("account_id is required")
	}
	asset := strings.ToUpper(strings.TrimSpace(r.Asset))
	if asset == "" {
		return errors.New("asset is required")
	}
	if len(asset) > 16 {
		return errors.New("asset cannot exceed 16 characters")
	}
	if !walletAddressRe.MatchString(strings.TrimSpace(r.Address)) {
		return errors.New("address must be 20-128 alphanumeric characters")
	}
	r.Asset = asset
	r.Address = strings.TrimSpace(r.Address)
	return nil
}
