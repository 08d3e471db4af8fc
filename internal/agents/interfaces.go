package agents

import "context"

// KeyClient fetches decrypted provider credentials from the vault's
// read-for-use endpoint on behalf of a trusted agent process.
type KeyClient interface {
	// FetchKey returns the decrypted credential for the given scope.
	// A nil projectID selects the account-wide credential.
	FetchKey(ctx context.Context, accountID, provider string, projectID *int64) (string, error)
}
