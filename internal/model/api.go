package model

import "context"

// Authenticator logs in against the remote API and stores the credential.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (Credential, error)
}

// ContractorAPI is the remote contractor endpoint set.
type ContractorAPI interface {
	ListContractors(ctx context.Context) ([]Contractor, error)
	CreateContractor(ctx context.Context, req CreateContractorRequest) (MutationResult, error)
	UpdateContractor(ctx context.Context, req UpdateContractorRequest) (MutationResult, error)
}
