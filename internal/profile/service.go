// Copyright (c) 2026 Aurastream. All rights reserved.

package profile

import (
	"context"
	"fmt"

	"github.com/aurastream/api/internal/platform/apperr"
	"github.com/aurastream/api/internal/platform/constants"
	"github.com/aurastream/api/internal/platform/sec"
	"github.com/aurastream/api/pkg/uuid"
)

// Service implements the profile registry use cases.
//
// Ownership goes through the shared [sec.Owns] predicate; handlers never
// compare account IDs themselves.
type Service struct {
	store Store
}

// NewService constructs a new profile [Service].
func NewService(store Store) *Service {
	return &Service{store: store}
}

// # Creation

// CreateInput holds the data required to register a new viewer profile.
type CreateInput struct {
	AccountID string
	Name      string
	Image     string
}

/*
Create validates the quota and persists a brand new viewer profile.

Description: The quota check is the very first storage interaction, so an
account at the cap never pays for anything else. The check and the insert are
not transactional; a racing pair of creates can momentarily land one profile
over the cap, which the product tolerates.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Profile: Created entity
  - error: QuotaExceeded at the cap, or storage errors
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Profile, error) {

	// Enforce the per-account cap before any other work.
	count, err := service.store.CountByAccount(context, input.AccountID)
	if err != nil {
		return nil, fmt.Errorf("profile_service_count_failed: %w", err)
	}

	if count >= constants.MaxProfilesPerAccount {
		return nil, apperr.QuotaExceeded("User cannot have more than 5 profiles.")
	}

	// Construct the new Profile entity. Time-sortable ID to prevent PG index fragmentation.
	profile := &Profile{
		ID:        uuid.New(),
		AccountID: input.AccountID,
		Name:      input.Name,
		Image:     input.Image,
	}

	if err := service.store.Create(context, profile); err != nil {
		return nil, fmt.Errorf("profile_service_create_failed: %w", err)
	}

	return profile, nil
}

// # Retrieval

/*
List returns every profile owned by the given account, oldest first.

Parameters:
  - context: context.Context
  - claims: *sec.SessionClaims (the caller's verified session)
  - accountID: string (the account whose profiles are requested)

Returns:
  - []*Profile: Hydrated entities
  - error: Forbidden when the caller asks for another account's profiles
*/
func (service *Service) List(context context.Context, claims *sec.SessionClaims, accountID string) ([]*Profile, error) {

	// Accounts may only enumerate their own profiles.
	if claims == nil || claims.AccountID != accountID {
		return nil, apperr.Forbidden("Forbidden - You can only access your own profiles")
	}

	profiles, err := service.store.ListByAccount(context, accountID)
	if err != nil {
		return nil, fmt.Errorf("profile_service_list_failed: %w", err)
	}

	return profiles, nil
}

/*
GetByID returns a single profile after an ownership check.

Parameters:
  - context: context.Context
  - claims: *sec.SessionClaims
  - profileID: string

Returns:
  - *Profile: Hydrated entity
  - error: NotFound if absent, Forbidden if not owned
*/
func (service *Service) GetByID(context context.Context, claims *sec.SessionClaims, profileID string) (*Profile, error) {

	profile, err := service.store.FindByID(context, profileID)
	if err != nil {
		return nil, err
	}

	if !sec.Owns(claims, profile) {
		return nil, apperr.Forbidden("Unauthorized - You do not have permission to access this profile")
	}

	return profile, nil
}

// # Mutation

// UpdateInput holds the partial-update payload for a profile.
//
// Nil pointers mean "leave this field untouched".
type UpdateInput struct {
	Name  *string
	Image *string
}

/*
Update applies a partial update to an owned profile.

Description: Only the supplied fields change; updatedAt is always refreshed
by the store, even for an effectively empty update.

Parameters:
  - context: context.Context
  - claims: *sec.SessionClaims
  - profileID: string
  - input: UpdateInput

Returns:
  - *Profile: Updated entity
  - error: NotFound if absent, Forbidden if not owned, storage errors
*/
func (service *Service) Update(context context.Context, claims *sec.SessionClaims, profileID string, input UpdateInput) (*Profile, error) {

	profile, err := service.store.FindByID(context, profileID)
	if err != nil {
		return nil, err
	}

	if !sec.Owns(claims, profile) {
		return nil, apperr.Forbidden("Forbidden - You can only update your own profiles")
	}

	// Apply only the supplied fields. An empty name is treated the same as an
	// absent one, matching the historical API contract.
	if input.Name != nil && *input.Name != "" {
		profile.Name = *input.Name
	}
	if input.Image != nil {
		profile.Image = *input.Image
	}

	if err := service.store.Update(context, profile); err != nil {
		return nil, fmt.Errorf("profile_service_update_failed: %w", err)
	}

	return profile, nil
}

/*
Delete removes an owned profile and, through the schema's cascading foreign
keys, its checkpoints and search-history entries.

Parameters:
  - context: context.Context
  - claims: *sec.SessionClaims
  - profileID: string

Returns:
  - error: NotFound if absent, Forbidden if not owned, storage errors
*/
func (service *Service) Delete(context context.Context, claims *sec.SessionClaims, profileID string) error {

	profile, err := service.store.FindByID(context, profileID)
	if err != nil {
		return err
	}

	if !sec.Owns(claims, profile) {
		return apperr.Forbidden("Forbidden - You can only delete your own profiles")
	}

	if err := service.store.Delete(context, profile.ID); err != nil {
		return fmt.Errorf("profile_service_delete_failed: %w", err)
	}

	return nil
}
