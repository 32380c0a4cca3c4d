// Package services contains the application services of the ByteTogether
// client: the auth gateway over the identity provider, the username
// side-table directory, and the projects/files document service consumed by
// the editor.
package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kaustubh-tripathi-1/bytetogether-sub001/internal/client/provider"
)

// UsernameRecord is one entry of the username side-table. The provider has
// no native notion of unique usernames, so the client keeps this auxiliary
// collection keyed by user id.
type UsernameRecord struct {
	ID       string `json:"$id"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// UsernameDirectory reads and writes the username side-table.
//
// Uniqueness is best effort: Exists followed by Create is not transactional,
// so two clients racing on the same username can both pass the check. The
// server schema is the only place this could be enforced for real.
type UsernameDirectory struct {
	store        provider.DocumentStore
	databaseID   string
	collectionID string
}

// NewUsernameDirectory binds a directory to its database and collection.
func NewUsernameDirectory(store provider.DocumentStore, databaseID, collectionID string) *UsernameDirectory {
	return &UsernameDirectory{store: store, databaseID: databaseID, collectionID: collectionID}
}

// Exists reports whether any record with the given username is present.
func (d *UsernameDirectory) Exists(ctx context.Context, username string) (bool, error) {
	list, err := d.store.ListDocuments(ctx, d.databaseID, d.collectionID,
		[]string{provider.QueryEqual("username", username), provider.QueryLimit(1)})
	if err != nil {
		return false, fmt.Errorf("list username records: %w", err)
	}
	return list.Total > 0, nil
}

// Create persists a username record for userID. The document id is the user
// id itself, which makes Delete and Update natural-keyed.
func (d *UsernameDirectory) Create(ctx context.Context, userID, username string) error {
	rec := map[string]string{"userId": userID, "username": username}
	if _, err := d.store.CreateDocument(ctx, d.databaseID, d.collectionID, userID, rec); err != nil {
		return fmt.Errorf("create username record: %w", err)
	}
	return nil
}

// Update replaces the username stored for userID.
func (d *UsernameDirectory) Update(ctx context.Context, userID, username string) error {
	data := map[string]string{"username": username}
	if _, err := d.store.UpdateDocument(ctx, d.databaseID, d.collectionID, userID, data); err != nil {
		return fmt.Errorf("update username record: %w", err)
	}
	return nil
}

// Delete removes the record for userID. A missing record is not an error;
// account deletion must stay idempotent on this step.
func (d *UsernameDirectory) Delete(ctx context.Context, userID string) error {
	err := d.store.DeleteDocument(ctx, d.databaseID, d.collectionID, userID)
	if err != nil && !provider.IsType(err, provider.TypeDocumentNotFound) {
		return fmt.Errorf("delete username record: %w", err)
	}
	return nil
}

// Lookup returns the record for username, or nil when absent.
func (d *UsernameDirectory) Lookup(ctx context.Context, username string) (*UsernameRecord, error) {
	list, err := d.store.ListDocuments(ctx, d.databaseID, d.collectionID,
		[]string{provider.QueryEqual("username", username), provider.QueryLimit(1)})
	if err != nil {
		return nil, fmt.Errorf("list username records: %w", err)
	}
	if len(list.Documents) == 0 {
		return nil, nil
	}
	rec := &UsernameRecord{}
	if err := json.Unmarshal(list.Documents[0], rec); err != nil {
		return nil, fmt.Errorf("decode username record: %w", err)
	}
	return rec, nil
}
